// Package testutil provides testing utilities for eda tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"

	"github.com/akhildatla/eda/pkg/table"
)

// TempCSV creates a temporary CSV file and returns its path.
// The file is automatically cleaned up when the test finishes.
func TempCSV(t *testing.T, content string) string {
	t.Helper()
	return TempFile(t, content, ".csv")
}

// TempFile creates a temporary file with the given content and extension.
func TempFile(t *testing.T, content, ext string) string {
	t.Helper()
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test"+ext)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

// StudentHeader is the header of the student records fixture.
const StudentHeader = `school;sex;age;address;famsize;Pstatus;Medu;Fedu;Mjob;Fjob;reason;guardian;traveltime;studytime;failures;schoolsup;famsup;paid;activities;nursery;higher;internet;romantic;famrel;freetime;goout;Dalc;Walc;health;absences;G1;G2;G3`

var studentRows = []string{
	`"GP";"F";18;"U";"GT3";"A";4;4;"at_home";"teacher";"course";"mother";2;2;0;"yes";"no";"no";"no";"yes";"yes";"no";"no";4;3;4;1;1;3;6;"5";"6";6`,
	`"GP";"F";17;"U";"GT3";"T";1;1;"at_home";"other";"course";"father";1;2;0;"no";"yes";"no";"no";"no";"yes";"yes";"no";5;3;3;1;1;3;4;"5";"5";6`,
	`"GP";"F";15;"U";"LE3";"T";1;1;"at_home";"other";"other";"mother";1;2;3;"yes";"no";"yes";"no";"yes";"yes";"yes";"no";4;3;2;2;3;3;10;"7";"8";10`,
	`"GP";"F";15;"U";"GT3";"T";4;2;"health";"services";"home";"mother";1;3;0;"no";"yes";"yes";"yes";"yes";"yes";"yes";"yes";3;2;2;1;1;5;2;"15";"14";15`,
	`"GP";"F";16;"U";"GT3";"T";3;3;"other";"other";"home";"father";1;2;0;"no";"yes";"yes";"no";"yes";"yes";"no";"no";4;3;2;1;2;5;4;"6";"10";10`,
	`"GP";"M";16;"U";"LE3";"T";4;3;"services";"other";"reputation";"mother";1;2;0;"no";"yes";"yes";"yes";"yes";"yes";"yes";"no";5;4;2;1;2;5;10;"15";"15";15`,
	`"GP";"M";16;"U";"LE3";"T";2;2;"other";"other";"home";"mother";1;2;0;"no";"no";"no";"no";"yes";"yes";"yes";"no";4;4;4;1;1;3;0;"12";"12";11`,
	`"GP";"F";17;"U";"GT3";"A";4;4;"other";"teacher";"home";"mother";2;2;0;"yes";"yes";"no";"no";"yes";"yes";"no";"no";4;1;4;1;1;1;6;"6";"5";6`,
	`"MS";"M";18;"R";"GT3";"T";1;1;"other";"other";"course";"mother";3;1;1;"no";"no";"no";"yes";"no";"yes";"no";"no";4;4;4;3;4;4;0;"8";"7";8`,
	`"MS";"F";17;"R";"LE3";"T";2;2;"services";"services";"course";"mother";2;3;0;"no";"yes";"no";"no";"yes";"yes";"yes";"no";3;3;2;1;1;2;3;"12";"12";13`,
}

// StudentCSV returns a semicolon-delimited student records fixture.
//
// G3 is 6,6,10,15,10,15,11,6,8,13: mean 10, median 10, pass rate 0.6.
// Mean G3 by sex: F 66/7, M 34/3. By school and by address: GP/U 9.875, MS/R 10.5.
func StudentCSV() string {
	return StudentHeader + "\n" + strings.Join(studentRows, "\n") + "\n"
}

// SalesCSV returns standard test CSV content for sales data.
func SalesCSV() string {
	return `price,quantity,category
10.5,5,A
20.0,15,B
5.0,3,A
30.0,20,C
15.0,8,B`
}

// MakeGradesTable creates a table with G3 = 8, 10, 15, 9, 10 and sex M,F,M,F,F.
func MakeGradesTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(
		dataframe.NewSeriesString("sex", nil, "M", "F", "M", "F", "F"),
		dataframe.NewSeriesInt64("G3", nil, 8, 10, 15, 9, 10),
	)
	if err != nil {
		t.Fatalf("failed to build grades table: %v", err)
	}
	return tbl
}

// MakeTable builds a table from series and fails the test on error.
func MakeTable(t *testing.T, series ...dataframe.Series) *table.Table {
	t.Helper()
	tbl, err := table.New(series...)
	if err != nil {
		t.Fatalf("failed to build table: %v", err)
	}
	return tbl
}

// AssertFloat64Near checks if two float64 values are approximately equal.
func AssertFloat64Near(t *testing.T, expected, actual, tolerance float64) {
	t.Helper()
	if actual < expected-tolerance || actual > expected+tolerance {
		t.Errorf("expected %.6f, got %.6f (tolerance: %.6f)", expected, actual, tolerance)
	}
}
