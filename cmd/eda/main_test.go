package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhildatla/eda/internal/logger"
	"github.com/akhildatla/eda/internal/testutil"
	"github.com/akhildatla/eda/pkg/loader"
	"github.com/akhildatla/eda/pkg/report"
	"github.com/akhildatla/eda/pkg/table"
)

// execute runs the CLI in-process and returns what it printed.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func studentFile(t *testing.T) string {
	t.Helper()
	return testutil.TempCSV(t, testutil.StudentCSV())
}

func TestCLI_Help(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"report", "describe", "groupmean", "corr", "explore", "config", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestCLI_Version(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "eda version dev")
}

func TestCLI_Report(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "report", studentFile(t), "--output-dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "SUMMARY STATISTICS:")
	assert.Contains(t, out, "Total Students: 10")
	assert.Contains(t, out, "Pass Rate (Grade >= 10): 60.0%")
	assert.Contains(t, out, "Average Absences: 4.50")

	for _, name := range []string{
		report.FileOutcome,
		report.FileDistrib,
		"grade_by_mother_education.png",
		"grade_by_studytime.png",
		report.FileScatter,
		report.FileProgression,
	} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}
}

func TestCLI_ReportThreshold(t *testing.T) {
	out, err := execute(t, "", "report", studentFile(t), "--no-charts", "--threshold", "12")
	require.NoError(t, err)
	// 15, 15 and 13 pass.
	assert.Contains(t, out, "Pass Rate (Grade >= 12): 30.0%")
}

func TestCLI_ReportJSONToFile(t *testing.T) {
	dir := t.TempDir()
	outFile := filepath.Join(dir, "report.json")

	out, err := execute(t, "", "report", studentFile(t),
		"--format", "json", "--output", outFile, "--no-charts", "--output-dir", dir)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var doc struct {
		Source  string `json:"source"`
		Shape   [2]int `json:"shape"`
		Summary struct {
			Column   string  `json:"column"`
			Mean     float64 `json:"mean"`
			PassRate float64 `json:"pass_rate"`
		} `json:"summary"`
	}
	require.NoError(t, gojson.Unmarshal(data, &doc))
	assert.Equal(t, [2]int{10, 33}, doc.Shape)
	assert.Equal(t, "G3", doc.Summary.Column)
	assert.InDelta(t, 10.0, doc.Summary.Mean, 1e-9)
	assert.InDelta(t, 0.6, doc.Summary.PassRate, 1e-9)
	assert.NotEmpty(t, doc.Source)

	pngs, err := filepath.Glob(filepath.Join(dir, "*.png"))
	require.NoError(t, err)
	assert.Empty(t, pngs)
}

func TestCLI_ReportFormatFromEnv(t *testing.T) {
	t.Setenv("EDA_FORMAT", "json")
	out, err := execute(t, "", "report", studentFile(t), "--no-charts")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), out)
}

func TestCLI_ReportErrors(t *testing.T) {
	t.Run("missing columns", func(t *testing.T) {
		path := testutil.TempCSV(t, testutil.SalesCSV())
		out, err := execute(t, "", "report", path, "--delimiter", "comma", "--no-charts")
		require.Error(t, err)
		assert.ErrorIs(t, err, table.ErrColumn)
		assert.Empty(t, out)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := execute(t, "", "report", filepath.Join(t.TempDir(), "missing.csv"))
		assert.ErrorIs(t, err, loader.ErrNotFound)
	})

	t.Run("wrong delimiter", func(t *testing.T) {
		// Read with commas, the quoted student fields are malformed.
		_, err := execute(t, "", "report", studentFile(t), "--delimiter", ",", "--no-charts")
		assert.ErrorIs(t, err, loader.ErrFormat)
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := execute(t, "", "report", studentFile(t), "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "format must be")
	})

	t.Run("invalid delimiter", func(t *testing.T) {
		_, err := execute(t, "", "report", studentFile(t), "--delimiter", "ab")
		assert.ErrorIs(t, err, loader.ErrInvalidDelimiter)
	})

	t.Run("no file", func(t *testing.T) {
		_, err := execute(t, "", "report")
		assert.Error(t, err)
	})
}

func TestCLI_Describe(t *testing.T) {
	path := testutil.TempCSV(t, testutil.SalesCSV())
	out, err := execute(t, "", "describe", path, "--delimiter", ",")
	require.NoError(t, err)
	assert.Contains(t, out, "price")
	assert.Contains(t, out, "category")
}

func TestCLI_GroupMean(t *testing.T) {
	out, err := execute(t, "", "groupmean", studentFile(t), "sex")
	require.NoError(t, err)
	m := strings.Index(out, "11.3333")
	f := strings.Index(out, "9.4286")
	require.NotEqual(t, -1, m, out)
	require.NotEqual(t, -1, f, out)
	assert.Less(t, m, f)

	out, err = execute(t, "", "groupmean", studentFile(t), "school", "absences")
	require.NoError(t, err)
	assert.Contains(t, out, "GP")
}

func TestCLI_Corr(t *testing.T) {
	out, err := execute(t, "", "corr", studentFile(t), "G1", "G2")
	require.NoError(t, err)
	g3 := strings.Index(out, "| G3 ")
	require.NotEqual(t, -1, g3, out)
	assert.Less(t, g3, strings.Index(out, "| G1 "))
	assert.Less(t, g3, strings.Index(out, "| G2 "))

	out, err = execute(t, "", "corr", studentFile(t), "--target", "absences")
	require.NoError(t, err)
	assert.Contains(t, out, "| absences ")
}

func TestCLI_Explore(t *testing.T) {
	out, err := execute(t, "shape\nquit\n", "explore", studentFile(t))
	require.NoError(t, err)
	assert.Contains(t, out, "(10, 33)")
	assert.Contains(t, out, "Goodbye!")
}

func TestCLI_ExploreLoad(t *testing.T) {
	path := testutil.TempCSV(t, testutil.SalesCSV())
	out, err := execute(t, "load "+path+" ,\nshape\n", "explore")
	require.NoError(t, err)
	assert.Contains(t, out, "(5, 3)")
}

func TestCLI_ConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "eda.yaml")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "", "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, "", "config", "init", path, "--force")
	require.NoError(t, err)

	out, err = execute(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "delimiter: ;")
	assert.Contains(t, out, "target: G3")
}

func TestCLI_ConfigFile(t *testing.T) {
	path := testutil.TempFile(t, "threshold: 15\nhead_rows: 2\n", ".yaml")
	out, err := execute(t, "", "report", studentFile(t), "--config", path, "--no-charts")
	require.NoError(t, err)
	// 15 and 15 pass.
	assert.Contains(t, out, "Pass Rate (Grade >= 15): 20.0%")
}

func TestCLI_MissingConfigFile(t *testing.T) {
	_, err := execute(t, "", "describe", studentFile(t), "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	logPath := filepath.Join(t.TempDir(), "eda.log")
	require.NoError(t, logger.Init(logger.Config{Level: "debug", Encoding: "json", OutputPaths: []string{logPath}}))
	t.Cleanup(func() { _ = logger.Init(logger.Config{Level: "warn"}) })

	// No file: nothing to report.
	loadDotEnv()

	t.Setenv("EDA_DOTENV_CHECK", "")
	require.NoError(t, os.Unsetenv("EDA_DOTENV_CHECK"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EDA_DOTENV_CHECK=yes\n"), 0644))
	loadDotEnv()
	assert.Equal(t, "yes", os.Getenv("EDA_DOTENV_CHECK"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0644))
	loadDotEnv()
	_ = logger.Sync()

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "loaded .env")
	assert.Contains(t, lines[1], "ignoring .env")
}
