package stats

import (
	"context"
	"errors"
	"math"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhildatla/eda/internal/testutil"
	"github.com/akhildatla/eda/pkg/loader"
	"github.com/akhildatla/eda/pkg/table"
)

func TestGroupMean_SortedDescending(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesString("sex", nil, "F", "M", "F", "M"),
		dataframe.NewSeriesInt64("G3", nil, 9, 10, 10, 12),
	)

	got, err := GroupMean(tbl, "sex", "G3")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "M", got[0].Key)
	assert.Equal(t, 11.0, got[0].Mean)
	assert.Equal(t, "F", got[1].Key)
	assert.Equal(t, 9.5, got[1].Mean)
	assert.Equal(t, 2, got[1].Count)
}

func TestGroupMean_StudentFixture(t *testing.T) {
	tbl := loadStudents(t)

	got, err := GroupMean(tbl, "sex", "G3")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "M", got[0].Label)
	testutil.AssertFloat64Near(t, 34.0/3, got[0].Mean, eps)
	assert.Equal(t, "F", got[1].Label)
	testutil.AssertFloat64Near(t, 66.0/7, got[1].Mean, eps)

	got, err = GroupMean(tbl, "school", "G3")
	require.NoError(t, err)
	assert.Equal(t, "MS", got[0].Label)
	testutil.AssertFloat64Near(t, 10.5, got[0].Mean, eps)
	testutil.AssertFloat64Near(t, 9.875, got[1].Mean, eps)
}

func TestGroupMean_TiesByKeyAscending(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesInt64("k", nil, 10, 2, 10, 2, 1),
		dataframe.NewSeriesInt64("v", nil, 5, 5, 5, 5, 9),
	)

	got, err := GroupMean(tbl, "k", "v")
	require.NoError(t, err)
	keys := make([]any, len(got))
	for i, g := range got {
		keys[i] = g.Key
	}
	assert.Equal(t, []any{int64(1), int64(2), int64(10)}, keys, "numeric keys compare numerically")
}

func TestGroupMean_MissingValues(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesString("g", nil, "a", "a", nil, "b", "c"),
		dataframe.NewSeriesFloat64("v", nil, 4.0, nil, 100.0, nil, 1.0),
	)

	got, err := GroupMean(tbl, "g", "v")
	require.NoError(t, err)
	require.Len(t, got, 3, "rows with a missing key are dropped")

	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, 4.0, got[0].Mean, "missing values are ignored, not zero")
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, "c", got[1].Key)
	assert.Equal(t, "b", got[2].Key)
	assert.True(t, math.IsNaN(got[2].Mean))
	assert.Zero(t, got[2].Count)
}

func TestGroupMean_ColumnErrors(t *testing.T) {
	tbl := testutil.MakeGradesTable(t)

	tests := []struct {
		name, group, value string
		reason             string
	}{
		{name: "absent group", group: "nope", value: "G3", reason: table.ReasonNotFound},
		{name: "absent value", group: "sex", value: "nope", reason: table.ReasonNotFound},
		{name: "categorical value", group: "G3", value: "sex", reason: table.ReasonNotNumeric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GroupMean(tbl, tt.group, tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, table.ErrColumn)

			var ce *table.ColumnError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.reason, ce.Reason)
		})
	}
}

func TestValueCounts(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesInt64("studytime", nil, 2, 3, 1, 2, nil, 3, 2, 4),
	)

	counts, err := ValueCounts(tbl, "studytime")
	require.NoError(t, err)
	assert.Equal(t, Counts{
		{Key: int64(2), Label: "2", Count: 3},
		{Key: int64(3), Label: "3", Count: 2},
		{Key: int64(1), Label: "1", Count: 1},
		{Key: int64(4), Label: "4", Count: 1},
	}, counts)
	assert.Equal(t, 7, counts.Total())

	byKey := counts.SortedByKey()
	assert.Equal(t, "1", byKey[0].Label)
	assert.Equal(t, "4", byKey[3].Label)
	assert.Equal(t, "2", counts[0].Label, "receiver unchanged")

	_, err = ValueCounts(tbl, "nope")
	assert.ErrorIs(t, err, table.ErrColumn)
}

func loadStudents(t *testing.T) *table.Table {
	t.Helper()
	path := testutil.TempCSV(t, testutil.StudentCSV())
	tbl, err := loader.LoadCSV(context.Background(), path, loader.WithDelimiter(';'))
	require.NoError(t, err)
	return tbl
}
