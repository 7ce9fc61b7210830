package stats

import (
	"math"
	"math/rand"
	"testing"

	dataframe "github.com/rocketlaunchr/dataframe-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhildatla/eda/internal/testutil"
	"github.com/akhildatla/eda/pkg/table"
)

func corrTable(t *testing.T) *table.Table {
	return testutil.MakeTable(t,
		dataframe.NewSeriesInt64("x", nil, 1, 2, 3, 4),
		dataframe.NewSeriesFloat64("up", nil, 2.0, 4.0, 6.0, 8.0),
		dataframe.NewSeriesInt64("down", nil, 4, 3, 2, 1),
		dataframe.NewSeriesInt64("w", nil, 1, 3, 2, 4),
		dataframe.NewSeriesInt64("flat", nil, 5, 5, 5, 5),
		dataframe.NewSeriesString("name", nil, "a", "b", "c", "d"),
	)
}

func TestCorrelation_Pearson(t *testing.T) {
	m, err := Correlation(corrTable(t), "x", "up", "down", "w", "flat")
	require.NoError(t, err)

	r, ok := m.At("x", "up")
	require.True(t, ok)
	assert.InDelta(t, 1.0, r, eps)

	r, _ = m.At("x", "down")
	assert.InDelta(t, -1.0, r, eps)

	r, _ = m.At("x", "w")
	assert.InDelta(t, 0.8, r, eps)

	r, _ = m.At("x", "flat")
	assert.True(t, math.IsNaN(r), "constant column has no correlation")

	r, _ = m.At("flat", "flat")
	assert.True(t, math.IsNaN(r))

	_, ok = m.At("x", "nope")
	assert.False(t, ok)
}

func TestCorrelation_SymmetricUnitDiagonal(t *testing.T) {
	cols := []string{"x", "up", "down", "w"}
	m, err := Correlation(corrTable(t), cols...)
	require.NoError(t, err)
	require.Len(t, m.Values, len(cols))

	for i := range cols {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range cols {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
		}
	}
}

func TestCorrelation_PairwiseComplete(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesFloat64("a", nil, 1.0, 2.0, 3.0, nil, 5.0),
		dataframe.NewSeriesFloat64("b", nil, 2.0, 4.0, nil, 100.0, 10.0),
		dataframe.NewSeriesFloat64("c", nil, 1.0, nil, nil, nil, nil),
	)

	m, err := Correlation(tbl, "a", "b", "c")
	require.NoError(t, err)

	r, _ := m.At("a", "b")
	assert.InDelta(t, 1.0, r, eps, "rows 0, 1 and 4 are complete and collinear")

	r, _ = m.At("a", "c")
	assert.True(t, math.IsNaN(r), "a single complete row is not enough")
}

func TestCorrelation_ColumnErrors(t *testing.T) {
	_, err := Correlation(corrTable(t), "x", "name")
	assert.ErrorIs(t, err, table.ErrColumn)

	_, err = Correlation(corrTable(t), "x", "nope", "gone")
	require.Error(t, err)
	assert.ErrorIs(t, err, table.ErrColumn)
	assert.Contains(t, err.Error(), `"nope", "gone"`)
}

func TestCorrelation_Ranking(t *testing.T) {
	m, err := Correlation(corrTable(t), "down", "flat", "w", "x", "up")
	require.NoError(t, err)

	ranking, err := m.Ranking("x")
	require.NoError(t, err)

	names := make([]string, len(ranking))
	for i, c := range ranking {
		names[i] = c.Column
	}
	assert.Equal(t, []string{"x", "up", "w", "down", "flat"}, names)
	assert.Equal(t, 1.0, ranking[0].Value)
	assert.True(t, math.IsNaN(ranking[4].Value))

	_, err = m.Ranking("nope")
	assert.ErrorIs(t, err, table.ErrColumn)
}

func TestCorrelation_RankingTiesKeepColumnOrder(t *testing.T) {
	tbl := testutil.MakeTable(t,
		dataframe.NewSeriesInt64("t", nil, 1, 2, 3),
		dataframe.NewSeriesInt64("b", nil, 10, 11, 12),
		dataframe.NewSeriesInt64("a", nil, 5, 6, 7),
	)
	m, err := Correlation(tbl, "t", "b", "a")
	require.NoError(t, err)

	ranking, err := m.Ranking("t")
	require.NoError(t, err)
	assert.Equal(t, "b", ranking[1].Column)
	assert.Equal(t, "a", ranking[2].Column)
}

func TestCorrelation_CollinearStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 500; trial++ {
		n := 3 + rng.Intn(20)
		a := make([]float64, n)
		b := make([]float64, n)
		c := make([]float64, n)
		for i := range a {
			a[i] = rng.Float64()*100 - 50
			b[i] = 0.3*a[i] + 7.1
			c[i] = -0.7*a[i] - 3.3
		}
		tbl := testutil.MakeTable(t,
			table.NewFloat64Series("a", a),
			table.NewFloat64Series("b", b),
			table.NewFloat64Series("c", c),
		)
		m, err := Correlation(tbl, "a", "b", "c")
		require.NoError(t, err)
		for _, row := range m.Values {
			for _, r := range row {
				require.LessOrEqual(t, math.Abs(r), 1.0, "trial %d", trial)
			}
		}
		r, _ := m.At("a", "b")
		testutil.AssertFloat64Near(t, 1, r, 1e-9)
		r, _ = m.At("a", "c")
		testutil.AssertFloat64Near(t, -1, r, 1e-9)
	}
}
