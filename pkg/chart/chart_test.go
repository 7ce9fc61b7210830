package chart

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestHistogram(t *testing.T) {
	edges, counts := Histogram([]float64{0, 1, 2, 3, 4}, 4)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, edges)
	assert.Equal(t, []int{1, 1, 1, 2}, counts, "the last bin includes the maximum")
}

func TestHistogram_ConstantValues(t *testing.T) {
	edges, counts := Histogram([]float64{5, 5}, 2)
	assert.Equal(t, []float64{4.5, 5, 5.5}, edges)
	assert.Equal(t, []int{0, 2}, counts)
}

func TestHistogram_IgnoresNaN(t *testing.T) {
	_, counts := Histogram([]float64{1, math.NaN(), 2}, 0)
	require.Len(t, counts, DefaultBins)
	total := 0
	for _, c := range counts {
		total += c
	}
	assert.Equal(t, 2, total)

	edges, counts := Histogram([]float64{math.NaN()}, 3)
	assert.Nil(t, edges)
	assert.Nil(t, counts)
}

func TestHistogram_NonFinite(t *testing.T) {
	sum := func(counts []int) int {
		n := 0
		for _, c := range counts {
			n += c
		}
		return n
	}

	edges, counts := Histogram([]float64{math.Inf(1), 6, 10, math.Inf(-1), 15}, 3)
	require.Len(t, counts, 3)
	assert.Equal(t, 3, sum(counts))
	assert.Equal(t, 6.0, edges[0])
	assert.Equal(t, 15.0, edges[3])

	// The span overflows float64.
	edges, counts = Histogram([]float64{-1e308, 0, 1e308}, 20)
	require.Len(t, counts, 20)
	assert.Equal(t, 3, sum(counts))
	assert.Equal(t, 1, counts[0])
	assert.Equal(t, 1, counts[19])
	assert.Equal(t, 1e308, edges[20])

	edges, counts = Histogram([]float64{math.Inf(1)}, 3)
	assert.Nil(t, edges)
	assert.Nil(t, counts)
}

func TestRender_Kinds(t *testing.T) {
	tests := []Spec{
		{
			Kind:  KindHistogram,
			Title: "Distribution of Final Grades (G3)",
			X:     []float64{6, 6, 10, 15, 10, 15, 11, 6, 8, 13},
			Bins:  20,
		},
		{
			Kind:   KindBar,
			Title:  "Average Final Grade by Study Time",
			Labels: []string{"1", "2", "3"},
			Y:      []float64{8, 9.5, math.NaN()},
		},
		{
			Kind:  KindScatter,
			Title: "Absences vs Final Grade",
			X:     []float64{0, 4, 10, math.NaN()},
			Y:     []float64{8, 6, 10, 12},
		},
		{
			Kind:   KindLine,
			Title:  "Average Grade Progression",
			Labels: []string{"G1 (Period 1)", "G2 (Period 2)", "G3 (Final)"},
			Y:      []float64{9.1, 9.4, 10},
			Width:  640,
			Height: 400,
		},
	}
	for _, s := range tests {
		t.Run(s.Kind.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, s))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestRender_SinglePoint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Spec{Kind: KindScatter, X: []float64{3}, Y: []float64{3}}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want error
	}{
		{name: "empty histogram", spec: Spec{Kind: KindHistogram}, want: ErrNoData},
		{name: "bar labels mismatch", spec: Spec{Kind: KindBar, Labels: []string{"a"}, Y: []float64{1, 2}}, want: ErrLengthMismatch},
		{name: "all bars missing", spec: Spec{Kind: KindBar, Labels: []string{"a"}, Y: []float64{math.NaN()}}, want: ErrNoData},
		{name: "scatter mismatch", spec: Spec{Kind: KindScatter, X: []float64{1}, Y: []float64{1, 2}}, want: ErrLengthMismatch},
		{name: "empty line", spec: Spec{Kind: KindLine}, want: ErrNoData},
		{name: "unknown kind", spec: Spec{Kind: Kind(42)}, want: ErrUnknownKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Render(&bytes.Buffer{}, tt.spec)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	specs := []Spec{
		{File: "a.png", Kind: KindBar, Labels: []string{"F", "M"}, Y: []float64{9.5, 11}},
		{File: "b.png", Kind: KindHistogram, X: []float64{1, 2, 3}},
	}

	paths, err := RenderAll(dir, specs)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngMagic))
	}
}

func TestRenderFile_RemovesPartialOutput(t *testing.T) {
	dir := t.TempDir()

	_, err := RenderFile(dir, Spec{File: "bad.png", Kind: KindLine})
	require.ErrorIs(t, err, ErrNoData)
	assert.NoFileExists(t, filepath.Join(dir, "bad.png"))
}
