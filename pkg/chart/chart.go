// Package chart renders report figures to PNG with go-chart.
//
// A Spec describes one figure independently of how it is drawn, so the
// report can list its figures without touching the file system and the CLI
// can decide whether and where to render them.
package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Errors returned for specs that cannot be drawn.
var (
	ErrNoData         = errors.New("chart has no data")
	ErrLengthMismatch = errors.New("chart series lengths differ")
	ErrUnknownKind    = errors.New("unknown chart kind")
)

// Kind selects how a Spec is drawn.
type Kind int

const (
	KindHistogram Kind = iota // X holds raw values binned into Bins bars
	KindBar                   // one bar per Labels[i] of height Y[i]
	KindScatter               // points (X[i], Y[i])
	KindLine                  // Y[i] joined in order, ticked with Labels
)

func (k Kind) String() string {
	switch k {
	case KindHistogram:
		return "histogram"
	case KindBar:
		return "bar"
	case KindScatter:
		return "scatter"
	case KindLine:
		return "line"
	default:
		return "unknown"
	}
}

// Default figure size in pixels.
const (
	DefaultWidth  = 1000
	DefaultHeight = 500
)

// Spec describes a figure.
type Spec struct {
	File   string // file name relative to the output directory
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	Labels []string
	X      []float64
	Y      []float64
	Bins   int

	Width  int
	Height int
}

func (s Spec) size() (int, int) {
	w, h := s.Width, s.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// Render draws s as a PNG to w.
func Render(w io.Writer, s Spec) error {
	switch s.Kind {
	case KindHistogram:
		return renderHistogram(w, s)
	case KindBar:
		return renderBar(w, s)
	case KindScatter:
		return renderScatter(w, s)
	case KindLine:
		return renderLine(w, s)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(s.Kind))
	}
}

// RenderFile draws s into dir/s.File, creating dir if needed, and returns
// the path written.
func RenderFile(dir string, s Spec) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}
	path := filepath.Join(dir, s.File)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart %s: %w", s.File, err)
	}
	if err := Render(f, s); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("render chart %s: %w", s.File, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write chart %s: %w", s.File, err)
	}
	return path, nil
}

// RenderAll renders every spec into dir and returns the paths written. It
// stops at the first failure.
func RenderAll(dir string, specs []Spec) ([]string, error) {
	paths := make([]string, 0, len(specs))
	for _, s := range specs {
		p, err := RenderFile(dir, s)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func background() chart.Style {
	return chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}}
}

// valueRange returns a non-degenerate axis range covering vals and zero.
func valueRange(vals []float64) *chart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	return &chart.ContinuousRange{Min: lo, Max: hi + (hi-lo)*0.05}
}

// spanRange returns a padded range covering vals.
func spanRange(vals []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
	}
	pad := (hi - lo) * 0.05
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
