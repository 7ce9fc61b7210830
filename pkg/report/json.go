package report

import (
	"io"
	"math"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/akhildatla/eda/pkg/stats"
)

// number encodes NaN and infinities as null.
type number float64

func (n number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
}

type jsonReport struct {
	Source       string               `json:"source,omitempty"`
	Shape        [2]int               `json:"shape"`
	Columns      []jsonColumn         `json:"columns"`
	HeadColumns  []string             `json:"head_columns"`
	Head         [][]string           `json:"head"`
	Duplicates   int                  `json:"duplicates"`
	Describe     []jsonSummary        `json:"describe"`
	Outcome      jsonHistogram        `json:"outcome_distribution"`
	Distribution *jsonCounts          `json:"distribution,omitempty"`
	Groups       []jsonGroups         `json:"group_means"`
	Correlation  []jsonCoefficient    `json:"correlation"`
	Progression  []jsonMean           `json:"progression"`
	PassFail     jsonCounts           `json:"pass_fail"`
	Support      []jsonGroups         `json:"support_means"`
	Address      *jsonAddress         `json:"address,omitempty"`
	Summary      jsonSummaryStatistic `json:"summary"`
}

type jsonColumn struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Missing int    `json:"missing"`
}

type jsonSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   number  `json:"mean"`
	Std    number  `json:"std"`
	Min    number  `json:"min"`
	Q25    number  `json:"25%"`
	Median number  `json:"50%"`
	Q75    number  `json:"75%"`
	Max    number  `json:"max"`
	Unique *int    `json:"unique,omitempty"`
	Top    *string `json:"top,omitempty"`
	Freq   *int    `json:"freq,omitempty"`
}

type jsonHistogram struct {
	Edges  []number `json:"edges"`
	Counts []int    `json:"counts"`
}

type jsonCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type jsonCounts struct {
	Column string      `json:"column"`
	Counts []jsonCount `json:"counts"`
}

type jsonGroup struct {
	Key   string `json:"key"`
	Mean  number `json:"mean"`
	Count int    `json:"count"`
}

type jsonGroups struct {
	Column string      `json:"column"`
	Groups []jsonGroup `json:"groups"`
}

type jsonCoefficient struct {
	Column string `json:"column"`
	Value  number `json:"value"`
}

type jsonMean struct {
	Column string `json:"column"`
	Mean   number `json:"mean"`
}

type jsonAddress struct {
	Counts jsonCounts `json:"counts"`
	Means  jsonGroups `json:"means"`
}

type jsonSummaryStatistic struct {
	Column     string     `json:"column"`
	Count      int        `json:"count"`
	Mean       number     `json:"mean"`
	Median     number     `json:"median"`
	Std        number     `json:"std"`
	Threshold  number     `json:"threshold"`
	PassRate   number     `json:"pass_rate"`
	OtherMeans []jsonMean `json:"other_means"`
}

// WriteJSON renders r as an indented JSON document. Undefined statistics
// are written as null.
func WriteJSON(w io.Writer, r *Report) error {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(r))
}

func toJSON(r *Report) jsonReport {
	out := jsonReport{
		Source:      r.Source,
		Shape:       [2]int{r.Rows, r.Cols},
		HeadColumns: r.HeadColumns,
		Head:        r.Head,
		Duplicates:  r.Duplicates,
		Groups:      groupsJSON(r.Groups),
		Correlation: make([]jsonCoefficient, len(r.Correlation)),
		Progression: meansJSON(r.Progression),
		PassFail:    countsJSON(r.PassFail),
		Support:     groupsJSON(r.Support),
	}

	missing := make(map[string]int, len(r.Missing))
	for _, m := range r.Missing {
		missing[m.Column] = m.Count
	}
	for _, c := range r.Schema {
		out.Columns = append(out.Columns, jsonColumn{Name: c.Name, Type: c.Kind.String(), Missing: missing[c.Name]})
	}

	for _, s := range r.Describe {
		js := jsonSummary{
			Column: s.Column,
			Count:  s.Count,
			Mean:   number(s.Mean),
			Std:    number(s.Std),
			Min:    number(s.Min),
			Q25:    number(s.Q25),
			Median: number(s.Median),
			Q75:    number(s.Q75),
			Max:    number(s.Max),
		}
		if !s.Kind.Numeric() {
			unique, top, freq := s.Unique, s.Top, s.Freq
			js.Unique, js.Top, js.Freq = &unique, &top, &freq
		}
		out.Describe = append(out.Describe, js)
	}

	out.Outcome.Counts = r.Outcome.Counts
	for _, e := range r.Outcome.Edges {
		out.Outcome.Edges = append(out.Outcome.Edges, number(e))
	}

	if r.Distribution.Column != "" {
		d := countsJSON(r.Distribution)
		out.Distribution = &d
	}
	for i, c := range r.Correlation {
		out.Correlation[i] = jsonCoefficient{Column: c.Column, Value: number(c.Value)}
	}
	if r.AddressCount.Column != "" {
		out.Address = &jsonAddress{
			Counts: countsJSON(r.AddressCount),
			Means:  groupJSON(r.AddressGroup),
		}
	}

	if s := r.Summary; s != nil {
		out.Summary = jsonSummaryStatistic{
			Column:     s.Column,
			Count:      s.Count,
			Mean:       number(s.Mean),
			Median:     number(s.Median),
			Std:        number(s.Std),
			Threshold:  number(s.Threshold),
			PassRate:   number(s.PassRate),
			OtherMeans: meansJSON(s.OtherMeans),
		}
	}
	return out
}

func countsJSON(s CountSection) jsonCounts {
	out := jsonCounts{Column: s.Column, Counts: make([]jsonCount, len(s.Counts))}
	for i, c := range s.Counts {
		out.Counts[i] = jsonCount{Value: c.Label, Count: c.Count}
	}
	return out
}

func groupJSON(s GroupSection) jsonGroups {
	out := jsonGroups{Column: s.Column, Groups: make([]jsonGroup, len(s.Groups))}
	for i, g := range s.Groups {
		out.Groups[i] = jsonGroup{Key: g.Label, Mean: number(g.Mean), Count: g.Count}
	}
	return out
}

func groupsJSON(sections []GroupSection) []jsonGroups {
	out := make([]jsonGroups, len(sections))
	for i, s := range sections {
		out[i] = groupJSON(s)
	}
	return out
}

func meansJSON(means []stats.ColumnMean) []jsonMean {
	out := make([]jsonMean, len(means))
	for i, m := range means {
		out[i] = jsonMean{Column: m.Column, Mean: number(m.Mean)}
	}
	return out
}
