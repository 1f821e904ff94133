package analysis

import (
	"unicode/utf8"

	"liftdash/domain/survey"

	"github.com/montanaflynn/stats"
)

// minSuggestionLength filters out one-word answers like "ok" or "-"
const minSuggestionLength = 5

// Suggestion is one free-text answer with its respondent's faculty and program
type Suggestion struct {
	Faculty    string `json:"fakultas"`
	Program    string `json:"prodi"`
	Suggestion string `json:"saran"`
}

// Suggestions returns the free-text answers whose faculty, program and text are all
// present and whose text is longer than minSuggestionLength runes
func Suggestions(view *survey.Table) []Suggestion {
	var out []Suggestion
	for i := 0; i < view.Len(); i++ {
		r := view.Row(i)
		if r.Faculty == "" || r.Program == "" || r.Suggestion == "" {
			continue
		}
		if utf8.RuneCountInString(r.Suggestion) <= minSuggestionLength {
			continue
		}
		out = append(out, Suggestion{Faculty: r.Faculty, Program: r.Program, Suggestion: r.Suggestion})
	}
	return out
}

// ColumnSummary describes one numeric column over the non-missing cells
type ColumnSummary struct {
	Column string  `json:"column"`
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// NumericSummary summarizes every num_* column; columns without values are skipped
func NumericSummary(view *survey.Table) []ColumnSummary {
	var out []ColumnSummary
	for _, col := range view.NumericColumns() {
		data := make([]float64, 0, view.Len())
		for i := 0; i < view.Len(); i++ {
			if v, ok := view.Row(i).Number(col); ok {
				data = append(data, v)
			}
		}
		if len(data) == 0 {
			continue
		}

		mean, _ := stats.Mean(data)
		median, _ := stats.Median(data)
		stdDev, _ := stats.StandardDeviation(data)
		min, _ := stats.Min(data)
		max, _ := stats.Max(data)
		out = append(out, ColumnSummary{
			Column: col,
			N:      len(data),
			Mean:   mean,
			Median: median,
			StdDev: stdDev,
			Min:    min,
			Max:    max,
		})
	}
	return out
}
