// Package report assembles one render of the dashboard from the loaded table and
// the current filter selection.
package report

import (
	"fmt"
	"math"

	"liftdash/domain/survey"
	"liftdash/internal/analysis"
	"liftdash/internal/filter"
)

// NoDataMessage is shown instead of both sections when the filters match nothing
const NoDataMessage = "Tidak ada data untuk ditampilkan dengan filter yang dipilih."

// Placeholder is displayed for a KPI whose column has no answers in the view
const Placeholder = "-"

// KeyPoints are the fixed findings shown next to the recommendation
const KeyPoints = `1. **Ketidakpuasan Mayoritas:** Sebagian besar mahasiswa merasa jumlah lift yang ada saat ini tidak mencukupi.
2. **Fokus pada Penambahan Unit:** Solusi yang paling konkret adalah penambahan unit lift baru atau penyediaan alternatif vertikal seperti eskalator.
3. **Masalah Jam Sibuk:** Kepadatan pada jam-jam tertentu memperparah masalah, menunjukkan perlunya pengaturan antrean.
4. **Kenyamanan Terganggu:** Selain antrean, fasilitas seperti pendingin udara (AC) juga menjadi keluhan utama.`

// NextStep closes the summary section
const NextStep = "**Langkah Selanjutnya:** Data ini sangat kuat untuk diajukan kepada pihak manajemen gedung atau rektorat sebagai dasar untuk pengajuan penambahan fasilitas."

// Dashboard is everything one page render needs
type Dashboard struct {
	TotalRows    int              `json:"total_rows"`
	FilteredRows int              `json:"filtered_rows"`
	Options      filter.OptionSet `json:"options"`
	NoData       bool             `json:"no_data"`
	Message      string           `json:"message,omitempty"`
	Summary      *Summary         `json:"summary,omitempty"`
	Detail       *Detail          `json:"detail,omitempty"`
}

// Summary is the "Ringkasan & Solusi" section
type Summary struct {
	DissatisfactionPct float64         `json:"dissatisfaction_pct"`
	MainCause          string          `json:"main_cause"`
	TopSolution        string          `json:"top_solution"`
	SuggestionRanking  analysis.Counts `json:"suggestion_ranking"`
	Recommendation     string          `json:"recommendation"`
	KeyPoints          string          `json:"key_points"`
	NextStep           string          `json:"next_step"`
}

// Detail is the "Analisis Detail" section
type Detail struct {
	UsageFrequency analysis.Counts          `json:"usage_frequency"`
	WaitTime       analysis.Counts          `json:"wait_time"`
	Adequacy       analysis.Counts          `json:"adequacy"`
	Experiences    analysis.Counts          `json:"experiences"`
	Causes         analysis.Counts          `json:"causes"`
	Obstacles      analysis.Counts          `json:"obstacles"`
	Suggestions    []analysis.Suggestion    `json:"suggestions"`
	NumericSummary []analysis.ColumnSummary `json:"numeric_summary"`
	Correlation    *CorrelationTable        `json:"correlation,omitempty"`
}

// CorrelationTable is a correlation matrix with undefined cells as nil
type CorrelationTable struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

// Build filters table by sel and computes both sections, or only a no-data notice
// when the view is empty
func Build(table *survey.Table, sel filter.Selection) *Dashboard {
	opts := filter.Options(table, sel)
	view := filter.ApplySelection(table, opts.Selection)

	d := &Dashboard{
		TotalRows:    table.Len(),
		FilteredRows: view.Len(),
		Options:      opts,
	}
	if view.Len() == 0 {
		d.NoData = true
		d.Message = NoDataMessage
		return d
	}

	d.Summary = buildSummary(view)
	d.Detail = buildDetail(view)
	return d
}

func buildSummary(view *survey.Table) *Summary {
	// the view is non-empty here, so the rate cannot fail
	pct, _ := analysis.DissatisfactionRate(view)
	cause := modeOrPlaceholder(view, survey.ColCause)
	solution := modeOrPlaceholder(view, survey.ColSuggestionCategory)

	return &Summary{
		DissatisfactionPct: pct,
		MainCause:          cause,
		TopSolution:        solution,
		SuggestionRanking:  analysis.ValueCounts(view, survey.ColSuggestionCategory),
		Recommendation: fmt.Sprintf(
			"Akar masalah utamanya adalah **%s**. Solusi yang paling banyak disarankan oleh mahasiswa adalah **%s**.",
			cause, solution),
		KeyPoints: KeyPoints,
		NextStep:  NextStep,
	}
}

func buildDetail(view *survey.Table) *Detail {
	d := &Detail{
		UsageFrequency: analysis.ValueCountsOrdered(view, survey.ColUsageFrequency, survey.UsageFrequencyOrder),
		WaitTime:       analysis.ValueCountsOrdered(view, survey.ColWaitTime, survey.WaitTimeOrder),
		Adequacy:       analysis.ValueCounts(view, survey.ColAdequacy),
		Experiences:    analysis.ExperienceFrequency(view),
		Causes:         analysis.ValueCounts(view, survey.ColCause).Ascending(),
		Obstacles:      analysis.ValueCounts(view, survey.ColObstacle).Ascending(),
		Suggestions:    analysis.Suggestions(view),
		NumericSummary: analysis.NumericSummary(view),
	}
	if corr, ok := analysis.CorrelationMatrix(view); ok {
		d.Correlation = NewCorrelationTable(corr)
	}
	return d
}

func modeOrPlaceholder(view *survey.Table, col survey.Column) string {
	mode, err := analysis.Mode(view, col)
	if err != nil {
		return Placeholder
	}
	return mode
}

// NewCorrelationTable converts a matrix to JSON form, with undefined cells as null
func NewCorrelationTable(corr *analysis.Correlation) *CorrelationTable {
	rows := corr.Rows()
	values := make([][]*float64, len(rows))
	for i, row := range rows {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				continue
			}
			v := v
			values[i][j] = &v
		}
	}
	return &CorrelationTable{Columns: corr.Columns, Values: values}
}
