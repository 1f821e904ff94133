package main

import (
	"fmt"
	"strings"

	"liftdash/internal/analysis"
	"liftdash/internal/report"

	"github.com/jedib0t/go-pretty/v6/table"
)

func renderDashboard(d *report.Dashboard, detail bool) string {
	var b strings.Builder
	sel := d.Options.Selection
	fmt.Fprintf(&b, "%s / %s: menampilkan %d dari %d total responden.\n\n",
		sel.Faculty, sel.Program, d.FilteredRows, d.TotalRows)

	if d.NoData {
		b.WriteString(d.Message + "\n")
		return b.String()
	}

	s := d.Summary
	t := table.NewWriter()
	t.SetTitle("Ringkasan & Solusi")
	t.AppendRows([]table.Row{
		{"Tingkat Ketidakpuasan", fmt.Sprintf("%.1f%%", s.DissatisfactionPct)},
		{"Penyebab Utama", s.MainCause},
		{"Solusi Teratas", s.TopSolution},
	})
	t.SetStyle(table.StyleLight)
	b.WriteString(t.Render() + "\n\n")
	b.WriteString(renderCounts("Peringkat Solusi", s.SuggestionRanking) + "\n")

	if !detail {
		return b.String()
	}

	dt := d.Detail
	for _, section := range []struct {
		title  string
		counts analysis.Counts
	}{
		{"Frekuensi Penggunaan Lift", dt.UsageFrequency},
		{"Waktu Tunggu", dt.WaitTime},
		{"Kecukupan Lift", dt.Adequacy},
		{"Pengalaman Sering", dt.Experiences},
		{"Penyebab", dt.Causes},
		{"Kendala", dt.Obstacles},
	} {
		b.WriteString("\n" + renderCounts(section.title, section.counts) + "\n")
	}

	if len(dt.NumericSummary) > 0 {
		b.WriteString("\n" + renderNumericSummary(dt.NumericSummary) + "\n")
	}
	if dt.Correlation != nil {
		b.WriteString("\n" + renderCorrelation(dt.Correlation) + "\n")
	}
	return b.String()
}

// renderCounts prints a frequency table with shares of the counted rows
func renderCounts(title string, counts analysis.Counts) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Kategori", "Jumlah", "%"})

	total := counts.Total()
	for _, item := range counts.Items {
		share := 0.0
		if total > 0 {
			share = 100 * float64(item.Count) / float64(total)
		}
		t.AppendRow(table.Row{item.Value, item.Count, fmt.Sprintf("%.1f", share)})
	}
	if counts.Missing > 0 {
		t.AppendRow(table.Row{"(kosong)", counts.Missing, ""})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func renderNumericSummary(rows []analysis.ColumnSummary) string {
	t := table.NewWriter()
	t.SetTitle("Ringkasan Numerik")
	t.AppendHeader(table.Row{"Kolom", "N", "Rata-rata", "Median", "Std", "Min", "Maks"})
	for _, r := range rows {
		t.AppendRow(table.Row{r.Column, r.N,
			fmt.Sprintf("%.2f", r.Mean), fmt.Sprintf("%.2f", r.Median), fmt.Sprintf("%.2f", r.StdDev),
			fmt.Sprintf("%.2f", r.Min), fmt.Sprintf("%.2f", r.Max)})
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}

func renderCorrelation(corr *report.CorrelationTable) string {
	t := table.NewWriter()
	t.SetTitle("Matriks Korelasi")

	header := table.Row{""}
	for _, c := range corr.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, row := range corr.Values {
		out := table.Row{corr.Columns[i]}
		for _, v := range row {
			if v == nil {
				out = append(out, report.Placeholder)
				continue
			}
			out = append(out, fmt.Sprintf("%.2f", *v))
		}
		t.AppendRow(out)
	}
	t.SetStyle(table.StyleLight)
	return t.Render()
}
