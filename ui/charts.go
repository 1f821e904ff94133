package ui

import (
	"fmt"
	"html/template"
	"io"
	"math"

	"liftdash/internal/analysis"
	"liftdash/internal/report"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
)

// echartsScript is loaded once by the dashboard page; chart snippets only call echarts.init
const echartsScript = "https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"

type chartRenderer interface {
	Render(w io.Writer) error
	RenderSnippet() render.ChartSnippet
}

// chartDef names one dashboard chart; build reports false when there is nothing to draw
type chartDef struct {
	Name  string
	Title string
	build func(d *report.Dashboard) (chartRenderer, bool)
}

// chartCatalog is the fixed set of charts, in page order
var chartCatalog = []chartDef{
	{"saran", "Peringkat Kategori Saran dari Mahasiswa", func(d *report.Dashboard) (chartRenderer, bool) {
		return horizontalBar("Peringkat Kategori Saran dari Mahasiswa", d.Summary.SuggestionRanking.Ascending(), "#2a9d8f"), true
	}},
	{"frekuensi", "Frekuensi Penggunaan Lift", func(d *report.Dashboard) (chartRenderer, bool) {
		return verticalBar("Frekuensi Penggunaan Lift", d.Detail.UsageFrequency, "#3a6ea5"), true
	}},
	{"waktu-tunggu", "Waktu Tunggu di Jam Sibuk", func(d *report.Dashboard) (chartRenderer, bool) {
		return verticalBar("Waktu Tunggu di Jam Sibuk", d.Detail.WaitTime, "#7b5ea7"), true
	}},
	{"kecukupan", "Apakah jumlah lift mencukupi?", func(d *report.Dashboard) (chartRenderer, bool) {
		return donut("Apakah jumlah lift mencukupi?", d.Detail.Adequacy), true
	}},
	{"pengalaman", "Jumlah Responden yang 'Sering' Mengalami", func(d *report.Dashboard) (chartRenderer, bool) {
		return horizontalBar("Jumlah Responden yang 'Sering' Mengalami", d.Detail.Experiences, "#c0392b"), true
	}},
	{"penyebab", "Penyebab Utama Antrean", func(d *report.Dashboard) (chartRenderer, bool) {
		return horizontalBar("Penyebab Utama Antrean", d.Detail.Causes, "#2e8b57"), true
	}},
	{"kendala", "Kendala Utama Penggunaan Lift", func(d *report.Dashboard) (chartRenderer, bool) {
		return horizontalBar("Kendala Utama Penggunaan Lift", d.Detail.Obstacles, "#e67e22"), true
	}},
	{"korelasi", "Matriks Korelasi", func(d *report.Dashboard) (chartRenderer, bool) {
		if d.Detail.Correlation == nil {
			return nil, false
		}
		return heatmap("Matriks Korelasi", d.Detail.Correlation), true
	}},
}

func findChart(name string) (chartDef, bool) {
	for _, def := range chartCatalog {
		if def.Name == name {
			return def, true
		}
	}
	return chartDef{}, false
}

// chartSnippet is a chart ready to be placed inline in the dashboard
type chartSnippet struct {
	Name    string
	Title   string
	Element template.HTML
	Script  template.HTML
}

// buildSnippets renders every drawable chart of d; empty for a no-data dashboard
func buildSnippets(d *report.Dashboard) map[string]chartSnippet {
	out := make(map[string]chartSnippet)
	if d.NoData {
		return out
	}
	for _, def := range chartCatalog {
		chart, ok := def.build(d)
		if !ok {
			continue
		}
		snippet := chart.RenderSnippet()
		out[def.Name] = chartSnippet{
			Name:    def.Name,
			Title:   def.Title,
			Element: template.HTML(snippet.Element),
			Script:  template.HTML(snippet.Script),
		}
	}
	return out
}

func baseOptions(title, height string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:     "100%",
			Height:    height,
			PageTitle: title,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	}
}

func barData(counts analysis.Counts) []opts.BarData {
	data := make([]opts.BarData, len(counts.Items))
	for i, item := range counts.Items {
		data[i] = opts.BarData{Name: item.Value, Value: item.Count}
	}
	return data
}

func verticalBar(title string, counts analysis.Counts, color string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(title, "380px"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Jumlah"}),
	)...)
	bar.SetXAxis(counts.Labels()).AddSeries("Jumlah", barData(counts),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	)
	return bar
}

func horizontalBar(title string, counts analysis.Counts, color string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(append(baseOptions(title, "380px"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Jumlah Responden"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category"}),
	)...)
	bar.SetXAxis(counts.Labels()).AddSeries("Jumlah", barData(counts),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "right"}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
	)
	bar.XYReversal()
	return bar
}

func donut(title string, counts analysis.Counts) *charts.Pie {
	data := make([]opts.PieData, 0, len(counts.Items))
	for _, item := range counts.Items {
		data = append(data, opts.PieData{Name: item.Value, Value: item.Count})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(append(baseOptions(title, "380px"),
		charts.WithColorsOpts(opts.Colors{"#7f0000", "#b30000", "#d7301f", "#ef6548", "#fc8d59", "#fdbb84"}),
	)...)
	pie.AddSeries("Kecukupan", data,
		charts.WithPieChartOpts(opts.PieChart{Radius: []string{"50%", "75%"}}),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}),
	)
	return pie
}

func heatmap(title string, corr *report.CorrelationTable) *charts.HeatMap {
	var data []opts.HeatMapData
	for i, row := range corr.Values {
		for j, v := range row {
			// echarts renders "-" as an empty cell
			var value interface{} = "-"
			if v != nil {
				value = math.Round(*v*100) / 100
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, value}})
		}
	}

	height := fmt.Sprintf("%dpx", 160+60*len(corr.Columns))
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(append(baseOptions(title, height),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: corr.Columns, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: corr.Columns, SplitArea: &opts.SplitArea{Show: opts.Bool(true)}}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        -1,
			Max:        1,
			InRange:    &opts.VisualMapInRange{Color: []string{"#3b4cc0", "#f7f7f7", "#b40426"}},
		}),
	)...)
	hm.AddSeries("Korelasi", data,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return hm
}
