// Package plot renders dashboard counts as static PNG charts.
package plot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"liftdash/internal/analysis"
	"liftdash/internal/report"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToPlot is returned when every count is zero
var ErrNothingToPlot = fmt.Errorf("nothing to plot")

const (
	width    = 1200
	height   = 640
	barWidth = 60
)

// Bar renders counts as a vertical bar chart
func Bar(title, yName string, counts analysis.Counts) ([]byte, error) {
	maxVal := 0.0
	bars := make([]chart.Value, 0, len(counts.Items))
	for _, item := range counts.Items {
		v := float64(item.Count)
		if v > maxVal {
			maxVal = v
		}
		bars = append(bars, chart.Value{Value: v, Label: item.Value})
	}
	if maxVal == 0 {
		return nil, ErrNothingToPlot
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			FillColor:   drawing.ColorWhite,
			StrokeColor: drawing.ColorFromHex("efefef"),
			StrokeWidth: 1,
			Padding:     chart.Box{Top: 40},
		},
		Height:   height,
		Width:    width,
		BarWidth: barWidth,
		Bars:     bars,
		YAxis: chart.YAxis{
			Name:  yName,
			Range: &chart.ContinuousRange{Min: 0, Max: maxVal},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering bar chart %q: %v", title, err)
	}
	return buffer.Bytes(), nil
}

// Donut renders counts as a donut chart; zero slices are left out
func Donut(title string, counts analysis.Counts) ([]byte, error) {
	var values []chart.Value
	for _, item := range counts.Items {
		if item.Count == 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: float64(item.Count),
			Label: fmt.Sprintf("%s (%d)", item.Value, item.Count),
		})
	}
	if len(values) == 0 {
		return nil, ErrNothingToPlot
	}

	graph := chart.DonutChart{
		Title:  title,
		Width:  height,
		Height: height,
		Values: values,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("error rendering donut chart %q: %v", title, err)
	}
	return buffer.Bytes(), nil
}

// WriteDashboard writes one PNG per chart of the dashboard into dir and returns
// the written paths. Charts with nothing to plot are skipped.
func WriteDashboard(dir string, d *report.Dashboard) ([]string, error) {
	if d.NoData {
		return nil, ErrNothingToPlot
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	type job struct {
		file   string
		render func() ([]byte, error)
	}
	jobs := []job{
		{"saran.png", func() ([]byte, error) {
			return Bar("Peringkat Kategori Saran dari Mahasiswa", "Jumlah Responden", d.Summary.SuggestionRanking)
		}},
		{"frekuensi.png", func() ([]byte, error) {
			return Bar("Frekuensi Penggunaan Lift", "Jumlah", d.Detail.UsageFrequency)
		}},
		{"waktu_tunggu.png", func() ([]byte, error) {
			return Bar("Waktu Tunggu di Jam Sibuk", "Jumlah", d.Detail.WaitTime)
		}},
		{"kecukupan.png", func() ([]byte, error) {
			return Donut("Apakah jumlah lift mencukupi?", d.Detail.Adequacy)
		}},
		{"pengalaman.png", func() ([]byte, error) {
			return Bar("Jumlah Responden yang 'Sering' Mengalami", "Jumlah", d.Detail.Experiences)
		}},
		{"penyebab.png", func() ([]byte, error) {
			return Bar("Penyebab Utama Antrean", "Jumlah", d.Detail.Causes)
		}},
		{"kendala.png", func() ([]byte, error) {
			return Bar("Kendala Utama Penggunaan Lift", "Jumlah", d.Detail.Obstacles)
		}},
	}

	var written []string
	for _, j := range jobs {
		png, err := j.render()
		if err == ErrNothingToPlot {
			continue
		}
		if err != nil {
			return written, err
		}
		path := filepath.Join(dir, j.file)
		if err := os.WriteFile(path, png, 0o644); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
