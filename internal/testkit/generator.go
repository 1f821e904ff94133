package testkit

import (
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"

	"liftdash/domain/survey"

	"github.com/xuri/excelize/v2"
)

// GeneratorConfig configures the synthetic survey generator
type GeneratorConfig struct {
	Rows int
	Seed int64

	// NumericColumns is the number of num_* columns to emit
	NumericColumns int

	// MissingProgramRate is the share of rows with an empty Prodi
	MissingProgramRate float64
}

// DefaultGeneratorConfig returns sensible defaults for survey generation
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Rows:               120,
		Seed:               42,
		NumericColumns:     4,
		MissingProgramRate: 0.05,
	}
}

// FacultyPrograms is the catalogue the generator draws from
var FacultyPrograms = map[string][]string{
	"Fakultas Ilmu Komputer":      {"Informatika", "Sistem Informasi", "Sains Data"},
	"Fakultas Teknik":             {"Teknik Sipil", "Teknik Kimia", "Teknik Industri"},
	"Fakultas Ekonomi dan Bisnis": {"Manajemen", "Akuntansi"},
	"Fakultas Hukum":              {"Ilmu Hukum"},
}

var facultyOrder = []string{
	"Fakultas Ilmu Komputer",
	"Fakultas Teknik",
	"Fakultas Ekonomi dan Bisnis",
	"Fakultas Hukum",
}

var (
	adequacyAnswers   = []string{"Sangat Setuju", "Setuju", "Netral", "Tidak Setuju", "Sangat Tdk Setuju"}
	causeAnswers      = []string{"Jumlah Lift Kurang", "Jam Sibuk", "Lift Sering Rusak", "Kapasitas Kecil"}
	suggestionAnswers = []string{"Penambahan Unit Lift", "Eskalator", "Pengaturan Antrean", "Perbaikan AC"}
	experienceAnswers = []string{"Tidak Pernah", "Jarang", "Kadang-kadang", "Sering"}
	obstacleAnswers   = []string{"Antrean Panjang", "AC Tidak Dingin", "Lift Penuh", "Tombol Rusak"}
	suggestionTexts   = []string{
		"Tambah lift di tower B",
		"ok",
		"Perlu petugas antrean saat jam sibuk",
		"",
		"AC di dalam lift tolong diperbaiki",
	}
)

// Generate produces a deterministic synthetic survey table
func Generate(cfg GeneratorConfig) (*survey.RawTable, error) {
	if cfg.Rows <= 0 {
		return nil, fmt.Errorf("rows must be > 0")
	}
	if cfg.NumericColumns < 0 {
		return nil, fmt.Errorf("numeric columns must be >= 0")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	headers := make([]string, 0, len(survey.RequiredColumns)+cfg.NumericColumns)
	for _, c := range survey.RequiredColumns {
		headers = append(headers, string(c))
	}
	numericHeaders := make([]string, cfg.NumericColumns)
	for i := range numericHeaders {
		numericHeaders[i] = fmt.Sprintf("%sq%d", survey.NumericPrefix, i+1)
	}
	headers = append(headers, numericHeaders...)

	table := &survey.RawTable{Headers: headers}
	for i := 0; i < cfg.Rows; i++ {
		faculty := facultyOrder[rng.Intn(len(facultyOrder))]
		programs := FacultyPrograms[faculty]
		program := programs[rng.Intn(len(programs))]
		if rng.Float64() < cfg.MissingProgramRate {
			program = ""
		}

		// a latent frustration score drives both labels and num_* columns
		frustration := rng.Float64()
		row := survey.RawRow{
			string(survey.ColFaculty):            faculty,
			string(survey.ColProgram):            program,
			string(survey.ColSuggestion):         suggestionTexts[rng.Intn(len(suggestionTexts))],
			string(survey.ColAdequacy):           pickScaled(adequacyAnswers, frustration, rng),
			string(survey.ColCause):              causeAnswers[rng.Intn(len(causeAnswers))],
			string(survey.ColSuggestionCategory): suggestionAnswers[rng.Intn(len(suggestionAnswers))],
			string(survey.ColUsageFrequency):     pickScaled(survey.UsageFrequencyOrder, frustration, rng),
			string(survey.ColWaitTime):           pickScaled(survey.WaitTimeOrder, frustration, rng),
			string(survey.ColEnterBeforeExit):    pickScaled(experienceAnswers, frustration, rng),
			string(survey.ColQueueJumping):       pickScaled(experienceAnswers, frustration, rng),
			string(survey.ColDiscomfort):         pickScaled(experienceAnswers, frustration, rng),
			string(survey.ColLateness):           pickScaled(experienceAnswers, frustration, rng),
			string(survey.ColObstacle):           obstacleAnswers[rng.Intn(len(obstacleAnswers))],
		}
		for j, h := range numericHeaders {
			v := 1 + 4*frustration + rng.NormFloat64()*0.6*float64(j+1)
			row[h] = fToStr(math.Max(1, math.Min(5, v)), 0)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// pickScaled picks an answer biased toward the end of the scale as level grows
func pickScaled(answers []string, level float64, rng *rand.Rand) string {
	pos := level*float64(len(answers)-1) + rng.NormFloat64()*0.8
	idx := int(math.Round(pos))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(answers) {
		idx = len(answers) - 1
	}
	return answers[idx]
}

// WriteCSV writes the table with headers in order
func WriteCSV(path string, table *survey.RawTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write(table.Headers); err != nil {
		return err
	}
	for _, row := range table.Rows {
		if err := w.Write(orderedCells(table.Headers, row)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteXLSX writes the table to Sheet1 of a new workbook
func WriteXLSX(path string, table *survey.RawTable) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for r, cells := range append([][]string{table.Headers}, rowsAsCells(table)...) {
		for c, v := range cells {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.SaveAs(path)
}

func rowsAsCells(table *survey.RawTable) [][]string {
	out := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		out[i] = orderedCells(table.Headers, row)
	}
	return out
}

func orderedCells(headers []string, row survey.RawRow) []string {
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = row[h]
	}
	return cells
}

func fToStr(x float64, decimals int) string {
	p := math.Pow10(decimals)
	x = math.Round(x*p) / p
	return strconv.FormatFloat(x, 'f', decimals, 64)
}
