package testkit

import (
	"context"
	"sync/atomic"

	"liftdash/domain/survey"
	"liftdash/internal/errors"
)

// StaticSource is an in-memory ports.ResponseSource that counts reads
type StaticSource struct {
	Table *survey.RawTable
	Err   error
	Name  string

	reads atomic.Int64
}

// NewStaticSource serves the given table
func NewStaticSource(table *survey.RawTable) *StaticSource {
	return &StaticSource{Table: table, Name: "static"}
}

// NewMissingSource behaves like a file that does not exist
func NewMissingSource(name string) *StaticSource {
	return &StaticSource{Err: errors.NotFound(name), Name: name}
}

// ReadRaw implements ports.ResponseSource
func (s *StaticSource) ReadRaw(ctx context.Context) (*survey.RawTable, error) {
	s.reads.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Table, nil
}

// Describe implements ports.ResponseSource
func (s *StaticSource) Describe() string {
	return s.Name
}

// Reads reports how many times the source was read
func (s *StaticSource) Reads() int {
	return int(s.reads.Load())
}

// Row builds a response with the given faculty and program; other labels are filled in
func Row(faculty, program string) survey.Response {
	return survey.Response{
		Faculty:            faculty,
		Program:            program,
		Adequacy:           "Setuju",
		Cause:              "Jam Sibuk",
		SuggestionCategory: "Penambahan Unit Lift",
		UsageFrequency:     "Sering",
		WaitTime:           "3-5 Menit",
		EnterBeforeExit:    "Jarang",
		QueueJumping:       "Jarang",
		Discomfort:         "Jarang",
		Lateness:           "Jarang",
		Obstacle:           "Antrean Panjang",
		Numeric:            map[string]float64{},
	}
}

// Table builds a table from rows, collecting num_* columns in first-seen order
func Table(rows ...survey.Response) *survey.Table {
	seen := map[string]bool{}
	var numeric []string
	for _, r := range rows {
		for _, col := range sortedKeys(r.Numeric) {
			if !seen[col] {
				seen[col] = true
				numeric = append(numeric, col)
			}
		}
	}
	return survey.NewTable(rows, numeric)
}

// EngineeringTable is ten rows, three of them in "Engineering"
func EngineeringTable() *survey.Table {
	rows := []survey.Response{
		Row("Engineering", "Civil"),
		Row("Science", "Physics"),
		Row("Engineering", "Mechanical"),
		Row("Science", "Biology"),
		Row("Law", "Law"),
		Row("Engineering", "Civil"),
		Row("Science", "Physics"),
		Row("Law", ""),
		Row("Economics", "Management"),
		Row("Economics", "Accounting"),
	}
	for i := range rows {
		rows[i].Numeric = map[string]float64{
			"num_wait":   float64(i),
			"num_crowd":  float64(2*i + 1),
			"num_rating": float64(10 - i),
		}
	}
	return survey.NewTable(rows, []string{"num_wait", "num_crowd", "num_rating"})
}

// Raw converts typed responses back into a raw table with every required column
func Raw(table *survey.Table) *survey.RawTable {
	headers := make([]string, 0, len(survey.RequiredColumns))
	for _, c := range survey.RequiredColumns {
		headers = append(headers, string(c))
	}
	headers = append(headers, table.NumericColumns()...)

	raw := &survey.RawTable{Headers: headers}
	for _, r := range table.Rows() {
		row := survey.RawRow{}
		for _, c := range survey.RequiredColumns {
			v, _ := r.Label(c)
			row[string(c)] = v
		}
		for _, col := range table.NumericColumns() {
			if v, ok := r.Number(col); ok {
				row[col] = fToStr(v, 4)
			}
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}
