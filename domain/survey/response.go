package survey

import "math"

// RawRow is one source row as header -> cell text
type RawRow map[string]string

// RawTable is the untyped form every source produces
type RawTable struct {
	Headers []string
	Rows    []RawRow
}

// Response is one respondent's cleaned answers
type Response struct {
	Faculty            string
	Program            string
	Suggestion         string
	Adequacy           string
	Cause              string
	SuggestionCategory string
	UsageFrequency     string
	WaitTime           string
	EnterBeforeExit    string
	QueueJumping       string
	Discomfort         string
	Lateness           string
	Obstacle           string

	// Numeric holds num_* columns; a missing cell is NaN
	Numeric map[string]float64
}

// Label returns the value of a categorical column and whether it is present
func (r Response) Label(col Column) (string, bool) {
	var v string
	switch col {
	case ColFaculty:
		v = r.Faculty
	case ColProgram:
		v = r.Program
	case ColSuggestion:
		v = r.Suggestion
	case ColAdequacy:
		v = r.Adequacy
	case ColCause:
		v = r.Cause
	case ColSuggestionCategory:
		v = r.SuggestionCategory
	case ColUsageFrequency:
		v = r.UsageFrequency
	case ColWaitTime:
		v = r.WaitTime
	case ColEnterBeforeExit:
		v = r.EnterBeforeExit
	case ColQueueJumping:
		v = r.QueueJumping
	case ColDiscomfort:
		v = r.Discomfort
	case ColLateness:
		v = r.Lateness
	case ColObstacle:
		v = r.Obstacle
	}
	return v, v != ""
}

// Number returns a numeric cell; ok is false when the column is absent or the cell is missing
func (r Response) Number(col string) (float64, bool) {
	v, exists := r.Numeric[col]
	if !exists || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Table is an immutable, ordered set of responses
type Table struct {
	rows           []Response
	numericColumns []string
}

// NewTable builds a table; rows and columns are copied
func NewTable(rows []Response, numericColumns []string) *Table {
	t := &Table{
		rows:           make([]Response, len(rows)),
		numericColumns: make([]string, len(numericColumns)),
	}
	copy(t.rows, rows)
	copy(t.numericColumns, numericColumns)
	return t
}

// Len returns the row count
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns the i-th response
func (t *Table) Row(i int) Response {
	return t.rows[i]
}

// Rows returns a copy of the responses in natural order
func (t *Table) Rows() []Response {
	out := make([]Response, len(t.rows))
	copy(out, t.rows)
	return out
}

// NumericColumns returns the num_* headers in source order
func (t *Table) NumericColumns() []string {
	out := make([]string, len(t.numericColumns))
	copy(out, t.numericColumns)
	return out
}

// Where returns the sub-table of rows matching keep, preserving order
func (t *Table) Where(keep func(Response) bool) *Table {
	view := &Table{numericColumns: t.numericColumns}
	for _, r := range t.rows {
		if keep(r) {
			view.rows = append(view.rows, r)
		}
	}
	return view
}

// Distinct returns the non-empty values of col in first-appearance order
func (t *Table) Distinct(col Column) []string {
	seen := make(map[string]bool)
	var values []string
	for _, r := range t.rows {
		v, ok := r.Label(col)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	return values
}
