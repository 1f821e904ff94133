// Package filter narrows the survey table by faculty and then by study program.
package filter

import (
	"liftdash/domain/survey"
)

// Selection is the pair of filter values chosen by the user
type Selection struct {
	Faculty string `json:"fakultas"`
	Program string `json:"prodi"`
}

// All selects every row
var All = Selection{Faculty: survey.AllFaculties, Program: survey.AllPrograms}

// NewSelection maps blanks and "All" sentinels to the display sentinels; other
// values are kept verbatim
func NewSelection(faculty, program string) Selection {
	sel := Selection{Faculty: faculty, Program: program}
	if survey.IsAll(sel.Faculty) {
		sel.Faculty = survey.AllFaculties
	}
	if survey.IsAll(sel.Program) {
		sel.Program = survey.AllPrograms
	}
	return sel
}

// FacultyFiltered reports whether a faculty predicate applies
func (s Selection) FacultyFiltered() bool {
	return !survey.IsAll(s.Faculty)
}

// ProgramFiltered reports whether a program predicate applies
func (s Selection) ProgramFiltered() bool {
	return !survey.IsAll(s.Program)
}

// Apply filters table by faculty, then by program. Sentinel values are no-ops;
// other values match exactly and case-sensitively.
func Apply(table *survey.Table, faculty, program string) *survey.Table {
	return ApplySelection(table, NewSelection(faculty, program))
}

// ApplySelection is Apply over a normalized selection
func ApplySelection(table *survey.Table, sel Selection) *survey.Table {
	if table == nil {
		return survey.NewTable(nil, nil)
	}
	view := table
	if sel.FacultyFiltered() {
		view = view.Where(func(r survey.Response) bool { return r.Faculty == sel.Faculty })
	}
	if sel.ProgramFiltered() {
		view = view.Where(func(r survey.Response) bool { return r.Program == sel.Program })
	}
	return view
}

// OptionSet holds the select-box contents for one render
type OptionSet struct {
	Faculties []string  `json:"fakultas"`
	Programs  []string  `json:"prodi"`
	Selection Selection `json:"selection"`
}

// Options lists faculty options from the whole table and program options from the
// faculty-filtered table, each led by its sentinel. A chosen value that is no longer
// offered resets to the sentinel.
func Options(table *survey.Table, sel Selection) OptionSet {
	sel = NewSelection(sel.Faculty, sel.Program)

	faculties := []string{survey.AllFaculties}
	if table != nil {
		faculties = append(faculties, table.Distinct(survey.ColFaculty)...)
	}
	if !contains(faculties, sel.Faculty) {
		sel.Faculty = survey.AllFaculties
	}

	byFaculty := ApplySelection(table, Selection{Faculty: sel.Faculty, Program: survey.AllPrograms})
	programs := append([]string{survey.AllPrograms}, byFaculty.Distinct(survey.ColProgram)...)
	if !contains(programs, sel.Program) {
		sel.Program = survey.AllPrograms
	}

	return OptionSet{Faculties: faculties, Programs: programs, Selection: sel}
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
