package survey

import "strings"

// Column names a categorical or free-text column of the response file
type Column string

// Source column names as they appear in the cleaned survey file
const (
	ColFaculty            Column = "Fakultas"
	ColProgram            Column = "Prodi"
	ColSuggestion         Column = "Saran_Masukan"
	ColAdequacy           Column = "label_kecukupan"
	ColCause              Column = "label_penyebab"
	ColSuggestionCategory Column = "label_saran_detail"
	ColUsageFrequency     Column = "label_frek_penggunaan"
	ColWaitTime           Column = "label_waktu_tunggu"
	ColEnterBeforeExit    Column = "label_pengalaman_masuk"
	ColQueueJumping       Column = "label_frek_menyerobot"
	ColDiscomfort         Column = "label_rasa_tidak_nyaman"
	ColLateness           Column = "label_terlambat"
	ColObstacle           Column = "label_kendala"
)

// NumericPrefix marks columns that feed the correlation matrix
const NumericPrefix = "num_"

// RequiredColumns lists every column a source must carry
var RequiredColumns = []Column{
	ColFaculty,
	ColProgram,
	ColSuggestion,
	ColAdequacy,
	ColCause,
	ColSuggestionCategory,
	ColUsageFrequency,
	ColWaitTime,
	ColEnterBeforeExit,
	ColQueueJumping,
	ColDiscomfort,
	ColLateness,
	ColObstacle,
}

// IsNumericColumn reports whether a header belongs to the numeric subset
func IsNumericColumn(header string) bool {
	return strings.HasPrefix(header, NumericPrefix)
}

// Filter sentinels shown as the first option of each select box
const (
	AllFaculties = "Semua Fakultas"
	AllPrograms  = "Semua Prodi"
)

// IsAll reports whether a selection means "no predicate"
func IsAll(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "all") || v == AllFaculties || v == AllPrograms
}

// Adequacy answers that count as dissatisfied
var DissatisfiedAnswers = []string{"Tidak Setuju", "Sangat Tdk Setuju"}

// UsageFrequencyOrder is the display order for label_frek_penggunaan
var UsageFrequencyOrder = []string{
	"Tidak Pernah",
	"Sangat Jarang",
	"Jarang",
	"Kadang-kadang",
	"Sering",
	"Sangat Sering",
}

// WaitTimeOrder is the display order for label_waktu_tunggu
var WaitTimeOrder = []string{"< 3 Menit", "3-5 Menit", "5-10 Menit", "> 10 Menit"}

// OftenAnswer is the indicator value compared across negative experiences
const OftenAnswer = "Sering"

// ExperienceColumns are the negative-experience indicators shown on one chart
var ExperienceColumns = []Column{
	ColEnterBeforeExit,
	ColQueueJumping,
	ColDiscomfort,
	ColLateness,
}

// ExperienceNames maps indicator columns to chart labels
var ExperienceNames = map[Column]string{
	ColEnterBeforeExit: "Orang Masuk Sblm Keluar",
	ColQueueJumping:    "Menyerobot Antrean",
	ColDiscomfort:      "Merasa Tidak Nyaman",
	ColLateness:        "Terlambat Kelas",
}

// LookupColumn resolves a header name to a known categorical column
func LookupColumn(name string) (Column, bool) {
	for _, col := range RequiredColumns {
		if string(col) == name {
			return col, true
		}
	}
	return "", false
}
