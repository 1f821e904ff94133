package dataset

import (
	"math"
	"testing"

	"liftdash/domain/survey"
	"liftdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRaw() *survey.RawTable {
	return testkit.Raw(testkit.Table(
		testkit.Row("Teknik", "Sipil"),
		testkit.Row("Hukum", ""),
	))
}

func TestToTable_ConvertsRows(t *testing.T) {
	raw := validRaw()
	raw.Headers = append(raw.Headers, "num_tunggu")
	raw.Rows[0]["num_tunggu"] = " 3.5 "
	raw.Rows[1]["num_tunggu"] = "NaN"

	table, err := ToTable(raw)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"num_tunggu"}, table.NumericColumns())

	first := table.Row(0)
	assert.Equal(t, "Teknik", first.Faculty)
	assert.Equal(t, "Sipil", first.Program)
	v, ok := first.Number("num_tunggu")
	assert.True(t, ok)
	assert.Equal(t, 3.5, v)

	_, ok = table.Row(1).Number("num_tunggu")
	assert.False(t, ok)
	assert.True(t, math.IsNaN(table.Row(1).Numeric["num_tunggu"]))
	assert.Equal(t, "", table.Row(1).Program)
}

func TestToTable_MissingColumn(t *testing.T) {
	raw := validRaw()
	raw.Headers = raw.Headers[1:]

	_, err := ToTable(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Fakultas")
}

func TestToTable_DuplicateColumn(t *testing.T) {
	raw := validRaw()
	raw.Headers = append(raw.Headers, "Prodi")

	_, err := ToTable(raw)
	assert.ErrorContains(t, err, "duplicate column")
}

func TestToTable_KeepsCellsVerbatim(t *testing.T) {
	raw := validRaw()
	raw.Rows[0]["Fakultas"] = "Teknik "
	raw.Rows[0]["Saran_Masukan"] = "  abcd "

	table, err := ToTable(raw)
	require.NoError(t, err)
	assert.Equal(t, "Teknik ", table.Row(0).Faculty)
	assert.Equal(t, "  abcd ", table.Row(0).Suggestion)
}

func TestToTable_EmptyFaculty(t *testing.T) {
	raw := validRaw()
	raw.Rows[1]["Fakultas"] = "  "

	_, err := ToTable(raw)
	assert.ErrorContains(t, err, "row 3")
}

func TestToTable_BadNumber(t *testing.T) {
	raw := validRaw()
	raw.Headers = append(raw.Headers, "num_x")
	raw.Rows[0]["num_x"] = "lima"

	_, err := ToTable(raw)
	assert.ErrorContains(t, err, "not a number")
}

func TestToTable_Nil(t *testing.T) {
	_, err := ToTable(nil)
	assert.Error(t, err)
}

func TestParseNumber(t *testing.T) {
	for _, cell := range []string{"", " ", "nan", "NA", "null"} {
		v, err := parseNumber(cell)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(v), cell)
	}
	v, err := parseNumber("-2")
	require.NoError(t, err)
	assert.Equal(t, -2.0, v)
}
