package analysis

import (
	"math"
	"testing"

	"liftdash/domain/survey"
	"liftdash/internal/errors"
	"liftdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adequacyTable(answers ...string) *survey.Table {
	rows := make([]survey.Response, len(answers))
	for i, a := range answers {
		rows[i] = testkit.Row("Teknik", "Sipil")
		rows[i].Adequacy = a
	}
	return testkit.Table(rows...)
}

func TestDissatisfactionRate_FortyPercent(t *testing.T) {
	table := adequacyTable(
		"Tidak Setuju", "Setuju", "Tidak Setuju", "Setuju", "Setuju",
		"Tidak Setuju", "Setuju", "Setuju", "Tidak Setuju", "Setuju",
	)

	pct, err := DissatisfactionRate(table)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, pct, 1e-9)
}

func TestDissatisfactionRate_CountsBothNegativeAnswers(t *testing.T) {
	pct, err := DissatisfactionRate(adequacyTable("Sangat Tdk Setuju", "Tidak Setuju", "Netral", ""))
	require.NoError(t, err)
	assert.InDelta(t, 50.0, pct, 1e-9)
}

func TestPercentage_Bounds(t *testing.T) {
	table := testkit.EngineeringTable()

	none, err := Percentage(table, func(survey.Response) bool { return false })
	require.NoError(t, err)
	all, err := Percentage(table, func(survey.Response) bool { return true })
	require.NoError(t, err)
	assert.Equal(t, 0.0, none)
	assert.Equal(t, 100.0, all)
}

func TestPercentage_EmptyView(t *testing.T) {
	_, err := Percentage(testkit.Table(), func(survey.Response) bool { return true })
	assert.ErrorIs(t, err, ErrEmptyView)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
}

func TestValueCounts_PartitionsRows(t *testing.T) {
	table := testkit.EngineeringTable()

	counts := ValueCounts(table, survey.ColProgram)
	assert.Equal(t, table.Len(), counts.Total())
	assert.Equal(t, 1, counts.Missing)
	assert.Equal(t, Count{Value: "Civil", Count: 2}, counts.Items[0])
	assert.Equal(t, Count{Value: "Physics", Count: 2}, counts.Items[1])
	assert.Equal(t, "Mechanical", counts.Items[2].Value)
}

func TestValueCountsOrdered_ReindexesWithZeros(t *testing.T) {
	rows := []survey.Response{testkit.Row("A", "a"), testkit.Row("A", "a"), testkit.Row("A", "a")}
	rows[0].WaitTime = "> 10 Menit"
	rows[1].WaitTime = "< 3 Menit"
	rows[2].WaitTime = "entah"

	counts := ValueCountsOrdered(testkit.Table(rows...), survey.ColWaitTime, survey.WaitTimeOrder)
	assert.Equal(t, survey.WaitTimeOrder, counts.Labels())
	assert.Equal(t, []int{1, 0, 0, 1}, counts.Values())
}

func TestMode_SingleValue(t *testing.T) {
	mode, err := Mode(adequacyTable("Setuju", "Setuju"), survey.ColAdequacy)
	require.NoError(t, err)
	assert.Equal(t, "Setuju", mode)
}

func TestMode_TieGoesToFirstSeen(t *testing.T) {
	mode, err := Mode(adequacyTable("Netral", "Setuju", "Setuju", "Netral"), survey.ColAdequacy)
	require.NoError(t, err)
	assert.Equal(t, "Netral", mode)
}

func TestMode_IgnoresMissing(t *testing.T) {
	mode, err := Mode(adequacyTable("", "", "Setuju"), survey.ColAdequacy)
	require.NoError(t, err)
	assert.Equal(t, "Setuju", mode)

	_, err = Mode(adequacyTable("", ""), survey.ColAdequacy)
	assert.ErrorIs(t, err, ErrEmptyView)
}

func TestRegroupIndicators(t *testing.T) {
	rows := []survey.Response{testkit.Row("A", "a"), testkit.Row("A", "b"), testkit.Row("B", "c")}
	rows[0].QueueJumping = "Sering"
	rows[1].QueueJumping = "Sering"
	rows[1].Lateness = "Sering"
	rows[2].Discomfort = "Sering"
	rows[2].Lateness = "Sering"
	rows[2].EnterBeforeExit = "Kadang-kadang"

	counts := ExperienceFrequency(testkit.Table(rows...))

	// ascending by count; enter-before-exit never "Sering" so it is omitted
	assert.Equal(t, []string{"Merasa Tidak Nyaman", "Menyerobot Antrean", "Terlambat Kelas"}, counts.Labels())
	assert.Equal(t, []int{1, 2, 2}, counts.Values())
}

func TestRegroupIndicators_UnnamedColumnKeepsHeader(t *testing.T) {
	rows := []survey.Response{testkit.Row("A", "a")}
	rows[0].Obstacle = "Sering"

	counts := RegroupIndicators(testkit.Table(rows...), []survey.Column{survey.ColObstacle}, "Sering", nil)
	assert.Equal(t, []string{"label_kendala"}, counts.Labels())
}

func TestCorrelationMatrix_SymmetricUnitDiagonal(t *testing.T) {
	table := testkit.EngineeringTable()

	corr, ok := CorrelationMatrix(table)
	require.True(t, ok)
	require.Equal(t, []string{"num_wait", "num_crowd", "num_rating"}, corr.Columns)

	for i := range corr.Columns {
		assert.Equal(t, 1.0, corr.At(i, i))
		for j := range corr.Columns {
			assert.Equal(t, corr.At(i, j), corr.At(j, i))
		}
	}
	assert.InDelta(t, 1.0, corr.At(0, 1), 1e-9)
	assert.InDelta(t, -1.0, corr.At(0, 2), 1e-9)
}

func TestCorrelationMatrix_PairwiseCompleteAndConstant(t *testing.T) {
	rows := make([]survey.Response, 5)
	for i := range rows {
		rows[i] = testkit.Row("A", "a")
		rows[i].Numeric = map[string]float64{
			"num_a": float64(i),
			"num_b": float64(i * i),
			"num_c": 3,
		}
	}
	rows[4].Numeric["num_b"] = math.NaN()
	table := survey.NewTable(rows, []string{"num_a", "num_b", "num_c"})

	corr, ok := CorrelationMatrix(table)
	require.True(t, ok)
	assert.Greater(t, corr.At(0, 1), 0.9)
	assert.True(t, math.IsNaN(corr.At(2, 2)))
	assert.True(t, math.IsNaN(corr.At(0, 2)))
	assert.Len(t, corr.Rows(), 3)
}

func TestCorrelationMatrix_NeedsTwoColumns(t *testing.T) {
	rows := []survey.Response{testkit.Row("A", "a")}
	rows[0].Numeric = map[string]float64{"num_a": 1}

	corr, ok := CorrelationMatrix(testkit.Table(rows...))
	assert.False(t, ok)
	assert.Nil(t, corr)

	corr, ok = CorrelationMatrix(testkit.Table(testkit.Row("A", "a")))
	assert.False(t, ok)
	assert.Nil(t, corr)
}

func TestSuggestions(t *testing.T) {
	rows := []survey.Response{testkit.Row("A", "a"), testkit.Row("A", ""), testkit.Row("B", "b"), testkit.Row("C", "c"), testkit.Row("D", "d")}
	rows[0].Suggestion = "Tambah lift baru"
	rows[1].Suggestion = "Perbaiki AC lift"
	rows[2].Suggestion = "oke!!"
	rows[3].Suggestion = "lebih"
	// surrounding spaces count toward the length
	rows[4].Suggestion = "  abcd "

	got := Suggestions(testkit.Table(rows...))
	assert.Equal(t, []Suggestion{
		{Faculty: "A", Program: "a", Suggestion: "Tambah lift baru"},
		{Faculty: "D", Program: "d", Suggestion: "  abcd "},
	}, got)
}

func TestNumericSummary(t *testing.T) {
	rows := make([]survey.Response, 4)
	for i := range rows {
		rows[i] = testkit.Row("A", "a")
		rows[i].Numeric = map[string]float64{"num_a": float64(i + 1), "num_empty": math.NaN()}
	}
	table := survey.NewTable(rows, []string{"num_a", "num_empty"})

	summary := NumericSummary(table)
	require.Len(t, summary, 1)
	assert.Equal(t, "num_a", summary[0].Column)
	assert.Equal(t, 4, summary[0].N)
	assert.InDelta(t, 2.5, summary[0].Mean, 1e-9)
	assert.InDelta(t, 2.5, summary[0].Median, 1e-9)
	assert.Equal(t, 1.0, summary[0].Min)
	assert.Equal(t, 4.0, summary[0].Max)
}
