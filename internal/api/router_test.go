package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"liftdash/domain/survey"
	"liftdash/internal/dataset"
	"liftdash/internal/filter"
	"liftdash/internal/report"
	"liftdash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(src *testkit.StaticSource) http.Handler {
	return NewRouter(dataset.NewLoader(src, nil), nil)
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	src := testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable()))
	h := newRouter(src)

	rec := get(h, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(10), body["rows"])

	get(h, "/healthz")
	assert.Equal(t, 1, src.Reads(), "the source is read once across requests")
}

func TestMissingSourceIsUnavailable(t *testing.T) {
	h := newRouter(testkit.NewMissingSource("data_final_bersih.csv"))

	for _, target := range []string{"/healthz", "/api/dashboard", "/api/options", "/api/counts/label_penyebab"} {
		rec := get(h, target)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "NOT_FOUND", body["code"], target)
	}
}

func TestDashboard(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/dashboard?fakultas=Science")
	require.Equal(t, http.StatusOK, rec.Code)

	var d report.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, 10, d.TotalRows)
	assert.Equal(t, 3, d.FilteredRows)
	require.NotNil(t, d.Detail)
	require.NotNil(t, d.Detail.Correlation)
	assert.Equal(t, []string{"num_wait", "num_crowd", "num_rating"}, d.Detail.Correlation.Columns)
}

func TestDashboard_StaleProgramResets(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/dashboard?fakultas=Law&prodi=Civil")
	require.Equal(t, http.StatusOK, rec.Code)

	var d report.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	assert.Equal(t, "Law", d.Options.Selection.Faculty)
	assert.Equal(t, survey.AllPrograms, d.Options.Selection.Program, "a program outside the faculty resets")
	assert.Equal(t, 2, d.FilteredRows)
}

func TestOptions(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/options?fakultas=Engineering")
	require.Equal(t, http.StatusOK, rec.Code)

	var opts filter.OptionSet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	assert.Equal(t, survey.AllFaculties, opts.Faculties[0])
	assert.Equal(t, []string{survey.AllPrograms, "Civil", "Mechanical"}, opts.Programs)
}

func TestCounts(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/counts/Fakultas")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ColumnCounts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 10, body.Rows)
	assert.Equal(t, 10, body.Counts.Total())
	assert.Equal(t, "Engineering", body.Mode, "ties break by first appearance")
	require.Len(t, body.Counts.Items, 4)
	assert.Equal(t, 3, body.Counts.Items[0].Count)
}

func TestCounts_UnknownColumn(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	for _, target := range []string{"/api/counts/label_warna", "/api/counts/Saran_Masukan"} {
		rec := get(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "INVALID_INPUT")
	}
}

func TestSuggestions_EmptyIsArray(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/suggestions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCorrelation(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/correlation")
	require.Equal(t, http.StatusOK, rec.Code)

	var corr report.CorrelationTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corr))
	require.Len(t, corr.Values, 3)
	require.NotNil(t, corr.Values[0][2])
	assert.InDelta(t, -1.0, *corr.Values[0][2], 1e-9)
}

func TestCorrelation_FollowsSelection(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	rec := get(h, "/api/correlation?fakultas=Science&prodi=Physics")
	require.Equal(t, http.StatusOK, rec.Code)

	var corr report.CorrelationTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &corr))
	assert.Equal(t, []string{"num_wait", "num_crowd", "num_rating"}, corr.Columns)
	require.NotNil(t, corr.Values[0][2])
	assert.InDelta(t, -1.0, *corr.Values[0][2], 1e-9)
}

func TestCorrelation_NotEnoughColumns(t *testing.T) {
	raw := testkit.Raw(testkit.Table(testkit.Row("A", "a"), testkit.Row("B", "b")))
	h := newRouter(testkit.NewStaticSource(raw))

	rec := get(h, "/api/correlation")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestRequestIDHeaderAccepted(t *testing.T) {
	h := newRouter(testkit.NewStaticSource(testkit.Raw(testkit.EngineeringTable())))

	req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
