package charts

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ergodata/layout.report/internal/dataset"
	"github.com/ergodata/layout.report/internal/db"
)

func chartServerWith(t *testing.T, doc *dataset.Document) *httptest.Server {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.IngestDocument(doc, "test")
	require.NoError(t, err)

	mux := http.NewServeMux()
	NewWebServer(database, "english").AttachChartRoutes(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func chartServer(t *testing.T) *httptest.Server {
	t.Helper()
	doc := &dataset.Document{
		Languages: []string{"english"},
		Layouts: []dataset.LayoutRecord{
			{Name: "qwerty", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "4.38%", BigramRollIn: "20%", RollIn: "13%"},
			}},
			{Name: "graphite", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "0.68%", BigramRollIn: "26%", RollIn: "16%"},
			}},
			{Name: "octa8", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "1.2%", BigramRollIn: "28%", RollIn: "17%"},
			}},
			{Name: "colemak", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "1.4%", BigramRollIn: "25%", RollIn: "15%"},
			}},
		},
	}
	return chartServerWith(t, doc)
}

func TestMetricDistributionChart(t *testing.T) {
	srv := chartServer(t)

	resp, err := http.Get(srv.URL + "/charts/metric?metric=sfb")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "qwerty"), "reference series missing from chart")
}

func TestMetricDistributionChartFoldsReference(t *testing.T) {
	doc := &dataset.Document{
		Languages: []string{"english"},
		Layouts: []dataset.LayoutRecord{
			{Name: "Qwerty", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "4.38%"},
			}},
			{Name: "graphite", Metrics: map[string]dataset.Metrics{
				"english": {SameFingerBigram: "0.68%"},
			}},
		},
	}
	srv := chartServerWith(t, doc)

	resp, err := http.Get(srv.URL + "/charts/metric?metric=sfb")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "ff5252", "capitalized reference lost its highlight")
}

func TestMetricDistributionChartRejects(t *testing.T) {
	srv := chartServer(t)

	tests := []struct {
		name string
		path string
		code int
	}{
		{"missing metric", "/charts/metric", http.StatusBadRequest},
		{"unknown metric", "/charts/metric?metric=wpm", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.code, resp.StatusCode)
		})
	}
}

func TestScoreStabilityChart(t *testing.T) {
	srv := chartServer(t)

	resp, err := http.Get(srv.URL + "/charts/stability?a=graphite&b=octa8&sims=3&seed=7")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "graphite")
	assert.Contains(t, string(body), "octa8")
}

func TestScoreStabilityChartRejects(t *testing.T) {
	srv := chartServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing names", "/charts/stability"},
		{"unknown layout", "/charts/stability?a=graphite&b=missing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}
