// Package charts renders browser-viewable diagnostics for the catalog: the
// distribution of a single metric across all layouts and the ranking
// stability comparison between the anchored and min-max score bases.
package charts

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ergodata/layout.report/internal/db"
	"github.com/ergodata/layout.report/internal/httputil"
	"github.com/ergodata/layout.report/internal/scoring"
)

const echartsAssetsPrefix = "https://go-echarts.github.io/go-echarts-assets/assets/"

// WebServer serves the chart endpoints over the catalog database.
type WebServer struct {
	db   *db.DB
	lang string
}

func NewWebServer(database *db.DB, defaultLang string) *WebServer {
	return &WebServer{db: database, lang: defaultLang}
}

// AttachChartRoutes mounts the chart handlers on the given mux.
func (ws *WebServer) AttachChartRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/charts/metric", ws.handleMetricDistribution)
	mux.HandleFunc("/charts/stability", ws.handleScoreStability)
}

func (ws *WebServer) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lan"); lang != "" {
		return lang
	}
	return ws.lang
}

// handleMetricDistribution renders a scatter of one metric's value across
// every layout in the catalog, sorted ascending, with the reference layout
// highlighted so its position in the field is obvious at a glance.
// Query params:
//   - metric (required; one of the seven weighted metric names)
//   - lan (optional; defaults to the configured language)
func (ws *WebServer) handleMetricDistribution(w http.ResponseWriter, r *http.Request) {
	metric := r.URL.Query().Get("metric")
	if metric == "" {
		httputil.BadRequest(w, "metric parameter is required")
		return
	}
	known := false
	for _, m := range scoring.MetricNames {
		if m == metric {
			known = true
			break
		}
	}
	if !known {
		httputil.BadRequest(w, fmt.Sprintf("unknown metric %q", metric))
		return
	}
	lang := ws.language(r)

	records, err := ws.db.ListLayouts()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list layouts: %v", err))
		return
	}
	if len(records) == 0 {
		httputil.NotFound(w, "catalog is empty")
		return
	}

	type entry struct {
		name  string
		value float64
	}
	entries := make([]entry, 0, len(records))
	for _, c := range scoring.Candidates(records, lang) {
		entries = append(entries, entry{name: c.Name, value: c.Features.Value(metric)})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].value < entries[j].value })

	field := make([]opts.ScatterData, 0, len(entries))
	var reference []opts.ScatterData
	for i, e := range entries {
		pt := opts.ScatterData{Name: e.name, Value: []interface{}{i, e.value}}
		// Same fold as the scoring reference lookup.
		if strings.EqualFold(e.name, scoring.ReferenceLayout) {
			reference = append(reference, pt)
			continue
		}
		field = append(field, pt)
	}

	direction := "lower is better"
	if !scoring.LowerIsBetter(metric) {
		direction = "higher is better"
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Metric Distribution", Theme: "dark", Width: "1200px", Height: "600px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Distribution of %s", metric), Subtitle: fmt.Sprintf("language=%s layouts=%d (%s)", lang, len(entries), direction)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Rank", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: metric, NameLocation: "middle", NameGap: 35}),
	)
	scatter.AddSeries("layouts", field, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))
	if len(reference) > 0 {
		scatter.AddSeries(scoring.ReferenceLayout, reference,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 12}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))
	}

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleScoreStability runs the ranking stability simulation for two layouts
// and renders the average score trajectories under both bases side by side.
// The anchored lines stay flat and parallel; the min-max lines wander and
// may cross.
// Query params:
//   - a, b (required layout names)
//   - sims (optional; default 10, max 100)
//   - seed (optional; default 42)
//   - lan (optional)
func (ws *WebServer) handleScoreStability(w http.ResponseWriter, r *http.Request) {
	nameA := r.URL.Query().Get("a")
	nameB := r.URL.Query().Get("b")
	if nameA == "" || nameB == "" {
		httputil.BadRequest(w, "a and b parameters are required")
		return
	}
	sims := 10
	if v := r.URL.Query().Get("sims"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 100 {
			sims = parsed
		}
	}
	seed := int64(42)
	if v := r.URL.Query().Get("seed"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			seed = parsed
		}
	}
	lang := ws.language(r)

	records, err := ws.db.ListLayouts()
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to list layouts: %v", err))
		return
	}

	report, err := scoring.SimulateStability(scoring.Candidates(records, lang), scoring.DefaultWeights(), nameA, nameB, sims, seed)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	page := components.NewPage()
	page.SetAssetsHost(echartsAssetsPrefix)
	page.AddCharts(
		stabilityLineChart(report.Anchored, report.LayoutA, report.LayoutB, sims),
		stabilityLineChart(report.MinMax, report.LayoutA, report.LayoutB, sims),
	)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render charts: %v", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func stabilityLineChart(series scoring.StabilitySeries, nameA, nameB string, sims int) *charts.Line {
	avgA, avgB := series.Averages()

	x := make([]string, len(avgA))
	for i := range x {
		x[i] = strconv.Itoa(series.Start + i)
	}
	dataA := make([]opts.LineData, len(avgA))
	dataB := make([]opts.LineData, len(avgB))
	for i := range avgA {
		dataA[i] = opts.LineData{Value: avgA[i]}
		dataB[i] = opts.LineData{Value: avgB[i]}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Theme: "dark", Width: "1200px", Height: "500px", AssetsHost: echartsAssetsPrefix}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s normalization", series.Basis),
			Subtitle: fmt.Sprintf("%s vs %s, %d simulations, %d crossovers", nameA, nameB, sims, series.Crossovers),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Layouts in set", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Score", NameLocation: "middle", NameGap: 35}),
	)
	line.SetXAxis(x).
		AddSeries(nameA+" (avg)", dataA).
		AddSeries(nameB+" (avg)", dataB)
	return line
}
