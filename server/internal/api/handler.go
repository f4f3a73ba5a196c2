package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/export"
	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/pkg/types"
	"github.com/riskboard/riskboard/server/internal/alerts"
	"github.com/riskboard/riskboard/server/internal/store"
)

// Recorder observes served requests. *metrics.Metrics satisfies it.
type Recorder interface {
	ObserveRequest(route string, code int, d time.Duration)
}

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads the published report from the store and returns JSON responses.
type Handler struct {
	store  *store.Store
	alerts *alerts.Engine
	rec    Recorder
	mux    *http.ServeMux
}

// New creates a Handler wired to the given store and alert engine and
// registers all routes. rec may be nil.
func New(st *store.Store, eng *alerts.Engine, rec Recorder) http.Handler {
	h := &Handler{store: st, alerts: eng, rec: rec, mux: http.NewServeMux()}

	h.route("/api/v1/health", h.health)
	h.route("/api/v1/pages", h.listPages)
	h.route("/api/v1/pages/", h.getPage) // subtree: {id} and {id}/charts/{key}.svg
	h.route("/api/v1/insights", h.insights)
	h.route("/api/v1/regions", h.regions)
	h.route("/api/v1/strategy", h.strategy)
	h.route("/api/v1/projection", h.projection)
	h.route("/api/v1/allocation", h.allocation)
	h.route("/api/v1/alerts", h.listAlerts)
	h.route("/api/v1/snapshot", h.snapshot)
	h.route("/api/v1/export/report.xlsx", h.exportWorkbook)
	h.route("/api/v1/export/critical-cases.xlsx", h.exportTemplate)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// route registers fn under pattern, rejecting non-GET methods and recording
// the outcome under the pattern name.
func (h *Handler) route(pattern string, fn http.HandlerFunc) {
	h.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		if r.Method != http.MethodGet {
			jsonErr(sw, http.StatusMethodNotAllowed, "method not allowed")
		} else {
			fn(sw, r)
		}
		if h.rec != nil {
			h.rec.ObserveRequest(pattern, sw.code, time.Since(start))
		}
	})
}

// current returns the published entry, answering 503 when there is none.
func (h *Handler) current(w http.ResponseWriter) (*store.Entry, bool) {
	e, ok := h.store.Current()
	if !ok {
		jsonErr(w, http.StatusServiceUnavailable, "report not published yet")
		return nil, false
	}
	return e, true
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health: publication status and counts.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "unpublished"}
	if h.alerts != nil {
		resp.AlertCount = h.alerts.Firing()
	}
	e, ok := h.store.Current()
	if !ok {
		jsonResp(w, http.StatusOK, resp)
		return
	}
	resp.Status = "ok"
	resp.Title = e.Report.Options.Title
	resp.Revision = e.Revision
	resp.PublishedAt = e.PublishedAt.UTC().Format(time.RFC3339)
	resp.PageCount = len(e.Report.Pages())
	resp.RegionCount = len(e.Report.Strategy)
	jsonResp(w, http.StatusOK, resp)
}

// listPages returns GET /api/v1/pages: the navigation entries.
func (h *Handler) listPages(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	jsonResp(w, http.StatusOK, PageListResponse{Title: e.Report.Options.Title, Pages: e.Report.Pages()})
}

// getPage returns GET /api/v1/pages/{id}: one built page: or
// GET /api/v1/pages/{id}/charts/{key}.svg: one chart rendered as SVG.
func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/pages/"), "/")
	if rest == "" {
		h.listPages(w, r)
		return
	}
	e, ok := h.current(w)
	if !ok {
		return
	}

	parts := strings.Split(rest, "/")
	id, ok := report.ParsePageID(parts[0])
	if !ok {
		jsonErr(w, http.StatusNotFound, fmt.Sprintf("page %q not found", parts[0]))
		return
	}

	switch {
	case len(parts) == 1:
		p, _ := e.Report.Page(id)
		jsonResp(w, http.StatusOK, p)
	case len(parts) == 3 && parts[1] == "charts" && strings.HasSuffix(parts[2], ".svg"):
		key := strings.TrimSuffix(parts[2], ".svg")
		chart, ok := e.Report.Chart(id, key)
		if !ok {
			jsonErr(w, http.StatusNotFound, fmt.Sprintf("chart %q not found on page %q", key, id))
			return
		}
		h.writeFile(w, export.ContentTypeSVG, "", func(buf io.Writer) error {
			return export.RenderChartSVG(buf, chart)
		})
	default:
		jsonErr(w, http.StatusNotFound, "not found")
	}
}

// insights returns GET /api/v1/insights: ranked features and business impact.
func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	in := e.Report.Insights
	jsonResp(w, http.StatusOK, InsightsResponse{
		InsightSet:         in,
		PredictiveMultiple: derive.PredictiveMultiple(in.TopFeatures),
	})
}

// regions returns GET /api/v1/regions: every region with diagnostics, in
// source order.
func (h *Handler) regions(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	national := e.Report.Insights.BusinessImpact.DropoutRate
	var total int64
	for _, s := range e.Report.Strategy {
		total += s.AnnualCost
	}
	out := make([]RegionResponse, 0, len(e.Report.Strategy))
	for _, s := range e.Report.Strategy {
		share := 0.0
		if total > 0 {
			share = float64(s.AnnualCost) / float64(total) * 100
		}
		out = append(out, RegionResponse{
			RegionStrategy: s,
			RiskLabel:      s.RiskLevel.Label(),
			GapToAvg:       s.DropoutRate - national,
			Diagnostics:    computeDiagnostics(s, national, share),
		})
	}
	jsonResp(w, http.StatusOK, out)
}

// strategy returns GET /api/v1/strategy: the derived regional strategy.
func (h *Handler) strategy(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	resp := StrategyResponse{
		Regions:             e.Report.Strategy,
		UrgentBeneficiaries: derive.CombinedBeneficiaries(e.Report.Strategy, types.PriorityUrgent),
	}
	for _, s := range e.Report.Strategy {
		resp.TotalBeneficiaries += s.Beneficiaries
		resp.TotalAnnualCost += s.AnnualCost
	}
	jsonResp(w, http.StatusOK, resp)
}

// projection returns GET /api/v1/projection: the reconciled 3-year projection.
func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	p := e.Report.Projection
	inv, sav, net := derive.ProjectionTotals(p)
	jsonResp(w, http.StatusOK, ProjectionResponse{
		FinancialProjection: p,
		TotalInvestment:     inv,
		TotalSavings:        sav,
		TotalNetBenefit:     net,
	})
}

// allocation returns GET /api/v1/allocation: the budget allocation.
func (h *Handler) allocation(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	resp := AllocationResponse{Rows: e.Report.Allocation}
	for _, a := range e.Report.Allocation {
		resp.TotalPercent += a.BudgetPercent
		resp.TotalBudget += a.AnnualBudget
	}
	jsonResp(w, http.StatusOK, resp)
}

// listAlerts returns GET /api/v1/alerts: firing and recently resolved alerts.
func (h *Handler) listAlerts(w http.ResponseWriter, r *http.Request) {
	if h.alerts == nil {
		jsonResp(w, http.StatusOK, []*alerts.Alert{})
		return
	}
	jsonResp(w, http.StatusOK, h.alerts.Active())
}

// snapshot returns GET /api/v1/snapshot: the current report summary.
func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.current(w); !ok {
		return
	}
	jsonResp(w, http.StatusOK, BuildSnapshot(h.store, h.alerts))
}

// exportWorkbook returns GET /api/v1/export/report.xlsx.
func (h *Handler) exportWorkbook(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	h.writeFile(w, export.ContentTypeXLSX, "dropout-risk-report.xlsx", func(buf io.Writer) error {
		return export.WriteWorkbook(buf, e.Report)
	})
}

// exportTemplate returns GET /api/v1/export/critical-cases.xlsx.
func (h *Handler) exportTemplate(w http.ResponseWriter, r *http.Request) {
	e, ok := h.current(w)
	if !ok {
		return
	}
	h.writeFile(w, export.ContentTypeXLSX, "critical-cases-template.xlsx", func(buf io.Writer) error {
		return export.WriteCriticalCasesTemplate(buf, e.Report)
	})
}

// --- helpers ----------------------------------------------------------------

// BuildSnapshot assembles the snapshot payload from the current store state.
// eng may be nil.
func BuildSnapshot(st *store.Store, eng *alerts.Engine) SnapshotResponse {
	resp := SnapshotResponse{
		History:     st.History(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if eng != nil {
		resp.AlertCount = eng.Firing()
	}
	e, ok := st.Current()
	if !ok {
		return resp
	}
	resp.Revision = e.Revision
	resp.Title = e.Report.Options.Title
	resp.PublishedAt = e.PublishedAt.UTC().Format(time.RFC3339)
	resp.Pages = e.Report.Pages()
	resp.Strategy = e.Report.Strategy
	return resp
}

// writeFile renders into a buffer first so a render failure still produces
// a JSON error instead of a truncated body.
func (h *Handler) writeFile(w http.ResponseWriter, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Error("api: render failed", "content_type", contentType, "err", err)
		jsonErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	if filename != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}

// statusWriter captures the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	code int
}

func (s *statusWriter) WriteHeader(code int) {
	s.code = code
	s.ResponseWriter.WriteHeader(code)
}
