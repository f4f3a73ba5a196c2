package api

import (
	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/report"
	"github.com/riskboard/riskboard/pkg/types"
	"github.com/riskboard/riskboard/server/internal/store"
)

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status      string `json:"status"` // "ok" | "unpublished"
	Title       string `json:"title,omitempty"`
	Revision    int    `json:"revision"`
	PublishedAt string `json:"published_at,omitempty"` // RFC3339
	PageCount   int    `json:"page_count"`
	RegionCount int    `json:"region_count"`
	AlertCount  int    `json:"alert_count"`
}

// PageListResponse is the payload for GET /api/v1/pages.
type PageListResponse struct {
	Title string           `json:"title"`
	Pages []report.PageRef `json:"pages"`
}

// InsightsResponse is the payload for GET /api/v1/insights.
type InsightsResponse struct {
	dataset.InsightSet
	PredictiveMultiple float64 `json:"predictive_multiple"`
}

// RegionResponse is one entry of GET /api/v1/regions.
type RegionResponse struct {
	types.RegionStrategy
	RiskLabel   string           `json:"risk_label"`
	GapToAvg    float64          `json:"gap_to_national_avg"` // percentage points
	Diagnostics []DiagnosticHint `json:"diagnostics"`
}

// StrategyResponse is the payload for GET /api/v1/strategy.
type StrategyResponse struct {
	Regions             []types.RegionStrategy `json:"regions"`
	TotalBeneficiaries  int                    `json:"total_beneficiaries"`
	TotalAnnualCost     int64                  `json:"total_annual_cost"`
	UrgentBeneficiaries int                    `json:"urgent_beneficiaries"`
}

// ProjectionResponse is the payload for GET /api/v1/projection.
type ProjectionResponse struct {
	types.FinancialProjection
	TotalInvestment float64 `json:"total_investment"`
	TotalSavings    float64 `json:"total_savings"`
	TotalNetBenefit float64 `json:"total_net_benefit"`
}

// AllocationResponse is the payload for GET /api/v1/allocation.
type AllocationResponse struct {
	Rows         []types.AllocationRow `json:"rows"`
	TotalPercent int                   `json:"total_percent"`
	TotalBudget  float64               `json:"total_budget"`
}

// SnapshotResponse is the payload for GET /api/v1/snapshot and the data of
// every WebSocket "report" message.
type SnapshotResponse struct {
	Revision    int                    `json:"revision"`
	Title       string                 `json:"title"`
	PublishedAt string                 `json:"published_at"` // RFC3339
	Pages       []report.PageRef       `json:"pages"`
	Strategy    []types.RegionStrategy `json:"strategy"`
	AlertCount  int                    `json:"alert_count"`
	History     []store.Publication    `json:"history"`
	GeneratedAt string                 `json:"generated_at"` // RFC3339
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
