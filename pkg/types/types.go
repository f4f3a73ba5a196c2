package types

// FeatureImportance is one ranked SHAP attribution score.
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
	Rank       int     `json:"rank"`
}

// BusinessImpact summarises the cost of dropouts. Currency fields are in
// millions of naira.
type BusinessImpact struct {
	AnnualDropouts   int     `json:"annual_dropouts"`
	DropoutRate      float64 `json:"dropout_rate"` // percent, 0–100
	AnnualCost       float64 `json:"annual_cost"`
	PotentialSavings float64 `json:"potential_savings"`
	ROI3Year         float64 `json:"roi_3year"` // percent
}

// RiskLevel is the qualitative risk band attached to a region.
type RiskLevel string

// Risk levels, highest first.
const (
	RiskHigh       RiskLevel = "HIGH"
	RiskMediumHigh RiskLevel = "MEDIUM_HIGH"
	RiskMedium     RiskLevel = "MEDIUM"
	RiskLowest     RiskLevel = "LOWEST"
)

// Valid reports whether r is one of the known risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskHigh, RiskMediumHigh, RiskMedium, RiskLowest:
		return true
	}
	return false
}

// Label returns the badge text shown next to a region.
func (r RiskLevel) Label() string {
	switch r {
	case RiskHigh:
		return "🔴 HIGH"
	case RiskMediumHigh:
		return "🟡 MEDIUM-HIGH"
	case RiskMedium:
		return "🟡 MEDIUM"
	case RiskLowest:
		return "🟢 LOWEST"
	default:
		return string(r)
	}
}

// RegionRecord is the dropout profile of one region.
type RegionRecord struct {
	Region        string    `json:"region"`
	DropoutRate   float64   `json:"dropout_rate"` // percent, 0–100
	Beneficiaries int       `json:"beneficiaries"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// Priority is the action urgency assigned to a region.
type Priority string

// Action priorities.
const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityStudy  Priority = "STUDY"
)

// RegionStrategy is a RegionRecord extended with its derived annual cost
// (whole naira) and action priority.
type RegionStrategy struct {
	RegionRecord
	AnnualCost int64    `json:"annual_cost"`
	Priority   Priority `json:"priority"`
}

// FinancialProjection holds parallel per-year series in millions of naira.
// NetBenefit[i] must equal Savings[i] - Investment[i].
type FinancialProjection struct {
	Years      []string  `json:"years"`
	Investment []float64 `json:"investment"`
	Savings    []float64 `json:"savings"`
	NetBenefit []float64 `json:"net_benefit"`
}

// AllocationRow is one intervention category in the recommended budget split.
type AllocationRow struct {
	Intervention      string  `json:"intervention"`
	SHAPPriority      string  `json:"shap_priority"`
	BudgetPercent     int     `json:"budget_percent"`
	AnnualBudget      float64 `json:"annual_budget"` // millions of naira
	DropoutsPrevented int     `json:"dropouts_prevented"`
}

// Intervention is the action playbook tied to one predictive feature.
type Intervention struct {
	Feature           string   `json:"feature"`
	Title             string   `json:"title"`
	Why               string   `json:"why"`
	Actions           []string `json:"actions"`
	DropoutsPrevented int      `json:"dropouts_prevented"`
}

// ModelSummary carries the fixed demonstration figures quoted by the report.
type ModelSummary struct {
	Beneficiaries     int      `json:"beneficiaries"`
	Datasets          []string `json:"datasets"`
	AccuracyPct       float64  `json:"accuracy_pct"`
	RecallPct         float64  `json:"recall_pct"`
	PaybackMonths     float64  `json:"payback_months"`
	TargetImprovement float64  `json:"target_improvement"` // percentage points
	WastedSubsidies   float64  `json:"wasted_subsidies"`   // millions of naira
	SubsidySharePct   float64  `json:"subsidy_share_pct"`
	CriticalCases     int      `json:"critical_cases"`
	InactivityDays    int      `json:"inactivity_days"`
	LeadMonths        string   `json:"lead_months"`
}

// ActionStep is one entry of the emergency seven-day plan.
type ActionStep struct {
	Window  string   `json:"window"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Details []string `json:"details"`
}

// TimelineWeek is one row of the 30-day implementation plan.
type TimelineWeek struct {
	Week          string `json:"week"`
	Focus         string `json:"focus"`
	KeyActivities string `json:"key_activities"`
	SuccessMetric string `json:"success_metric"`
}

// BudgetLine is one item of the emergency budget request, in naira.
type BudgetLine struct {
	Item   string `json:"item"`
	Amount int64  `json:"amount"`
}

// EmergencyPlan is the quick-action budget request.
type EmergencyPlan struct {
	Budget            []BudgetLine `json:"budget"`
	DropoutsPrevented int          `json:"dropouts_prevented"`
	WindowDays        int          `json:"window_days"`
}
