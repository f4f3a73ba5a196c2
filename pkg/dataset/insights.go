package dataset

import "github.com/riskboard/riskboard/pkg/types"

// InsightSet is the output of the insights provider: ranked SHAP features, the
// business impact summary and the fixed figures the report quotes.
type InsightSet struct {
	TopFeatures    []types.FeatureImportance `json:"top_features"`
	BusinessImpact types.BusinessImpact      `json:"business_impact"`
	Model          types.ModelSummary        `json:"model"`
	Interventions  []types.Intervention      `json:"interventions"`
}

// Insights returns the embedded feature-importance ranking and business impact.
func Insights() InsightSet {
	return InsightSet{
		TopFeatures: []types.FeatureImportance{
			{Feature: "Months_Since_Claim", Importance: 1.1717, Rank: 1},
			{Feature: "Total_Claims", Importance: 0.3125, Rank: 2},
			{Feature: "Age", Importance: 0.2001, Rank: 3},
			{Feature: "Policy_Start_Date_ts", Importance: 0.1956, Rank: 4},
			{Feature: "Clinic_Visits", Importance: 0.1898, Rank: 5},
			{Feature: "Clinic_Access_Proxy", Importance: 0.1593, Rank: 6},
			{Feature: "Month_month", Importance: 0.0943, Rank: 7},
			{Feature: "Month_ts", Importance: 0.0751, Rank: 8},
			{Feature: "Claim_Denial_Rate", Importance: 0.0721, Rank: 9},
			{Feature: "Avg_Monthly_Balance_NGN", Importance: 0.0679, Rank: 10},
		},
		BusinessImpact: types.BusinessImpact{
			AnnualDropouts:   6909,
			DropoutRate:      63.8,
			AnnualCost:       34.5,
			PotentialSavings: 14.8,
			ROI3Year:         586,
		},
		Model: types.ModelSummary{
			Beneficiaries: 10829,
			Datasets: []string{
				"Policy information",
				"Mobile money transactions",
				"Weather data",
				"Clinic access metrics",
			},
			AccuracyPct:       95.6,
			RecallPct:         96,
			PaybackMonths:     4.3,
			TargetImprovement: 5.0,
			WastedSubsidies:   17.3,
			SubsidySharePct:   50,
			CriticalCases:     2500,
			InactivityDays:    90,
			LeadMonths:        "1-6",
		},
		Interventions: interventions(),
	}
}

// interventions returns the playbooks for the three highest-ranked features.
func interventions() []types.Intervention {
	return []types.Intervention{
		{
			Feature: "Months_Since_Claim",
			Title:   "Months Since Last Claim",
			Why:     "More predictive than any other factor",
			Actions: []string{
				"Emergency outreach to beneficiaries with 90+ days since claim",
				"Automated SMS after 60 days: \"We miss you! Free health check available\"",
				"Mobile health screening campaigns for inactive beneficiaries",
				"Deploy field agents for 90+ day cases",
			},
			DropoutsPrevented: 1200,
		},
		{
			Feature: "Total_Claims",
			Title:   "Total Claims",
			Why:     "Heavy users surprisingly at dropout risk",
			Actions: []string{
				"VIP support hotline for frequent claimants",
				"Dedicated case managers for 5+ claims/year",
				"Fast-track claim processing (24-hour resolution)",
				"Personal check-ins with high-value customers",
			},
			DropoutsPrevented: 400,
		},
		{
			Feature: "Age",
			Title:   "Age Demographics",
			Why:     "Different age groups need different approaches",
			Actions: []string{
				"Youth programs (18-30): social media engagement",
				"Family packages (31-50): workplace wellness",
				"Senior care (50+): home visits, simplified forms",
				"Age-appropriate communication channels",
			},
			DropoutsPrevented: 380,
		},
	}
}
