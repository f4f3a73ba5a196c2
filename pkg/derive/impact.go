package derive

import (
	"sort"

	"github.com/riskboard/riskboard/pkg/types"
)

// InterventionSavings is the naira saved by preventing n dropouts.
func InterventionSavings(n int) int64 {
	return int64(n) * UnitIncidentCost
}

// PredictiveMultiple returns how many times more important the top-ranked
// feature is than the second. Zero when fewer than two features exist or the
// second has no importance.
func PredictiveMultiple(features []types.FeatureImportance) float64 {
	if len(features) < 2 {
		return 0
	}
	ranked := RankedFeatures(features)
	if ranked[1].Importance == 0 {
		return 0
	}
	return ranked[0].Importance / ranked[1].Importance
}

// RankedFeatures returns a copy of features ordered by rank, ties keeping
// their input order.
func RankedFeatures(features []types.FeatureImportance) []types.FeatureImportance {
	ranked := append([]types.FeatureImportance(nil), features...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rank < ranked[j].Rank })
	return ranked
}

// EmergencyTotal sums the emergency budget lines.
func EmergencyTotal(plan types.EmergencyPlan) int64 {
	var total int64
	for _, l := range plan.Budget {
		total += l.Amount
	}
	return total
}

// EmergencyReturn returns the savings the emergency plan is expected to
// produce and its ROI in percent. ROI is zero for an empty budget.
func EmergencyReturn(plan types.EmergencyPlan) (savings int64, roiPct float64) {
	savings = InterventionSavings(plan.DropoutsPrevented)
	total := EmergencyTotal(plan)
	if total == 0 {
		return savings, 0
	}
	return savings, float64(savings) / float64(total) * 100
}
