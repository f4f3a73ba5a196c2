package derive

import "github.com/riskboard/riskboard/pkg/types"

// ValidateFeatures checks that ranks are exactly 1..N and that importance is
// non-negative and non-increasing by rank.
func ValidateFeatures(features []types.FeatureImportance) error {
	if len(features) == 0 {
		return invalid("top_features", "empty")
	}
	ranked := RankedFeatures(features)

	names := make(map[string]struct{}, len(ranked))
	for i, f := range ranked {
		if f.Rank != i+1 {
			return invalid("top_features", "rank %d found where %d expected", f.Rank, i+1)
		}
		if f.Importance < 0 {
			return invalid("top_features", "%s has negative importance %g", f.Feature, f.Importance)
		}
		if i > 0 && f.Importance > ranked[i-1].Importance {
			return invalid("top_features", "rank %d (%g) is more important than rank %d (%g)",
				f.Rank, f.Importance, ranked[i-1].Rank, ranked[i-1].Importance)
		}
		if _, dup := names[f.Feature]; dup {
			return invalid("top_features", "feature %q listed twice", f.Feature)
		}
		names[f.Feature] = struct{}{}
	}
	return nil
}

// ValidateImpact checks the business impact figures are within range.
func ValidateImpact(b types.BusinessImpact) error {
	switch {
	case b.AnnualDropouts < 0:
		return invalid("business_impact.annual_dropouts", "negative: %d", b.AnnualDropouts)
	case b.DropoutRate < 0 || b.DropoutRate > 100:
		return invalid("business_impact.dropout_rate", "%g outside [0, 100]", b.DropoutRate)
	case b.AnnualCost < 0:
		return invalid("business_impact.annual_cost", "negative: %g", b.AnnualCost)
	case b.PotentialSavings < 0:
		return invalid("business_impact.potential_savings", "negative: %g", b.PotentialSavings)
	}
	return nil
}

// ValidateRegions checks the region count, per-record ranges, unique names and
// the descending dropout-rate order the pages rely on.
func ValidateRegions(records []types.RegionRecord) error {
	if len(records) != RegionCount {
		return invalid("regions", "got %d records, want %d", len(records), RegionCount)
	}
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if err := checkRegion(i, r); err != nil {
			return err
		}
		if _, dup := seen[r.Region]; dup {
			return invalid("regions", "region %q appears more than once", r.Region)
		}
		seen[r.Region] = struct{}{}
		if i > 0 && r.DropoutRate > records[i-1].DropoutRate {
			return invalid("regions", "%s (%g%%) is out of order after %s (%g%%)",
				r.Region, r.DropoutRate, records[i-1].Region, records[i-1].DropoutRate)
		}
	}
	return nil
}

func checkRegion(i int, r types.RegionRecord) error {
	switch {
	case r.Region == "":
		return invalid("regions", "record %d has no name", i)
	case r.DropoutRate < 0 || r.DropoutRate > 100:
		return invalid("regions", "%s dropout rate %g outside [0, 100]", r.Region, r.DropoutRate)
	case r.Beneficiaries < 0:
		return invalid("regions", "%s has negative beneficiaries %d", r.Region, r.Beneficiaries)
	case !r.RiskLevel.Valid():
		return invalid("regions", "%s has unknown risk level %q", r.Region, r.RiskLevel)
	}
	return nil
}
