package derive

import (
	"math"

	"github.com/riskboard/riskboard/pkg/types"
)

// UnitIncidentCost is the cost in naira attributed to one dropout.
const UnitIncidentCost = 5000

// RegionCount is the number of regions the analysis covers.
const RegionCount = 8

// PriorityTable maps a region name to its action priority.
type PriorityTable map[string]types.Priority

// DefaultPriorityTable returns the priority assignment for the eight regions.
func DefaultPriorityTable() PriorityTable {
	return PriorityTable{
		"Lagos":         types.PriorityUrgent,
		"Enugu":         types.PriorityUrgent,
		"Kaduna":        types.PriorityHigh,
		"Kano":          types.PriorityMedium,
		"Abuja":         types.PriorityMedium,
		"Jos":           types.PriorityMedium,
		"Ibadan":        types.PriorityMedium,
		"Port Harcourt": types.PriorityStudy,
	}
}

// RegionalStrategy extends each record with its annual dropout cost and the
// priority found for its name in table. Output order follows records.
//
// The table must cover exactly the regions passed in: a count mismatch, a
// repeated region or a region absent from the table is a *ValidationError.
func RegionalStrategy(records []types.RegionRecord, table PriorityTable) ([]types.RegionStrategy, error) {
	if len(records) != RegionCount {
		return nil, invalid("regions", "got %d records, want %d", len(records), RegionCount)
	}
	if len(table) != len(records) {
		return nil, invalid("priority_table", "has %d entries for %d regions", len(table), len(records))
	}

	seen := make(map[string]struct{}, len(records))
	out := make([]types.RegionStrategy, 0, len(records))
	for i, r := range records {
		if _, dup := seen[r.Region]; dup {
			return nil, invalid("regions", "region %q appears more than once", r.Region)
		}
		seen[r.Region] = struct{}{}

		if err := checkRegion(i, r); err != nil {
			return nil, err
		}
		p, ok := table[r.Region]
		if !ok {
			return nil, invalid("priority_table", "no priority for region %q", r.Region)
		}
		out = append(out, types.RegionStrategy{
			RegionRecord: r,
			AnnualCost:   AnnualCost(r),
			Priority:     p,
		})
	}
	return out, nil
}

// AnnualCost returns beneficiaries × dropout_rate/100 × UnitIncidentCost,
// rounded to the nearest naira.
func AnnualCost(r types.RegionRecord) int64 {
	v := float64(r.Beneficiaries) * r.DropoutRate / 100 * UnitIncidentCost
	return int64(math.RoundToEven(v))
}

// CombinedBeneficiaries sums the beneficiaries of every region with priority p.
func CombinedBeneficiaries(strategies []types.RegionStrategy, p types.Priority) int {
	total := 0
	for _, s := range strategies {
		if s.Priority == p {
			total += s.Beneficiaries
		}
	}
	return total
}

// WithPriority returns the strategies with priority p, in input order.
func WithPriority(strategies []types.RegionStrategy, p types.Priority) []types.RegionStrategy {
	var out []types.RegionStrategy
	for _, s := range strategies {
		if s.Priority == p {
			out = append(out, s)
		}
	}
	return out
}

// StudyGap returns the region marked STUDY and how many percentage points its
// dropout rate sits below the worst region. ok is false when no region is
// marked STUDY.
func StudyGap(strategies []types.RegionStrategy) (study, worst types.RegionStrategy, gap float64, ok bool) {
	for i, s := range strategies {
		if i == 0 || s.DropoutRate > worst.DropoutRate {
			worst = s
		}
		if s.Priority == types.PriorityStudy && !ok {
			study, ok = s, true
		}
	}
	if !ok {
		return study, worst, 0, false
	}
	return study, worst, worst.DropoutRate - study.DropoutRate, true
}
