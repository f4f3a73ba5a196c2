package api

import (
	"fmt"

	"github.com/riskboard/riskboard/pkg/types"
)

// DiagnosticHint is one human-readable insight about a region. The UI shows
// these as chips on the region card; Detail is shown on click.
type DiagnosticHint struct {
	// Key is a stable machine-readable identifier (used for dedup/ordering).
	Key string `json:"key"`
	// Level is "ok" | "info" | "warning" | "critical"
	Level string `json:"level"`
	// Title is a short label shown on the chip (≤ 5 words).
	Title string `json:"title"`
	// Detail is the full explanation shown on click/hover.
	Detail string `json:"detail"`
	// Value is an optional numeric value associated with this hint.
	Value *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives hints for one region from its strategy row.
// national is the national dropout rate; share is the region's fraction of
// the total annual cost, in percent.
// Diagnostics are ordered: critical first, then warnings, then info.
func computeDiagnostics(s types.RegionStrategy, national, share float64) []DiagnosticHint {
	var hints []DiagnosticHint

	// ── Priority ──────────────────────────────────────────────────────────────
	switch s.Priority {
	case types.PriorityUrgent:
		v := s.DropoutRate
		hints = append(hints, DiagnosticHint{
			Key:   "urgent",
			Level: "critical",
			Title: "Urgent intervention",
			Detail: fmt.Sprintf(
				"%s loses %.1f%% of its %d beneficiaries a year. "+
					"Start outreach to members with 90+ days since their last claim here first: "+
					"SMS in week one, field agent calls for non-responders.",
				s.Region, s.DropoutRate, s.Beneficiaries),
			Value: &v,
		})
	case types.PriorityHigh:
		v := s.DropoutRate
		hints = append(hints, DiagnosticHint{
			Key:   "high",
			Level: "warning",
			Title: "High priority",
			Detail: fmt.Sprintf(
				"%s is in the next intervention wave. Schedule automated SMS after 60 days "+
					"of inactivity and a mobile health screening within the month.",
				s.Region),
			Value: &v,
		})
	case types.PriorityStudy:
		hints = append(hints, DiagnosticHint{
			Key:   "study",
			Level: "ok",
			Title: "Best practice region",
			Detail: fmt.Sprintf(
				"%s has the lowest dropout rate (%.1f%%). Document what its clinics and "+
					"agents do differently and replicate it in the urgent regions.",
				s.Region, s.DropoutRate),
		})
	}

	// ── Distance from the national average ───────────────────────────────────
	gap := s.DropoutRate - national
	switch {
	case gap > 0:
		v := gap
		hints = append(hints, DiagnosticHint{
			Key:   "above_average",
			Level: "warning",
			Title: fmt.Sprintf("+%.1f pts vs national", gap),
			Detail: fmt.Sprintf(
				"Dropout here is %.1f percentage points above the national average of %.1f%%.",
				gap, national),
			Value: &v,
		})
	case gap < 0:
		v := -gap
		hints = append(hints, DiagnosticHint{
			Key:   "below_average",
			Level: "info",
			Title: fmt.Sprintf("-%.1f pts vs national", -gap),
			Detail: fmt.Sprintf(
				"Dropout here is %.1f percentage points below the national average of %.1f%%.",
				-gap, national),
			Value: &v,
		})
	}

	// ── Cost concentration ───────────────────────────────────────────────────
	if share >= 15 {
		v := share
		hints = append(hints, DiagnosticHint{
			Key:   "cost_share",
			Level: "info",
			Title: fmt.Sprintf("%.0f%% of total cost", share),
			Detail: fmt.Sprintf(
				"%s accounts for %.1f%% of the annual dropout cost across all regions, "+
					"mostly because of its %d beneficiaries.",
				s.Region, share, s.Beneficiaries),
			Value: &v,
		})
	}

	return sortHints(hints)
}

var levelOrder = map[string]int{"critical": 0, "warning": 1, "info": 2, "ok": 3}

// sortHints orders hints by level, keeping insertion order within a level.
func sortHints(h []DiagnosticHint) []DiagnosticHint {
	out := make([]DiagnosticHint, 0, len(h))
	for lvl := 0; lvl <= 3; lvl++ {
		for _, x := range h {
			if levelOrder[x.Level] == lvl {
				out = append(out, x)
			}
		}
	}
	return out
}
