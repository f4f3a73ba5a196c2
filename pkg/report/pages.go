package report

import (
	"fmt"
	"strconv"

	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/types"
)

// AttachmentCriticalCases names the critical-cases spreadsheet template
// offered by the first emergency step.
const AttachmentCriticalCases = "critical-cases"

func buildOverview(r *Report) *Page {
	o := r.Options
	in := r.Insights
	m := in.Model
	b := in.BusinessImpact
	top := derive.RankedFeatures(in.TopFeatures)[0]
	discovery := fmt.Sprintf("%q is the strongest predictor of dropout!", top.Feature)
	if multiple := derive.PredictiveMultiple(in.TopFeatures); multiple > 0 {
		discovery = fmt.Sprintf("%q is %sx more predictive of dropout than any other factor!", top.Feature, trim(multiple, 1))
	}

	lines := []string{
		"Objective: Predict and prevent customer dropout in microinsurance programs",
		fmt.Sprintf("Dataset: %s beneficiaries across %d integrated datasets", formatInt(int64(m.Beneficiaries)), len(m.Datasets)),
	}
	for _, d := range m.Datasets {
		lines = append(lines, "  • "+d)
	}
	lines = append(lines,
		fmt.Sprintf("Key Achievement: AI model identifies %s of dropouts %s months in advance", pct(m.AccuracyPct), m.LeadMonths),
		fmt.Sprintf("Business Impact: %s annual savings potential through targeted interventions", o.millions(b.PotentialSavings)),
	)

	return &Page{
		Subtitle: o.Title,
		Sections: []Section{
			{Type: SectionMetrics, Metrics: []Metric{
				{Label: "📊 Current Dropout Rate", Value: pct(b.DropoutRate), Delta: fmt.Sprintf("-%s%% potential improvement", trim(m.TargetImprovement, 1))},
				{Label: "💰 Annual Cost", Value: o.millions(b.AnnualCost), Delta: o.millions(b.PotentialSavings) + " recoverable"},
				{Label: "🎯 Model Accuracy", Value: pct(m.AccuracyPct), Delta: fmt.Sprintf("Can catch %s%% of dropouts", trim(m.RecallPct, 1))},
				{Label: "🏆 3-Year ROI", Value: trim(b.ROI3Year, 1) + "%", Delta: trim(m.PaybackMonths, 1) + " month payback"},
			}},
			{Type: SectionText, Title: "📋 Project Overview", Text: lines},
			{Type: SectionCallout, Callout: &Callout{
				Level: LevelError,
				Title: "🚨 Critical Discovery",
				Lines: []string{discovery},
			}},
			{Type: SectionCallout, Callout: &Callout{
				Level: LevelSuccess,
				Title: "Immediate Action Required",
				Lines: []string{
					fmt.Sprintf("Target %s+ beneficiaries with %d+ days since last claim", formatInt(int64(m.CriticalCases)), m.InactivityDays),
				},
			}},
		},
	}
}

func buildInsights(r *Report) *Page {
	o := r.Options
	in := r.Insights
	features := derive.RankedFeatures(in.TopFeatures)

	importance := make(map[string]float64, len(features))
	for _, f := range features {
		importance[f.Feature] = f.Importance
	}

	lines := []string{
		fmt.Sprintf("%s (%s) is by far the strongest dropout predictor", features[0].Feature, trim(features[0].Importance, 2)),
	}
	if multiple := derive.PredictiveMultiple(features); multiple > 0 {
		lines = append(lines, fmt.Sprintf("%sx more important than %s (%s)", trim(multiple, 1), features[1].Feature, trim(features[1].Importance, 2)))
	}
	lines = append(lines, "Customers who stop using their insurance are likely to drop out")

	tabs := make([]Tab, 0, len(in.Interventions))
	for i, iv := range in.Interventions {
		tabs = append(tabs, Tab{
			Label:   fmt.Sprintf("Priority #%d", i+1),
			Heading: fmt.Sprintf("%s (Impact: %s)", iv.Title, trim(importance[iv.Feature], 2)),
			Why:     iv.Why,
			Actions: append([]string(nil), iv.Actions...),
			Impact: fmt.Sprintf("Prevent %s+ dropouts = %s savings annually",
				formatInt(int64(iv.DropoutsPrevented)), o.compact(derive.InterventionSavings(iv.DropoutsPrevented))),
		})
	}

	return &Page{
		Subtitle: fmt.Sprintf("Machine Learning Analysis of %s Beneficiaries", formatInt(int64(in.Model.Beneficiaries))),
		Sections: []Section{
			{Type: SectionChart, Title: "🎯 What Drives Customer Dropout?", Chart: featureChart(features)},
			{Type: SectionCallout, Callout: &Callout{Level: LevelError, Title: "🚨 CRITICAL BUSINESS INSIGHT", Lines: lines}},
			{Type: SectionTabs, Title: "💡 Recommended Business Actions", Tabs: tabs},
		},
	}
}

func buildRegional(r *Report) *Page {
	o := r.Options
	sections := []Section{
		{Type: SectionChart, Title: "📊 Regional Dropout Rates", Chart: regionalChart(r.Regions, r.Insights.BusinessImpact.DropoutRate)},
		{Type: SectionTable, Table: o.strategyTable(r.Strategy)},
	}

	urgent := derive.WithPriority(r.Strategy, types.PriorityUrgent)
	if len(urgent) > 0 {
		var lines []string
		for _, s := range urgent {
			lines = append(lines, fmt.Sprintf("%s: %s dropout (%s beneficiaries)", s.Region, pct(s.DropoutRate), formatInt(int64(s.Beneficiaries))))
		}
		lines = append(lines, fmt.Sprintf("Combined: %s high-risk beneficiaries",
			formatInt(int64(derive.CombinedBeneficiaries(r.Strategy, types.PriorityUrgent)))))
		sections = append(sections, Section{Type: SectionCallout, Callout: &Callout{
			Level: LevelError, Title: "🔴 URGENT INTERVENTION", Lines: lines,
		}})
	}

	if study, worst, gap, ok := derive.StudyGap(r.Strategy); ok {
		sections = append(sections, Section{Type: SectionCallout, Callout: &Callout{
			Level: LevelSuccess,
			Title: "🟢 BEST PRACTICE STUDY",
			Lines: []string{
				fmt.Sprintf("%s: %s dropout (best performance)", study.Region, pct(study.DropoutRate)),
				fmt.Sprintf("%s%% better than %s", trim(gap, 1), worst.Region),
				"Study success factors for replication",
			},
		}})
	}

	return &Page{
		Subtitle: fmt.Sprintf("%d Regions Across Nigeria", len(r.Regions)),
		Sections: sections,
	}
}

func buildImpact(r *Report) *Page {
	o := r.Options
	b := r.Insights.BusinessImpact
	m := r.Insights.Model

	return &Page{
		Subtitle: "Financial Analysis & ROI Projections",
		Sections: []Section{
			{Type: SectionMetrics, Title: "Current Situation", Metrics: []Metric{
				{Label: "Current Annual Cost", Value: o.millions(b.AnnualCost), Delta: "Customer churn loss"},
				{Label: "Wasted Subsidies", Value: o.millions(m.WastedSubsidies), Delta: trim(m.SubsidySharePct, 1) + "% government funded"},
			}},
			{Type: SectionMetrics, Title: "With AI Solution", Metrics: []Metric{
				{Label: "Potential Savings", Value: o.millions(b.PotentialSavings), Delta: "With AI intervention"},
				{Label: "Implementation Cost", Value: o.millions(r.Projection.Investment[0]), Delta: "Year 1 investment"},
			}},
			{Type: SectionMetrics, Title: "Returns", Metrics: []Metric{
				{Label: "3-Year ROI", Value: trim(b.ROI3Year, 1) + "%", Delta: trim(b.ROI3Year, 1) + "% return"},
				{Label: "Payback Period", Value: trim(m.PaybackMonths, 1) + " months", Delta: "Break-even timeline"},
			}},
			{Type: SectionChart, Title: "📈 3-Year Financial Projection", Chart: projectionChart(r.Projection)},
			{Type: SectionTable, Table: o.allocationTable(r.Allocation)},
		},
	}
}

func buildActions(r *Report) *Page {
	o := r.Options
	m := r.Insights.Model
	plan := r.Emergency

	steps := make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		steps[i] = Step{
			Window:  s.Window,
			Title:   fmt.Sprintf("Step %d: %s", i+1, s.Title),
			Summary: s.Summary,
			Details: append([]string(nil), s.Details...),
		}
	}
	if len(steps) > 0 {
		steps[0].Expanded = true
		steps[0].Attachment = AttachmentCriticalCases
	}

	total := derive.EmergencyTotal(plan)
	savings, roi := derive.EmergencyReturn(plan)
	budget := []string{"Emergency Budget Needed: " + o.millions(float64(total)/1e6)}
	for _, l := range plan.Budget {
		budget = append(budget, fmt.Sprintf("  • %s: %s", l.Item, o.compact(l.Amount)))
	}
	budget = append(budget,
		fmt.Sprintf("Expected ROI: prevent %s dropouts in %d days", formatInt(int64(plan.DropoutsPrevented)), plan.WindowDays),
		fmt.Sprintf("Save %s in acquisition costs", o.millions(float64(savings)/1e6)),
		strconv.FormatFloat(roi, 'f', 0, 64)+"% ROI in first month",
	)

	exposure := derive.InterventionSavings(m.CriticalCases)
	return &Page{
		Subtitle: "What to Do Right Now",
		Sections: []Section{
			{Type: SectionSteps, Title: "🚨 Emergency Actions (Next 7 Days)", Steps: steps},
			{Type: SectionTable, Table: timelineTable(r.Timeline)},
			{Type: SectionText, Title: "💰 Budget Request", Text: budget},
			{Type: SectionCallout, Callout: &Callout{
				Level: LevelError,
				Title: "🎯 DECISION REQUIRED",
				Lines: []string{
					fmt.Sprintf("The Data Shows: %s+ beneficiaries are at critical dropout risk RIGHT NOW", formatInt(int64(m.CriticalCases))),
					fmt.Sprintf("The Cost: %s emergency intervention vs %s if they all drop out", o.compact(total), o.compact(exposure)),
					fmt.Sprintf("The Ask: Approve %s emergency budget to start interventions immediately", o.compact(total)),
				},
			}},
		},
	}
}
