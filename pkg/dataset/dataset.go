package dataset

import "github.com/riskboard/riskboard/pkg/types"

// Dataset is the immutable bundle of provider output the report is built
// from. Accessors return copies.
type Dataset struct {
	insights  InsightSet
	regions   []types.RegionRecord
	steps     []types.ActionStep
	timeline  []types.TimelineWeek
	emergency types.EmergencyPlan
}

// New constructs the Dataset from the embedded providers.
func New() *Dataset {
	return &Dataset{
		insights:  Insights(),
		regions:   Regions(),
		steps:     ActionSteps(),
		timeline:  Timeline(),
		emergency: Emergency(),
	}
}

// Insights returns a copy of the insights provider output.
func (d *Dataset) Insights() InsightSet {
	in := d.insights
	in.TopFeatures = append([]types.FeatureImportance(nil), d.insights.TopFeatures...)
	in.Model.Datasets = append([]string(nil), d.insights.Model.Datasets...)
	in.Interventions = make([]types.Intervention, len(d.insights.Interventions))
	for i, iv := range d.insights.Interventions {
		iv.Actions = append([]string(nil), iv.Actions...)
		in.Interventions[i] = iv
	}
	return in
}

// Regions returns a copy of the regional records in source order.
func (d *Dataset) Regions() []types.RegionRecord {
	return append([]types.RegionRecord(nil), d.regions...)
}

// ActionSteps returns a copy of the emergency seven-day plan.
func (d *Dataset) ActionSteps() []types.ActionStep {
	out := make([]types.ActionStep, len(d.steps))
	for i, s := range d.steps {
		s.Details = append([]string(nil), s.Details...)
		out[i] = s
	}
	return out
}

// Timeline returns a copy of the 30-day plan.
func (d *Dataset) Timeline() []types.TimelineWeek {
	return append([]types.TimelineWeek(nil), d.timeline...)
}

// Emergency returns a copy of the emergency budget request.
func (d *Dataset) Emergency() types.EmergencyPlan {
	e := d.emergency
	e.Budget = append([]types.BudgetLine(nil), d.emergency.Budget...)
	return e
}
