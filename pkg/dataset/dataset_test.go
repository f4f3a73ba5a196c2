package dataset

import (
	"reflect"
	"testing"

	"github.com/riskboard/riskboard/pkg/types"
)

func TestInsights_Idempotent(t *testing.T) {
	a, b := Insights(), Insights()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Insights(): two calls returned different values")
	}
}

func TestRegions_Idempotent(t *testing.T) {
	a, b := Regions(), Regions()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Regions(): two calls returned different values")
	}
}

func TestInsights_TopFeature(t *testing.T) {
	in := Insights()
	if len(in.TopFeatures) != 10 {
		t.Fatalf("TopFeatures: got %d, want 10", len(in.TopFeatures))
	}
	top := in.TopFeatures[0]
	if top.Feature != "Months_Since_Claim" || top.Rank != 1 || top.Importance != 1.1717 {
		t.Errorf("TopFeatures[0]: got %+v", top)
	}
	if in.BusinessImpact.DropoutRate != 63.8 {
		t.Errorf("DropoutRate: got %v, want 63.8", in.BusinessImpact.DropoutRate)
	}
}

func TestRegions_Ranges(t *testing.T) {
	for _, r := range Regions() {
		if r.DropoutRate < 0 || r.DropoutRate > 100 {
			t.Errorf("%s: dropout rate %v outside [0, 100]", r.Region, r.DropoutRate)
		}
		if r.Beneficiaries < 0 {
			t.Errorf("%s: beneficiaries %d < 0", r.Region, r.Beneficiaries)
		}
		if !r.RiskLevel.Valid() {
			t.Errorf("%s: risk level %q not valid", r.Region, r.RiskLevel)
		}
	}
}

func TestDataset_AccessorsReturnCopies(t *testing.T) {
	ds := New()

	regions := ds.Regions()
	regions[0].Region = "Mutated"
	if got := ds.Regions()[0].Region; got != "Lagos" {
		t.Errorf("Regions()[0] after caller mutation: got %q, want Lagos", got)
	}

	in := ds.Insights()
	in.TopFeatures[0].Importance = 0
	in.Interventions[0].Actions[0] = "changed"
	again := ds.Insights()
	if again.TopFeatures[0].Importance != 1.1717 {
		t.Errorf("TopFeatures[0].Importance after caller mutation: got %v", again.TopFeatures[0].Importance)
	}
	if again.Interventions[0].Actions[0] == "changed" {
		t.Error("Interventions[0].Actions shares backing array with caller")
	}

	plan := ds.Emergency()
	plan.Budget[0].Amount = 1
	if ds.Emergency().Budget[0].Amount != 200_000 {
		t.Error("Emergency().Budget shares backing array with caller")
	}

	steps := ds.ActionSteps()
	steps[0].Details[0] = "changed"
	if ds.ActionSteps()[0].Details[0] == "changed" {
		t.Error("ActionSteps()[0].Details shares backing array with caller")
	}
}

func TestDataset_MatchesProviders(t *testing.T) {
	ds := New()
	if !reflect.DeepEqual(ds.Regions(), Regions()) {
		t.Error("Dataset.Regions differs from Regions()")
	}
	if !reflect.DeepEqual(ds.Insights(), Insights()) {
		t.Error("Dataset.Insights differs from Insights()")
	}
	if !reflect.DeepEqual(ds.Timeline(), Timeline()) {
		t.Error("Dataset.Timeline differs from Timeline()")
	}
}

func TestRiskLevel_Label(t *testing.T) {
	if got := types.RiskMediumHigh.Label(); got != "🟡 MEDIUM-HIGH" {
		t.Errorf("Label: got %q", got)
	}
}
