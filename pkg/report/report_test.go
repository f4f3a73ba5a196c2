package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/types"
)

func mustBuild(t *testing.T, opts Options) *Report {
	t.Helper()
	r, err := Build(dataset.New(), opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func mustPage(t *testing.T, r *Report, id PageID) *Page {
	t.Helper()
	p, ok := r.Page(id)
	if !ok {
		t.Fatalf("Page(%q): not found", id)
	}
	return p
}

// callout returns the first callout whose title contains substr.
func callout(t *testing.T, p *Page, substr string) *Callout {
	t.Helper()
	for _, s := range p.Sections {
		if s.Callout != nil && strings.Contains(s.Callout.Title, substr) {
			return s.Callout
		}
	}
	t.Fatalf("page %q: no callout titled %q", p.ID, substr)
	return nil
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

// brokenSource wraps a Dataset and lets a test replace the regions.
type brokenSource struct {
	*dataset.Dataset
	regions []types.RegionRecord
}

func (b brokenSource) Regions() []types.RegionRecord { return b.regions }

// featureSource wraps a Dataset and lets a test replace the feature ranking.
type featureSource struct {
	*dataset.Dataset
	features []types.FeatureImportance
}

func (f featureSource) Insights() dataset.InsightSet {
	in := f.Dataset.Insights()
	in.TopFeatures = f.features
	return in
}

func TestBuild_PagesInOrder(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	refs := r.Pages()
	want := []PageID{PageOverview, PageInsights, PageRegional, PageImpact, PageActions}
	if len(refs) != len(want) {
		t.Fatalf("Pages: got %d, want %d", len(refs), len(want))
	}
	for i, id := range want {
		if refs[i].ID != id {
			t.Errorf("Pages[%d]: got %q, want %q", i, refs[i].ID, id)
		}
		p := mustPage(t, r, id)
		if p.ID != id || p.Title == "" || len(p.Sections) == 0 {
			t.Errorf("page %q: incomplete %+v", id, p)
		}
	}
}

func TestBuild_UnknownPage(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	if _, ok := r.Page("settings"); ok {
		t.Error("Page(settings): expected not found")
	}
	if _, ok := ParsePageID("settings"); ok {
		t.Error("ParsePageID(settings): expected not found")
	}
	if id, ok := ParsePageID("regional"); !ok || id != PageRegional {
		t.Errorf("ParsePageID(regional): got %q %v", id, ok)
	}
}

func TestBuild_DerivedTables(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	if len(r.Strategy) != derive.RegionCount {
		t.Fatalf("Strategy: got %d rows, want %d", len(r.Strategy), derive.RegionCount)
	}
	lagos := r.Strategy[0]
	if lagos.Region != "Lagos" || lagos.AnnualCost != 4729990 || lagos.Priority != types.PriorityUrgent {
		t.Errorf("Lagos: got %+v", lagos)
	}
	if len(r.Allocation) != 4 {
		t.Errorf("Allocation: got %d rows, want 4", len(r.Allocation))
	}
	if len(r.Projection.Years) != 3 {
		t.Errorf("Projection years: got %d, want 3", len(r.Projection.Years))
	}
}

func TestBuild_WrongRegionCount(t *testing.T) {
	ds := dataset.New()
	src := brokenSource{Dataset: ds, regions: ds.Regions()[:7]}
	_, err := Build(src, DefaultOptions())
	var verr *derive.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build: got %v, want ValidationError", err)
	}
}

func TestBuild_UnknownPriorityRegion(t *testing.T) {
	opts := DefaultOptions()
	opts.Priorities = derive.DefaultPriorityTable()
	delete(opts.Priorities, "Lagos")
	opts.Priorities["Benin"] = types.PriorityHigh
	_, err := Build(dataset.New(), opts)
	var verr *derive.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Build: got %v, want ValidationError", err)
	}
}

func TestBuild_SingleFeature(t *testing.T) {
	src := featureSource{
		Dataset:  dataset.New(),
		features: []types.FeatureImportance{{Feature: "Months_Since_Claim", Importance: 1.1717, Rank: 1}},
	}
	r, err := Build(src, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	c := callout(t, mustPage(t, r, PageOverview), "Critical Discovery")
	if !containsLine(c.Lines, `"Months_Since_Claim" is the strongest predictor`) {
		t.Errorf("discovery: got %v", c.Lines)
	}
	c = callout(t, mustPage(t, r, PageInsights), "CRITICAL BUSINESS INSIGHT")
	if len(c.Lines) != 2 || containsLine(c.Lines, "more important than") {
		t.Errorf("insight lines: got %v", c.Lines)
	}
}

func TestBuild_FeaturesOutOfOrder(t *testing.T) {
	src := featureSource{
		Dataset: dataset.New(),
		features: []types.FeatureImportance{
			{Feature: "Total_Claims", Importance: 0.3125, Rank: 2},
			{Feature: "Months_Since_Claim", Importance: 1.1717, Rank: 1},
		},
	}
	r, err := Build(src, DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := callout(t, mustPage(t, r, PageInsights), "CRITICAL BUSINESS INSIGHT")
	if !strings.HasPrefix(c.Lines[0], "Months_Since_Claim (1.17)") {
		t.Errorf("first line: got %q", c.Lines[0])
	}
	if !containsLine(c.Lines, "3.7x more important than Total_Claims (0.31)") {
		t.Errorf("insight lines: got %v", c.Lines)
	}
}

func TestOverview_Metrics(t *testing.T) {
	p := mustPage(t, mustBuild(t, DefaultOptions()), PageOverview)
	metrics := p.Sections[0].Metrics
	want := map[string]string{
		"📊 Current Dropout Rate": "63.8%",
		"💰 Annual Cost":          "₦34.5M",
		"🎯 Model Accuracy":       "95.6%",
		"🏆 3-Year ROI":           "586%",
	}
	if len(metrics) != len(want) {
		t.Fatalf("metrics: got %d, want %d", len(metrics), len(want))
	}
	for _, m := range metrics {
		if want[m.Label] != m.Value {
			t.Errorf("metric %q: got %q, want %q", m.Label, m.Value, want[m.Label])
		}
	}
	c := callout(t, p, "Critical Discovery")
	if !containsLine(c.Lines, "3.7x more predictive") {
		t.Errorf("critical discovery: got %v", c.Lines)
	}
	c = callout(t, p, "Immediate Action")
	if !containsLine(c.Lines, "2,500+ beneficiaries with 90+ days") {
		t.Errorf("immediate action: got %v", c.Lines)
	}
}

func TestInsights_ChartAndTabs(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	chart, ok := r.Chart(PageInsights, ChartFeatureImportance)
	if !ok {
		t.Fatal("feature chart: not found")
	}
	pts := chart.Series[0].Data
	if len(pts) != 10 || pts[0].Label != "Months_Since_Claim" || pts[0].Value != 1.1717 {
		t.Errorf("feature chart: got %+v", pts)
	}

	p := mustPage(t, r, PageInsights)
	var tabs []Tab
	for _, s := range p.Sections {
		if s.Type == SectionTabs {
			tabs = s.Tabs
		}
	}
	wantImpact := []string{"= ₦6M savings", "= ₦2M savings", "= ₦1.9M savings"}
	if len(tabs) != len(wantImpact) {
		t.Fatalf("tabs: got %d, want %d", len(tabs), len(wantImpact))
	}
	for i, w := range wantImpact {
		if !strings.Contains(tabs[i].Impact, w) {
			t.Errorf("tab %d impact: got %q, want substring %q", i, tabs[i].Impact, w)
		}
	}
	if tabs[0].Heading != "Months Since Last Claim (Impact: 1.17)" {
		t.Errorf("tab 0 heading: got %q", tabs[0].Heading)
	}
}

func TestRegional_TableAndCallouts(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	p := mustPage(t, r, PageRegional)

	var table *TableData
	for _, s := range p.Sections {
		if s.Table != nil {
			table = s.Table
		}
	}
	if table == nil || table.Key != TableStrategy {
		t.Fatalf("strategy table: got %+v", table)
	}
	if len(table.Rows) != 8 {
		t.Fatalf("rows: got %d, want 8", len(table.Rows))
	}
	lagos := table.Rows[0]
	if lagos[0] != "Lagos" || lagos[2] != "1,429" || lagos[4] != "URGENT" || lagos[5] != "₦4,729,990" {
		t.Errorf("Lagos row: got %v", lagos)
	}
	if got := table.Summary.Values["annual_cost"]; got != "₦31,336,840" {
		t.Errorf("total cost: got %q", got)
	}

	chart, _ := r.Chart(PageRegional, ChartRegionalDropout)
	if len(chart.ReferenceLines) != 1 || chart.ReferenceLines[0].Value != 63.8 {
		t.Errorf("reference line: got %+v", chart.ReferenceLines)
	}
	if chart.Series[0].Data[0].Color != riskColors[types.RiskHigh] {
		t.Errorf("Lagos bar color: got %q", chart.Series[0].Data[0].Color)
	}

	if c := callout(t, p, "URGENT"); !containsLine(c.Lines, "Combined: 2,644 high-risk") {
		t.Errorf("urgent callout: got %v", c.Lines)
	}
	if c := callout(t, p, "BEST PRACTICE"); !containsLine(c.Lines, "5% better than Lagos") {
		t.Errorf("study callout: got %v", c.Lines)
	}
}

func TestImpact_ProjectionAndAllocation(t *testing.T) {
	r := mustBuild(t, DefaultOptions())
	chart, ok := r.Chart(PageImpact, ChartProjection)
	if !ok {
		t.Fatal("projection chart: not found")
	}
	if len(chart.Series) != 3 || chart.Series[2].Name != "Net Benefit" {
		t.Fatalf("series: got %+v", chart.Series)
	}
	if got := chart.Series[2].Data[0].Value; got < 8.3-derive.Tolerance || got > 8.3+derive.Tolerance {
		t.Errorf("Year 1 net: got %v, want 8.3", got)
	}

	var alloc *TableData
	for _, tb := range r.Tables() {
		if tb.Key == TableAllocation {
			alloc = tb
		}
	}
	if alloc == nil {
		t.Fatal("allocation table: not found")
	}
	if alloc.Summary.Values["budget_percent"] != "100%" || alloc.Summary.Values["annual_budget"] != "6.5" {
		t.Errorf("allocation summary: got %v", alloc.Summary.Values)
	}
}

func TestActions_BudgetAndDecision(t *testing.T) {
	p := mustPage(t, mustBuild(t, DefaultOptions()), PageActions)

	var steps []Step
	var budget []string
	for _, s := range p.Sections {
		switch s.Type {
		case SectionSteps:
			steps = s.Steps
		case SectionText:
			budget = s.Text
		}
	}
	if len(steps) != 3 || !steps[0].Expanded || steps[0].Attachment != AttachmentCriticalCases {
		t.Errorf("steps: got %+v", steps)
	}
	for _, want := range []string{"₦1.0M", "SMS campaigns: ₦200K", "100% ROI in first month"} {
		if !containsLine(budget, want) {
			t.Errorf("budget: missing %q in %v", want, budget)
		}
	}
	c := callout(t, p, "DECISION")
	if !containsLine(c.Lines, "₦1M emergency intervention vs ₦12.5M") {
		t.Errorf("decision: got %v", c.Lines)
	}
}

func TestBuild_CurrencySymbol(t *testing.T) {
	opts := DefaultOptions()
	opts.CurrencySymbol = "NGN "
	p := mustPage(t, mustBuild(t, opts), PageOverview)
	if got := p.Sections[0].Metrics[1].Value; got != "NGN 34.5M" {
		t.Errorf("annual cost: got %q, want %q", got, "NGN 34.5M")
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := mustBuild(t, DefaultOptions())
	b := mustBuild(t, DefaultOptions())
	for _, ref := range a.Pages() {
		pa, _ := a.Page(ref.ID)
		pb, _ := b.Page(ref.ID)
		if len(pa.Sections) != len(pb.Sections) {
			t.Errorf("page %q: section count differs", ref.ID)
		}
	}
}

func TestFormatHelpers(t *testing.T) {
	o := DefaultOptions()
	cases := []struct{ got, want string }{
		{formatInt(4729990), "4,729,990"},
		{o.money(200), "₦200"},
		{o.millions(14.8), "₦14.8M"},
		{o.compact(6_000_000), "₦6M"},
		{o.compact(1_900_000), "₦1.9M"},
		{o.compact(500_000), "₦500K"},
		{trim(5.000000000000007, 1), "5"},
		{pct(66.2), "66.2%"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("got %q, want %q", c.got, c.want)
		}
	}
}
