package report

import (
	"fmt"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/types"
)

// Source supplies the static analytics a report is built from.
// *dataset.Dataset satisfies it.
type Source interface {
	Insights() dataset.InsightSet
	Regions() []types.RegionRecord
	ActionSteps() []types.ActionStep
	Timeline() []types.TimelineWeek
	Emergency() types.EmergencyPlan
}

// Options controls presentation only. Changing options never changes the
// derived figures.
type Options struct {
	Title          string
	CurrencySymbol string
	// Priorities overrides the default region → priority table when non-nil.
	Priorities derive.PriorityTable
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Title:          "Microinsurance Dropout Risk Analysis",
		CurrencySymbol: "₦",
	}
}

// Report is a fully built, immutable report. Callers must not modify the
// slices or pages it hands out.
type Report struct {
	Options    Options
	Insights   dataset.InsightSet
	Regions    []types.RegionRecord
	Strategy   []types.RegionStrategy
	Projection types.FinancialProjection
	Allocation []types.AllocationRow
	Steps      []types.ActionStep
	Timeline   []types.TimelineWeek
	Emergency  types.EmergencyPlan

	pages map[PageID]*Page
}

type pageBuilder struct {
	ref   PageRef
	build func(*Report) *Page
}

// builders is the page dispatch table, in navigation order.
var builders = []pageBuilder{
	{PageRef{ID: PageOverview, Icon: "🏠", Title: "Overview"}, buildOverview},
	{PageRef{ID: PageInsights, Icon: "🧠", Title: "AI Insights"}, buildInsights},
	{PageRef{ID: PageRegional, Icon: "🗺️", Title: "Regional Analysis"}, buildRegional},
	{PageRef{ID: PageImpact, Icon: "💰", Title: "Business Impact"}, buildImpact},
	{PageRef{ID: PageActions, Icon: "⚡", Title: "Quick Actions"}, buildActions},
}

// Build validates src, runs every derivation and builds all pages.
// Validation and arithmetic faults are returned unwrapped as
// *derive.ValidationError or *derive.ArithmeticInconsistency.
func Build(src Source, opts Options) (*Report, error) {
	def := DefaultOptions()
	if opts.Title == "" {
		opts.Title = def.Title
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = def.CurrencySymbol
	}
	table := opts.Priorities
	if table == nil {
		table = derive.DefaultPriorityTable()
	}

	r := &Report{
		Options:   opts,
		Insights:  src.Insights(),
		Regions:   src.Regions(),
		Steps:     src.ActionSteps(),
		Timeline:  src.Timeline(),
		Emergency: src.Emergency(),
	}

	if err := derive.ValidateFeatures(r.Insights.TopFeatures); err != nil {
		return nil, err
	}
	if err := derive.ValidateImpact(r.Insights.BusinessImpact); err != nil {
		return nil, err
	}
	if err := derive.ValidateRegions(r.Regions); err != nil {
		return nil, err
	}

	var err error
	if r.Strategy, err = derive.RegionalStrategy(r.Regions, table); err != nil {
		return nil, err
	}
	if r.Projection, err = derive.FinancialProjection(); err != nil {
		return nil, err
	}
	if r.Allocation, err = derive.ResourceAllocation(); err != nil {
		return nil, err
	}

	r.pages = make(map[PageID]*Page, len(builders))
	for _, b := range builders {
		p := b.build(r)
		if p == nil {
			return nil, fmt.Errorf("report: page %q built nothing", b.ref.ID)
		}
		p.ID = b.ref.ID
		p.Title = b.ref.Icon + " " + b.ref.Title
		r.pages[b.ref.ID] = p
	}
	return r, nil
}

// Pages returns the navigation entries in display order.
func (r *Report) Pages() []PageRef {
	out := make([]PageRef, len(builders))
	for i, b := range builders {
		out[i] = b.ref
	}
	return out
}

// Page returns the built page for id.
func (r *Report) Page(id PageID) (*Page, bool) {
	p, ok := r.pages[id]
	return p, ok
}

// Chart returns the chart with the given key on page id.
func (r *Report) Chart(id PageID, key string) (*ChartConfig, bool) {
	p, ok := r.pages[id]
	if !ok {
		return nil, false
	}
	for _, s := range p.Sections {
		if s.Chart != nil && s.Chart.Key == key {
			return s.Chart, true
		}
	}
	return nil, false
}

// Tables returns every table of every page, in page order.
func (r *Report) Tables() []*TableData {
	var out []*TableData
	for _, b := range builders {
		for _, s := range r.pages[b.ref.ID].Sections {
			if s.Table != nil {
				out = append(out, s.Table)
			}
		}
	}
	return out
}

// ParsePageID resolves a page id, accepting only known pages.
func ParsePageID(s string) (PageID, bool) {
	for _, b := range builders {
		if string(b.ref.ID) == s {
			return b.ref.ID, true
		}
	}
	return "", false
}
