// Package report turns the dataset and its derived tables into render-ready
// page view models.
//
// Build(src, opts) validates the inputs, runs the derivations once and builds
// every page. The returned *Report is immutable and safe to share between
// goroutines. A page is a list of sections; each section carries exactly one
// widget (metrics, chart, table, callout, tabs, steps or text) selected by its
// Type, the same shape a frontend or the CLI renders directly.
//
// Pages are addressed by PageID:
//
//	overview  insights  regional  impact  actions
package report
