// Package api implements the HTTP REST API of the report server.
//
// New(store, alerts, recorder) returns an http.Handler that serves:
//
//	GET /api/v1/health                       : publication status, revision, counts
//	GET /api/v1/pages                        : navigation entries (PageListResponse)
//	GET /api/v1/pages/{id}                   : one built page; 404 if unknown
//	GET /api/v1/pages/{id}/charts/{key}.svg  : one chart rendered as SVG
//	GET /api/v1/insights                     : ranked features, business impact, model figures
//	GET /api/v1/regions                      : regions with strategy and diagnostics
//	GET /api/v1/strategy                     : derived regional strategy and totals
//	GET /api/v1/projection                   : reconciled 3-year projection and totals
//	GET /api/v1/allocation                   : budget allocation and totals
//	GET /api/v1/alerts                       : firing and recently resolved alerts
//	GET /api/v1/snapshot                     : report summary + publication history
//	GET /api/v1/export/report.xlsx           : workbook of the derived tables
//	GET /api/v1/export/critical-cases.xlsx   : outreach template
//
// All endpoints:
//   - Return 405 for non-GET methods
//   - Return 503 until a report has been published
//   - Report errors as {"error": "..."} JSON bodies
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
