// Package metrics exposes the published report and the HTTP server's own
// request counters in the Prometheus text format.
//
// Report gauges (reset and refilled on every publication):
//
//	riskboard_region_dropout_rate_percent{region,priority}
//	riskboard_region_beneficiaries{region}
//	riskboard_region_annual_cost{region}
//	riskboard_feature_importance{feature,rank}
//	riskboard_business_roi_percent
//	riskboard_business_potential_savings_millions
//	riskboard_report_revision
//	riskboard_report_published_timestamp_seconds
//
// Server series:
//
//	riskboard_http_requests_total{route,code}
//	riskboard_http_request_duration_seconds{route}
//	riskboard_alerts_firing
//	riskboard_ws_clients
package metrics
