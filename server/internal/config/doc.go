// Package config loads the report server configuration from config.yaml.
//
// Config fields:
//   - Server.HTTPPort         : port for the REST API, /metrics and WebSocket hub (default 8080)
//   - Server.LogLevel         : debug | info | warn | error (default info)
//   - Server.BroadcastInterval: WebSocket re-broadcast period; 0 disables (default 30s)
//   - Report.Title            : report title shown on the overview page
//   - Report.CurrencySymbol   : prefix for money figures (default "₦")
//   - Report.Priorities       : optional region → URGENT|HIGH|MEDIUM|STUDY override
//   - Alerts.Rules            : threshold rules over the regional strategy
//   - Alerts.Webhooks         : slack | teams | http targets, URL read from URLEnv
//
// Load(path) applies defaults before unmarshalling, then validates.
// Watch(ctx, path, fn) reloads on every write and calls fn with the new Config.
package config
