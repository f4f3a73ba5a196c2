// Package alerts evaluates threshold rules against the regional strategy of
// each published report and delivers webhook notifications to Teams, Slack
// or generic HTTP targets. A rule is evaluated once per region; an alert is
// keyed by rule name and region so one rule can fire for several regions.
package alerts
