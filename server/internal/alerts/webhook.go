package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// Webhook event names carried by the generic HTTP payload.
const (
	EventFiring   = "alert.firing"
	EventResolved = "alert.resolved"
)

// encoders renders an alert into the body each webhook type expects.
var encoders = map[string]func(*Alert) any{
	"slack": slackPayload,
	"teams": teamsPayload,
	"http":  httpPayload,
}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Fields []slackField `json:"fields"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

type teamsCard struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor"`
	Summary    string         `json:"summary"`
	Title      string         `json:"title"`
	Sections   []teamsSection `json:"sections"`
}

type teamsSection struct {
	Text  string      `json:"text"`
	Facts []teamsFact `json:"facts"`
}

type teamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// httpEvent is the body posted to generic HTTP targets.
type httpEvent struct {
	Event string `json:"event"`
	Alert *Alert `json:"alert"`
}

// deliver posts a to every configured webhook. Failures are logged only.
func (e *Engine) deliver(a *Alert) {
	e.mu.Lock()
	webhooks := e.webhooks
	e.mu.Unlock()

	for _, wh := range webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}
		encode, ok := encoders[wh.Type]
		if !ok {
			slog.Warn("alerts: unknown webhook type, skipping", "type", wh.Type)
			continue
		}
		body, err := json.Marshal(encode(a))
		if err == nil {
			err = e.post(url, body)
		}
		if err != nil {
			slog.Error("alerts: webhook delivery failed",
				"type", wh.Type, "rule", a.RuleName, "region", a.Region, "err", err)
			continue
		}
		slog.Debug("alerts: webhook delivered",
			"type", wh.Type, "rule", a.RuleName, "region", a.Region, "state", a.State)
	}
}

func slackPayload(a *Alert) any {
	return slackMessage{
		Text: headline(a),
		Attachments: []slackAttachment{{
			Color:  "#" + severityColor(a.Severity),
			Fields: fieldsOf(a, func(name, value string) slackField { return slackField{Title: name, Value: value, Short: true} }),
		}},
	}
}

func teamsPayload(a *Alert) any {
	return teamsCard{
		Type:       "MessageCard",
		Context:    "http://schema.org/extensions",
		ThemeColor: severityColor(a.Severity),
		Summary:    a.RuleName,
		Title:      fmt.Sprintf("Dropout Risk Alert: %s (%s)", a.RuleName, a.Region),
		Sections: []teamsSection{{
			Text:  a.Message,
			Facts: fieldsOf(a, func(name, value string) teamsFact { return teamsFact{Name: name, Value: value} }),
		}},
	}
}

func httpPayload(a *Alert) any {
	event := EventFiring
	if a.State == StateResolved {
		event = EventResolved
	}
	return httpEvent{Event: event, Alert: a}
}

// headline is the one-line summary used by chat targets.
func headline(a *Alert) string {
	if a.State == StateResolved {
		return fmt.Sprintf("✅ Resolved: %s is back within %s", a.Region, a.RuleName)
	}
	return fmt.Sprintf("%s %s: %s", severityLabel(a.Severity), a.Region, a.Message)
}

func fieldsOf[T any](a *Alert, field func(name, value string) T) []T {
	return []T{
		field("Region", a.Region),
		field("Rule", a.RuleName),
		field("Severity", a.Severity),
		field("Value", strconv.FormatFloat(a.Value, 'f', -1, 64)),
		field("State", a.State),
	}
}

func (e *Engine) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func severityLabel(s string) string {
	switch s {
	case "critical":
		return "🔴 [CRITICAL]"
	case "warning":
		return "🟡 [WARNING]"
	default:
		return "🔵 [INFO]"
	}
}

// severityColor returns the hex colour (no leading #) used for s.
func severityColor(s string) string {
	switch s {
	case "critical":
		return "DC3545"
	case "warning":
		return "FFC107"
	default:
		return "17A2B8"
	}
}
