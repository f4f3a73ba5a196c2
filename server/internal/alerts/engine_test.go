package alerts

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskboard/riskboard/pkg/dataset"
	"github.com/riskboard/riskboard/pkg/derive"
	"github.com/riskboard/riskboard/pkg/types"
	"github.com/riskboard/riskboard/server/internal/config"
)

func strategies(t *testing.T) []types.RegionStrategy {
	t.Helper()
	s, err := derive.RegionalStrategy(dataset.Regions(), derive.DefaultPriorityTable())
	if err != nil {
		t.Fatalf("RegionalStrategy: %v", err)
	}
	return s
}

func newEngine(rules ...config.AlertRule) (*Engine, *time.Time) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	e := New(config.AlertsConfig{Rules: rules})
	e.now = func() time.Time { return now }
	return e, &now
}

func TestEvaluate_FiresPerRegion(t *testing.T) {
	e, _ := newEngine(config.AlertRule{Name: "urgent", Condition: "priority == URGENT", Severity: "critical"})
	if n := e.Evaluate(strategies(t)); n != 2 {
		t.Fatalf("fired: got %d, want 2", n)
	}
	active := e.Active()
	if len(active) != 2 {
		t.Fatalf("Active: got %d, want 2", len(active))
	}
	regions := map[string]bool{}
	for _, a := range active {
		regions[a.Region] = true
		if a.State != StateFiring || a.Severity != "critical" || a.ID == "" {
			t.Errorf("alert: got %+v", a)
		}
	}
	if !regions["Lagos"] || !regions["Enugu"] {
		t.Errorf("regions: got %v, want Lagos and Enugu", regions)
	}
}

func TestEvaluate_NoRefireWhileActive(t *testing.T) {
	e, _ := newEngine(config.AlertRule{Name: "high", Condition: "dropout_rate > 66"})
	s := strategies(t)
	if n := e.Evaluate(s); n != 1 {
		t.Fatalf("first evaluate: got %d, want 1", n)
	}
	if n := e.Evaluate(s); n != 0 {
		t.Errorf("second evaluate: got %d, want 0", n)
	}
	if e.Firing() != 1 {
		t.Errorf("Firing: got %d, want 1", e.Firing())
	}
}

func TestEvaluate_ResolveAndCooldown(t *testing.T) {
	e, now := newEngine(config.AlertRule{Name: "high", Condition: "dropout_rate > 66", Cooldown: time.Hour})
	s := strategies(t)
	e.Evaluate(s)

	// Lagos improves: the alert resolves.
	better := append([]types.RegionStrategy(nil), s...)
	better[0].DropoutRate = 60
	*now = now.Add(time.Minute)
	e.Evaluate(better)
	if e.Firing() != 0 {
		t.Fatalf("Firing after resolve: got %d, want 0", e.Firing())
	}
	active := e.Active()
	if len(active) != 1 || active[0].State != StateResolved || active[0].ResolvedAt == nil {
		t.Fatalf("Active after resolve: got %+v", active)
	}

	// Worse again inside the cooldown: suppressed.
	*now = now.Add(10 * time.Minute)
	if n := e.Evaluate(s); n != 0 {
		t.Errorf("fired inside cooldown: got %d, want 0", n)
	}

	// After the cooldown it fires again.
	*now = now.Add(2 * time.Hour)
	if n := e.Evaluate(s); n != 1 {
		t.Errorf("fired after cooldown: got %d, want 1", n)
	}
}

func TestEvaluate_NoRules(t *testing.T) {
	e, _ := newEngine()
	if n := e.Evaluate(strategies(t)); n != 0 {
		t.Errorf("fired: got %d, want 0", n)
	}
	if len(e.Active()) != 0 {
		t.Errorf("Active: got %d, want 0", len(e.Active()))
	}
}

func TestReload_DropsRemovedRules(t *testing.T) {
	e, _ := newEngine(config.AlertRule{Name: "urgent", Condition: "priority == URGENT"})
	e.Evaluate(strategies(t))
	if e.Firing() != 2 {
		t.Fatalf("Firing: got %d, want 2", e.Firing())
	}
	e.Reload(config.AlertsConfig{Rules: []config.AlertRule{{Name: "other", Condition: "dropout_rate > 99"}}})
	if e.Firing() != 0 {
		t.Errorf("Firing after reload: got %d, want 0", e.Firing())
	}
	for _, a := range e.Active() {
		if a.State != StateResolved {
			t.Errorf("alert %s: got state %q, want resolved", a.Region, a.State)
		}
	}
}

func TestDeliver_HTTPWebhook(t *testing.T) {
	got := make(chan httpEvent, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload httpEvent
		if err := json.Unmarshal(body, &payload); err == nil && payload.Alert != nil {
			got <- payload
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	t.Setenv("TEST_ALERT_URL", srv.URL)
	e := New(config.AlertsConfig{
		Rules:    []config.AlertRule{{Name: "study", Condition: "priority == STUDY"}},
		Webhooks: []config.WebhookConfig{{Type: "http", URLEnv: "TEST_ALERT_URL"}},
	})
	e.Evaluate(strategies(t))

	select {
	case p := <-got:
		if p.Event != EventFiring {
			t.Errorf("event: got %q, want %q", p.Event, EventFiring)
		}
		a := p.Alert
		if a.RuleName != "study" || a.Region != "Port Harcourt" || a.State != StateFiring {
			t.Errorf("delivered alert: got %+v", a)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for webhook")
	}
}

func TestPayloads(t *testing.T) {
	a := &Alert{RuleName: "urgent", Region: "Lagos", Severity: "critical", Value: 66.2, State: StateFiring, Message: "urgent fired"}

	slack := slackPayload(a).(slackMessage)
	if slack.Attachments[0].Color != "#DC3545" {
		t.Errorf("slack color: got %q, want #DC3545", slack.Attachments[0].Color)
	}
	if f := slack.Attachments[0].Fields; len(f) != 5 || f[0].Value != "Lagos" || f[3].Value != "66.2" {
		t.Errorf("slack fields: got %+v", f)
	}

	card := teamsPayload(a).(teamsCard)
	if card.Title != "Dropout Risk Alert: urgent (Lagos)" {
		t.Errorf("teams title: got %q", card.Title)
	}

	a.State = StateResolved
	if ev := httpPayload(a).(httpEvent); ev.Event != EventResolved {
		t.Errorf("http event: got %q, want %q", ev.Event, EventResolved)
	}
	if got := headline(a); got != "✅ Resolved: Lagos is back within urgent" {
		t.Errorf("headline: got %q", got)
	}
}
