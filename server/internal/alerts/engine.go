package alerts

import (
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riskboard/riskboard/pkg/types"
	"github.com/riskboard/riskboard/server/internal/config"
)

const (
	defaultCooldown   = 15 * time.Minute
	maxHistoryLen     = 200
	recentWindowHours = 1
)

// Alert states.
const (
	StateFiring   = "firing"
	StateResolved = "resolved"
)

// Alert represents a single alert event produced by the rule engine.
type Alert struct {
	ID         string     `json:"id"`
	RuleName   string     `json:"rule_name"`
	Region     string     `json:"region"`
	Severity   string     `json:"severity"`
	Message    string     `json:"message"`
	Value      float64    `json:"value"`
	FiredAt    time.Time  `json:"fired_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	State      string     `json:"state"`
}

// Engine evaluates alert rules against the regional strategy of each report
// and delivers webhook notifications when rules fire or resolve.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	rules    []config.AlertRule
	conds    map[string]*condition // compiled rule conditions by rule name; nil never fires
	webhooks []config.WebhookConfig
	active   map[string]*Alert    // key: "ruleName:region"
	lastFire map[string]time.Time // last fire time per key (for cooldown)
	history  []*Alert             // recently resolved alerts
	client   *http.Client
	now      func() time.Time
}

// New creates an Engine from the alert configuration.
// An Engine with empty rules is valid; Evaluate becomes a no-op.
func New(cfg config.AlertsConfig) *Engine {
	e := &Engine{
		active:   make(map[string]*Alert),
		lastFire: make(map[string]time.Time),
		client:   &http.Client{Timeout: 10 * time.Second},
		now:      time.Now,
	}
	e.Reload(cfg)
	return e
}

// Reload swaps in new rules and webhooks. Firing alerts whose rule no longer
// exists are resolved silently.
func (e *Engine) Reload(cfg config.AlertsConfig) {
	names := make(map[string]bool, len(cfg.Rules))
	conds := make(map[string]*condition, len(cfg.Rules))
	for _, r := range cfg.Rules {
		names[r.Name] = true
		c, err := compileCondition(r.Condition)
		if err != nil {
			slog.Warn("alerts: rule condition will never fire", "rule", r.Name, "err", err)
		}
		conds[r.Name] = c
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append([]config.AlertRule(nil), cfg.Rules...)
	e.conds = conds
	e.webhooks = append([]config.WebhookConfig(nil), cfg.Webhooks...)
	now := e.now()
	for key, a := range e.active {
		if names[a.RuleName] {
			continue
		}
		resolved := now
		a.State = StateResolved
		a.ResolvedAt = &resolved
		e.history = append(e.history, a)
		delete(e.active, key)
		delete(e.lastFire, key)
	}
	e.trimHistory()
}

// Evaluate tests all configured rules against every region in strategies.
// Alerts that fire are stored and webhook delivery is triggered asynchronously.
// Alerts that were firing but whose condition is now false are resolved.
// It returns the number of alerts that fired.
func (e *Engine) Evaluate(strategies []types.RegionStrategy) int {
	e.mu.Lock()
	rules, conds := e.rules, e.conds
	e.mu.Unlock()
	if len(rules) == 0 {
		return 0
	}

	fired := 0
	now := e.now()
	for _, rule := range rules {
		for _, s := range strategies {
			if a := e.evalOne(rule, conds[rule.Name], s, now); a != nil {
				if a.State == StateFiring {
					fired++
				}
				go e.deliver(a)
			}
		}
	}
	return fired
}

// evalOne applies rule to one region and returns a copy of the alert whose
// state changed, or nil.
func (e *Engine) evalOne(rule config.AlertRule, c *condition, s types.RegionStrategy, now time.Time) *Alert {
	key := rule.Name + ":" + s.Region
	var (
		fires bool
		value float64
	)
	if c != nil {
		var err error
		if fires, err = c.eval(s); err != nil {
			slog.Warn("alerts: condition evaluation failed", "rule", rule.Name, "region", s.Region, "err", err)
			fires = false
		}
		value = c.value(s)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !fires {
		a, ok := e.active[key]
		if !ok || a.State != StateFiring {
			return nil
		}
		resolved := now
		a.State = StateResolved
		a.ResolvedAt = &resolved
		delete(e.active, key)
		e.history = append(e.history, a)
		e.trimHistory()

		slog.Info("alert resolved", "rule", rule.Name, "region", s.Region)
		cp := *a
		return &cp
	}

	if _, ok := e.active[key]; ok {
		return nil
	}
	cooldown := rule.Cooldown
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	if last, ok := e.lastFire[key]; ok && now.Sub(last) <= cooldown {
		return nil
	}

	sev := rule.Severity
	if sev == "" {
		sev = "warning"
	}
	a := &Alert{
		ID:       uuid.NewString(),
		RuleName: rule.Name,
		Region:   s.Region,
		Severity: sev,
		Value:    value,
		Message: fmt.Sprintf("[%s] %s fired for %s: %s (value %.2f)",
			sev, rule.Name, s.Region, rule.Condition, value),
		FiredAt: now,
		State:   StateFiring,
	}
	e.active[key] = a
	e.lastFire[key] = now

	slog.Warn("alert fired",
		"rule", rule.Name,
		"region", s.Region,
		"value", value,
		"severity", sev,
	)
	cp := *a
	return &cp
}

func (e *Engine) trimHistory() {
	if len(e.history) > maxHistoryLen {
		e.history = e.history[len(e.history)-maxHistoryLen:]
	}
}

// Active returns copies of all currently firing alerts plus any alerts
// resolved within the past hour, sorted newest first.
func (e *Engine) Active() []*Alert {
	e.mu.Lock()
	defer e.mu.Unlock()

	cutoff := e.now().Add(-recentWindowHours * time.Hour)
	out := make([]*Alert, 0, len(e.active))

	for _, a := range e.active {
		cp := *a
		out = append(out, &cp)
	}
	for _, a := range e.history {
		if a.ResolvedAt != nil && a.ResolvedAt.After(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FiredAt.Equal(out[j].FiredAt) {
			return out[i].FiredAt.After(out[j].FiredAt)
		}
		if out[i].RuleName != out[j].RuleName {
			return out[i].RuleName < out[j].RuleName
		}
		return out[i].Region < out[j].Region
	})
	return out
}

// Firing returns the number of currently firing alerts.
func (e *Engine) Firing() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.active)
}
