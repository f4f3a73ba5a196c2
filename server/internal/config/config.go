package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/riskboard/riskboard/pkg/types"
)

// AlertsConfig holds alerting rules and webhook delivery targets.
type AlertsConfig struct {
	Rules    []AlertRule     `yaml:"rules"`
	Webhooks []WebhookConfig `yaml:"webhooks"`
}

// AlertRule defines one threshold condition evaluated against every region
// of the regional strategy.
type AlertRule struct {
	// Name is the human-readable alert identifier, used as the deduplication key.
	Name string `yaml:"name"`

	// Condition is a boolean expression over dropout_rate, beneficiaries,
	// annual_cost, priority and risk_level, e.g. "dropout_rate > 65" or
	// "priority == URGENT && beneficiaries > 1000".
	Condition string `yaml:"condition"`

	// Severity is one of: critical | warning | info.
	Severity string `yaml:"severity"`

	// Cooldown suppresses re-fires for this duration after an alert fires.
	// Defaults to 15 minutes if zero.
	Cooldown time.Duration `yaml:"cooldown"`
}

// WebhookConfig defines one webhook delivery target.
type WebhookConfig struct {
	// Type is one of: teams | slack | http.
	Type string `yaml:"type"`

	// URLEnv is the name of the environment variable that holds the webhook URL.
	URLEnv string `yaml:"url_env"`
}

// URL returns the webhook URL resolved from the environment.
func (w WebhookConfig) URL() string {
	if w.URLEnv == "" {
		return ""
	}
	return os.Getenv(w.URLEnv)
}

// Default values for the server configuration.
const (
	DefaultHTTPPort          = 8080
	DefaultLogLevel          = "info"
	DefaultBroadcastInterval = 30 * time.Second
	DefaultTitle             = "Microinsurance Dropout Risk Analysis"
	DefaultCurrencySymbol    = "₦"
)

// Config is the parsed config.yaml.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Report ReportConfig `yaml:"report"`
	Alerts AlertsConfig `yaml:"alerts"`
}

// ServerConfig holds the listener and runtime settings.
type ServerConfig struct {
	// HTTPPort is the port the REST API, metrics and WebSocket hub listen on.
	HTTPPort int `yaml:"http_port"`

	// LogLevel is one of: debug | info | warn | error.
	LogLevel string `yaml:"log_level"`

	// BroadcastInterval is how often the current report is re-sent to
	// WebSocket clients. Zero disables periodic broadcasts; clients still
	// receive the report on connect and after every reload.
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

// ReportConfig holds presentation options. None of them change derived
// figures except Priorities, which replaces the region → priority table.
type ReportConfig struct {
	Title          string `yaml:"title"`
	CurrencySymbol string `yaml:"currency_symbol"`

	// Priorities optionally overrides the action priority per region. When
	// set it must name every region exactly once.
	Priorities map[string]string `yaml:"priorities"`
}

// PriorityTable converts Priorities into typed values. nil when unset.
func (r ReportConfig) PriorityTable() map[string]types.Priority {
	if len(r.Priorities) == 0 {
		return nil
	}
	out := make(map[string]types.Priority, len(r.Priorities))
	for region, p := range r.Priorities {
		out[region] = types.Priority(strings.ToUpper(p))
	}
	return out
}

// Load reads and parses the config file at path.
// Missing fields are filled with sensible defaults before validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("server config: read %q: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("server config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("server config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:          DefaultHTTPPort,
			LogLevel:          DefaultLogLevel,
			BroadcastInterval: DefaultBroadcastInterval,
		},
		Report: ReportConfig{
			Title:          DefaultTitle,
			CurrencySymbol: DefaultCurrencySymbol,
		},
	}
}

// validate checks structural constraints on the parsed configuration.
func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port %d is out of range [1, 65535]", cfg.Server.HTTPPort)
	}
	switch strings.ToLower(cfg.Server.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("server.log_level %q unknown: want debug|info|warn|error", cfg.Server.LogLevel)
	}
	if cfg.Server.BroadcastInterval < 0 {
		return fmt.Errorf("server.broadcast_interval must not be negative")
	}
	if strings.TrimSpace(cfg.Report.CurrencySymbol) == "" {
		return fmt.Errorf("report.currency_symbol must not be empty")
	}
	for region, p := range cfg.Report.PriorityTable() {
		switch p {
		case types.PriorityUrgent, types.PriorityHigh, types.PriorityMedium, types.PriorityStudy:
		default:
			return fmt.Errorf("report.priorities[%s] %q unknown: want URGENT|HIGH|MEDIUM|STUDY", region, p)
		}
	}
	seen := make(map[string]bool, len(cfg.Alerts.Rules))
	for i, r := range cfg.Alerts.Rules {
		if r.Name == "" {
			return fmt.Errorf("alerts.rules[%d].name is required", i)
		}
		if seen[r.Name] {
			return fmt.Errorf("alerts.rules[%d].name %q is duplicated", i, r.Name)
		}
		seen[r.Name] = true
		if strings.TrimSpace(r.Condition) == "" {
			return fmt.Errorf("alerts.rules[%d].condition is required", i)
		}
		switch r.Severity {
		case "critical", "warning", "info", "":
		default:
			return fmt.Errorf("alerts.rules[%d].severity %q unknown: want critical|warning|info", i, r.Severity)
		}
	}
	for i, w := range cfg.Alerts.Webhooks {
		switch w.Type {
		case "slack", "teams", "http":
		default:
			return fmt.Errorf("alerts.webhooks[%d].type %q unknown: want slack|teams|http", i, w.Type)
		}
	}
	return nil
}
