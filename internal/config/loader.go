package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxSensors     = 50000
	DefaultOpsgenieURL    = "https://api.opsgenie.com/v2/alerts"
	DefaultSlackAPIURL    = "https://slack.com/api/"
	DefaultAlertTitle     = "Current Offline PRTG Sensors"
	DefaultHTTPTimeout    = 30 * time.Second
	DefaultLogDirectory   = "logs"
	DefaultLoggerName     = "prtg-reporter"
	DefaultLogLevel       = "info"
	defaultPapertrailPort = "514"
)

// LookupFunc resolves an environment variable, reporting whether it is set
type LookupFunc func(key string) (string, bool)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. Variables that are already set are left alone. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load reads the optional YAML file at path, applies environment overrides
// from the process environment and validates the result
func Load(path string) (*Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup
func LoadWithEnv(path string, lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg, lookup); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	setDefaults(cfg)
	normalize(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadYAML loads a YAML file into a struct
func loadYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// applyEnv overrides file values with any environment variable that is set
func applyEnv(cfg *Config, lookup LookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok {
			*dst = SplitList(v)
		}
	}

	// PRTG connection and exclusions
	str("PRTG_INSTANCE_TABLE_URL", &cfg.PRTG.TableURL)
	str("PRTG_USERNAME", &cfg.PRTG.Username)
	str("PRTG_PASSWORD", &cfg.PRTG.Password)
	str("PRTG_PASSHASH", &cfg.PRTG.Passhash)
	list("PRTG_EXCLUDED_PROBE_SUBSTRINGS", &cfg.PRTG.Exclusions.Probes)
	list("PRTG_EXCLUDED_GROUP_SUBSTRINGS", &cfg.PRTG.Exclusions.Groups)
	list("PRTG_EXCLUDED_DEVICE_SUBSTRINGS", &cfg.PRTG.Exclusions.Devices)
	list("PRTG_EXCLUDED_SENSOR_SUBSTRINGS", &cfg.PRTG.Exclusions.Sensors)
	if v, ok := lookup("PRTG_MAX_SENSORS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PRTG_MAX_SENSORS: %w", err)
		}
		cfg.PRTG.MaxSensors = n
	}

	// Opsgenie alert and responders
	str("OG_API_ALERTS_URI", &cfg.Opsgenie.AlertsURL)
	str("OG_API_TOKEN", &cfg.Opsgenie.Token)
	str("OG_ALERT_TITLE", &cfg.Opsgenie.Title)
	list("OG_ALERT_TAGS", &cfg.Opsgenie.Tags)
	list("OG_RESPONDER_TEAM_IDS", &cfg.Opsgenie.Responders.Teams)
	list("OG_RESPONDER_USER_IDS", &cfg.Opsgenie.Responders.Users)
	list("OG_RESPONDER_ESCALATION_IDS", &cfg.Opsgenie.Responders.Escalations)
	list("OG_RESPONDER_SCHEDULE_IDS", &cfg.Opsgenie.Responders.Schedules)

	// Slack escalation channels
	str("SLACK_API_TOKEN", &cfg.Slack.Token)
	str("SLACK_API_URL", &cfg.Slack.APIURL)
	list("SLACK_CHANNEL_IDS", &cfg.Slack.ChannelIDs)

	// Log sinks, Papertrail is one more syslog target
	str("LOGGER_NAME", &cfg.Logging.Name)
	str("LOGGER_FILE_NAME", &cfg.Logging.FileName)
	str("LOG_DIRECTORY", &cfg.Logging.Directory)
	str("LOG_LEVEL", &cfg.Logging.Level)
	list("SYSLOG_TARGETS", &cfg.Logging.SyslogTargets)
	if addr, ok := lookup("PAPERTRAIL_ADDRESS"); ok && addr != "" {
		port, _ := lookup("PAPERTRAIL_PORT")
		if port == "" {
			port = defaultPapertrailPort
		}
		cfg.Logging.SyslogTargets = append(cfg.Logging.SyslogTargets, addr+":"+port)
	}

	// Outbound HTTP timeout
	if v, ok := lookup("HTTP_TIMEOUT_SECONDS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HTTP_TIMEOUT_SECONDS: %w", err)
		}
		cfg.HTTP.Timeout = time.Duration(n) * time.Second
	}

	return nil
}

func setDefaults(cfg *Config) {
	if cfg.PRTG.MaxSensors == 0 {
		cfg.PRTG.MaxSensors = DefaultMaxSensors
	}
	if cfg.Opsgenie.AlertsURL == "" {
		cfg.Opsgenie.AlertsURL = DefaultOpsgenieURL
	}
	if cfg.Opsgenie.Title == "" {
		cfg.Opsgenie.Title = DefaultAlertTitle
	}
	if cfg.Slack.APIURL == "" {
		cfg.Slack.APIURL = DefaultSlackAPIURL
	}
	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = DefaultHTTPTimeout
	}
	if cfg.Logging.Name == "" {
		cfg.Logging.Name = DefaultLoggerName
	}
	if cfg.Logging.Directory == "" {
		cfg.Logging.Directory = DefaultLogDirectory
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLogLevel
	}
}

// normalize strips blank entries that YAML lists may carry so every list is
// either empty or holds only real values
func normalize(cfg *Config) {
	for _, l := range []*[]string{
		&cfg.PRTG.Exclusions.Probes,
		&cfg.PRTG.Exclusions.Groups,
		&cfg.PRTG.Exclusions.Devices,
		&cfg.PRTG.Exclusions.Sensors,
		&cfg.Opsgenie.Tags,
		&cfg.Opsgenie.Responders.Teams,
		&cfg.Opsgenie.Responders.Users,
		&cfg.Opsgenie.Responders.Escalations,
		&cfg.Opsgenie.Responders.Schedules,
		&cfg.Slack.ChannelIDs,
		&cfg.Logging.SyslogTargets,
	} {
		*l = compact(*l)
	}
	if !strings.HasSuffix(cfg.Slack.APIURL, "/") {
		cfg.Slack.APIURL += "/"
	}
}

// SplitList splits a comma separated value. Items are trimmed and empty
// items dropped, so "" yields an empty list rather than [""].
func SplitList(v string) []string {
	return compact(strings.Split(v, ","))
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// ValidateConfig validates the configuration
func ValidateConfig(cfg *Config) error {
	if err := validateURL("prtg.table_url", cfg.PRTG.TableURL); err != nil {
		return err
	}
	if cfg.PRTG.Username == "" {
		return fmt.Errorf("prtg.username is required")
	}
	if cfg.PRTG.Password == "" && cfg.PRTG.Passhash == "" {
		return fmt.Errorf("prtg: one of password or passhash is required")
	}
	if cfg.PRTG.MaxSensors < 0 {
		return fmt.Errorf("prtg.max_sensors must not be negative")
	}

	if err := validateURL("opsgenie.alerts_url", cfg.Opsgenie.AlertsURL); err != nil {
		return err
	}
	if cfg.Opsgenie.Token == "" {
		return fmt.Errorf("opsgenie.token is required")
	}

	if len(cfg.Slack.ChannelIDs) > 0 {
		if cfg.Slack.Token == "" {
			return fmt.Errorf("slack.token is required when slack.channel_ids are configured")
		}
		if err := validateURL("slack.api_url", cfg.Slack.APIURL); err != nil {
			return err
		}
	}

	if cfg.HTTP.Timeout < 0 {
		return fmt.Errorf("http.timeout must not be negative")
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid URL: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https scheme, got %q", field, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host", field)
	}
	return nil
}
