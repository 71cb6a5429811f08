package config

import "time"

// Config represents the complete reporter configuration
type Config struct {
	PRTG     PRTGConfig     `yaml:"prtg"`
	Opsgenie OpsgenieConfig `yaml:"opsgenie"`
	Slack    SlackConfig    `yaml:"slack"`
	Logging  LoggingConfig  `yaml:"logging"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// PRTGConfig describes the monitoring instance to poll
type PRTGConfig struct {
	TableURL   string     `yaml:"table_url"`
	Username   string     `yaml:"username"`
	Password   string     `yaml:"password,omitempty"`
	Passhash   string     `yaml:"passhash,omitempty"`
	MaxSensors int        `yaml:"max_sensors"`
	Exclusions Exclusions `yaml:"exclusions,omitempty"`
}

// Exclusions holds the substring blocklists applied per sensor field
type Exclusions struct {
	Probes  []string `yaml:"probes,omitempty"`
	Groups  []string `yaml:"groups,omitempty"`
	Devices []string `yaml:"devices,omitempty"`
	Sensors []string `yaml:"sensors,omitempty"`
}

// OpsgenieConfig defines where and how the aggregated alert is created
type OpsgenieConfig struct {
	AlertsURL  string     `yaml:"alerts_url"`
	Token      string     `yaml:"token"`
	Title      string     `yaml:"title"`
	Tags       []string   `yaml:"tags,omitempty"`
	Responders Responders `yaml:"responders,omitempty"`
}

// Responders lists Opsgenie responder ids by kind
type Responders struct {
	Teams       []string `yaml:"teams,omitempty"`
	Users       []string `yaml:"users,omitempty"`
	Escalations []string `yaml:"escalations,omitempty"`
	Schedules   []string `yaml:"schedules,omitempty"`
}

// SlackConfig defines the failure escalation channels
type SlackConfig struct {
	Token      string   `yaml:"token"`
	ChannelIDs []string `yaml:"channel_ids,omitempty"`
	APIURL     string   `yaml:"api_url,omitempty"`
}

// LoggingConfig defines log sinks
type LoggingConfig struct {
	Name          string   `yaml:"name"`
	Level         string   `yaml:"level"`
	FileName      string   `yaml:"file_name,omitempty"`
	Directory     string   `yaml:"directory,omitempty"`
	SyslogTargets []string `yaml:"syslog_targets,omitempty"` // host:port, UDP
}

// HTTPConfig holds outbound transport settings
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Auth returns the PRTG credential parameter name and value. Passhash wins
// over password when both are set.
func (p PRTGConfig) Auth() (string, string) {
	if p.Passhash != "" {
		return "passhash", p.Passhash
	}
	return "password", p.Password
}
