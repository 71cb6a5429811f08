package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func baseEnv() map[string]string {
	return map[string]string{
		"PRTG_INSTANCE_TABLE_URL": "https://prtg.example.com/api/table.json",
		"PRTG_USERNAME":           "reporter",
		"PRTG_PASSHASH":           "123456",
		"OG_API_TOKEN":            "og-token",
	}
}

func TestLoadWithEnv_Defaults(t *testing.T) {
	cfg, err := LoadWithEnv("", mapLookup(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxSensors, cfg.PRTG.MaxSensors)
	assert.Equal(t, DefaultOpsgenieURL, cfg.Opsgenie.AlertsURL)
	assert.Equal(t, DefaultAlertTitle, cfg.Opsgenie.Title)
	assert.Equal(t, DefaultSlackAPIURL, cfg.Slack.APIURL)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, DefaultLoggerName, cfg.Logging.Name)
	assert.Equal(t, DefaultLogDirectory, cfg.Logging.Directory)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Opsgenie.Responders.Teams)
	assert.Empty(t, cfg.Slack.ChannelIDs)
}

func TestLoadWithEnv_Lists(t *testing.T) {
	env := baseEnv()
	env["OG_RESPONDER_TEAM_IDS"] = "team-a, team-b"
	env["OG_RESPONDER_USER_IDS"] = ""
	env["OG_ALERT_TAGS"] = "PRTG,,nightly"
	env["PRTG_EXCLUDED_PROBE_SUBSTRINGS"] = "Lab"
	env["SLACK_API_TOKEN"] = "xoxb-1"
	env["SLACK_CHANNEL_IDS"] = "C1,C2"

	cfg, err := LoadWithEnv("", mapLookup(env))
	require.NoError(t, err)

	assert.Equal(t, []string{"team-a", "team-b"}, cfg.Opsgenie.Responders.Teams)
	assert.Empty(t, cfg.Opsgenie.Responders.Users)
	assert.Equal(t, []string{"PRTG", "nightly"}, cfg.Opsgenie.Tags)
	assert.Equal(t, []string{"Lab"}, cfg.PRTG.Exclusions.Probes)
	assert.Equal(t, []string{"C1", "C2"}, cfg.Slack.ChannelIDs)
}

func TestLoadWithEnv_Papertrail(t *testing.T) {
	env := baseEnv()
	env["PAPERTRAIL_ADDRESS"] = "logs.papertrailapp.com"
	env["PAPERTRAIL_PORT"] = "49638"
	env["SYSLOG_TARGETS"] = "syslog.internal:514"

	cfg, err := LoadWithEnv("", mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, []string{"syslog.internal:514", "logs.papertrailapp.com:49638"}, cfg.Logging.SyslogTargets)
}

func TestLoadWithEnv_InvalidNumbers(t *testing.T) {
	env := baseEnv()
	env["PRTG_MAX_SENSORS"] = "lots"
	_, err := LoadWithEnv("", mapLookup(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PRTG_MAX_SENSORS")

	env = baseEnv()
	env["HTTP_TIMEOUT_SECONDS"] = "soon"
	_, err = LoadWithEnv("", mapLookup(env))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_TIMEOUT_SECONDS")
}

func TestLoadWithEnv_YAMLFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reporter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
prtg:
  table_url: https://prtg.file.example.com/api/table.json
  username: file-user
  password: secret
  max_sensors: 1000
  exclusions:
    groups: ["Decommissioned", ""]
opsgenie:
  token: file-token
  title: Nightly PRTG report
  responders:
    schedules: [oncall]
slack:
  token: xoxb-file
  channel_ids: [C9]
  api_url: http://slack.local/api
http:
  timeout: 5s
`), 0o644))

	cfg, err := LoadWithEnv(path, mapLookup(map[string]string{
		"PRTG_USERNAME": "env-user",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://prtg.file.example.com/api/table.json", cfg.PRTG.TableURL)
	assert.Equal(t, "env-user", cfg.PRTG.Username)
	assert.Equal(t, 1000, cfg.PRTG.MaxSensors)
	assert.Equal(t, []string{"Decommissioned"}, cfg.PRTG.Exclusions.Groups)
	assert.Equal(t, "Nightly PRTG report", cfg.Opsgenie.Title)
	assert.Equal(t, []string{"oncall"}, cfg.Opsgenie.Responders.Schedules)
	assert.Equal(t, "http://slack.local/api/", cfg.Slack.APIURL)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
}

func TestLoadWithEnv_ZeroFallsBackToDefaults(t *testing.T) {
	env := baseEnv()
	env["PRTG_MAX_SENSORS"] = "0"
	env["HTTP_TIMEOUT_SECONDS"] = "0"

	cfg, err := LoadWithEnv("", mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSensors, cfg.PRTG.MaxSensors)
	assert.Equal(t, DefaultHTTPTimeout, cfg.HTTP.Timeout)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), mapLookup(baseEnv()))
	require.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env map[string]string)
		wantErr string
	}{
		{
			name:    "missing table url",
			mutate:  func(env map[string]string) { delete(env, "PRTG_INSTANCE_TABLE_URL") },
			wantErr: "prtg.table_url is required",
		},
		{
			name:    "bad scheme",
			mutate:  func(env map[string]string) { env["PRTG_INSTANCE_TABLE_URL"] = "ftp://prtg" },
			wantErr: "must use http or https",
		},
		{
			name:    "missing username",
			mutate:  func(env map[string]string) { delete(env, "PRTG_USERNAME") },
			wantErr: "prtg.username is required",
		},
		{
			name:    "missing credentials",
			mutate:  func(env map[string]string) { delete(env, "PRTG_PASSHASH") },
			wantErr: "one of password or passhash",
		},
		{
			name:    "missing opsgenie token",
			mutate:  func(env map[string]string) { delete(env, "OG_API_TOKEN") },
			wantErr: "opsgenie.token is required",
		},
		{
			name:    "slack channels without token",
			mutate:  func(env map[string]string) { env["SLACK_CHANNEL_IDS"] = "C1" },
			wantErr: "slack.token is required",
		},
		{
			name:    "negative max sensors",
			mutate:  func(env map[string]string) { env["PRTG_MAX_SENSORS"] = "-1" },
			wantErr: "prtg.max_sensors must not be negative",
		},
		{
			name:    "negative timeout",
			mutate:  func(env map[string]string) { env["HTTP_TIMEOUT_SECONDS"] = "-5" },
			wantErr: "http.timeout must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := baseEnv()
			tt.mutate(env)
			_, err := LoadWithEnv("", mapLookup(env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPRTGConfig_Auth(t *testing.T) {
	key, val := PRTGConfig{Password: "pw"}.Auth()
	assert.Equal(t, "password", key)
	assert.Equal(t, "pw", val)

	key, val = PRTGConfig{Password: "pw", Passhash: "ph"}.Auth()
	assert.Equal(t, "passhash", key)
	assert.Equal(t, "ph", val)
}

func TestSplitList(t *testing.T) {
	assert.Empty(t, SplitList(""))
	assert.Empty(t, SplitList(" , "))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b"))
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(""))
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PRTG_REPORTER_TEST_KEY=from-file\n"), 0o644))
	t.Setenv("PRTG_REPORTER_TEST_KEY", "")
	os.Unsetenv("PRTG_REPORTER_TEST_KEY")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("PRTG_REPORTER_TEST_KEY"))
}
