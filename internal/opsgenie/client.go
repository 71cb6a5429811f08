package opsgenie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/types"
	"github.com/netspec/prtg-reporter/internal/version"
	"github.com/rs/zerolog"
)

const (
	serviceName = "Opsgenie"
	alertSource = "prtg-reporter"
)

// Alert is the create-alert request body
type Alert struct {
	Message     string            `json:"message"`
	Description string            `json:"description"`
	Responders  []Responder       `json:"responders"`
	Tags        []string          `json:"tags"`
	Source      string            `json:"source,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
}

// createAlertResponse is the accepted-request body Opsgenie returns
type createAlertResponse struct {
	Result    string `json:"result"`
	RequestID string `json:"requestId"`
}

// Client creates Opsgenie alerts
type Client struct {
	url    string
	token  string
	client *http.Client
	logger zerolog.Logger
}

// NewClient creates an Opsgenie alert client
func NewClient(cfg config.OpsgenieConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		url:    cfg.AlertsURL,
		token:  cfg.Token,
		client: httpClient,
		logger: logger.With().Str("component", "opsgenie").Logger(),
	}
}

// NewAlert fills in the fields every reporter alert carries
func NewAlert(cfg config.OpsgenieConfig, description string, details map[string]string) Alert {
	tags := cfg.Tags
	if tags == nil {
		tags = []string{}
	}
	return Alert{
		Message:     cfg.Title,
		Description: description,
		Responders:  BuildResponders(cfg.Responders),
		Tags:        tags,
		Source:      alertSource,
		Details:     details,
	}
}

// CreateAlert posts the alert. A non-2xx response is returned as a
// *types.APIError.
func (c *Client) CreateAlert(ctx context.Context, alert Alert) error {
	jsonData, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization(c.token))
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !types.IsSuccess(resp.StatusCode) {
		return types.NewAPIError(serviceName, resp)
	}

	var accepted createAlertResponse
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &accepted); err == nil && accepted.RequestID != "" {
		c.logger.Debug().
			Str("request_id", accepted.RequestID).
			Str("result", accepted.Result).
			Msg("Alert request accepted")
	}

	return nil
}

// authorization uses the GenieKey scheme unless the token already names one
func authorization(token string) string {
	if strings.Contains(token, " ") {
		return token
	}
	return "GenieKey " + token
}
