package prtg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/netspec/prtg-reporter/internal/types"
	"github.com/netspec/prtg-reporter/internal/version"
	"github.com/rs/zerolog"
)

const (
	serviceName  = "PRTG"
	tableColumns = "probe,group,device,name,status,objid,parentid"
	sortKey      = "status"
)

// Client queries the PRTG table API
type Client struct {
	cfg    config.PRTGConfig
	client *http.Client
	logger zerolog.Logger
}

// NewClient creates a PRTG table API client
func NewClient(cfg config.PRTGConfig, httpClient *http.Client, logger zerolog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: httpClient,
		logger: logger.With().Str("component", "prtg").Logger(),
	}
}

// FetchSensors returns every sensor whose status is one of ReportedStatuses,
// in the order PRTG sorts them. A non-2xx response is returned as a
// *types.APIError.
func (c *Client) FetchSensors(ctx context.Context) ([]Sensor, error) {
	reqURL, err := c.queryURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !types.IsSuccess(resp.StatusCode) {
		return nil, types.NewAPIError(serviceName, resp)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var table tableResponse
	if err := json.Unmarshal(body, &table); err != nil {
		return nil, fmt.Errorf("failed to decode sensor table: %w", err)
	}
	if table.Sensors == nil {
		return nil, fmt.Errorf("sensor table response has no sensors field")
	}

	sensors := *table.Sensors
	if table.TreeSize > len(sensors) {
		c.logger.Warn().
			Int("treesize", table.TreeSize).
			Int("returned", len(sensors)).
			Int("max_sensors", c.cfg.MaxSensors).
			Msg("Sensor table truncated by count limit")
	}

	c.logger.Debug().
		Str("prtg_version", table.Version).
		Int("sensor_count", len(sensors)).
		Msg("Sensor table received")

	return sensors, nil
}

// queryURL builds the table URL with the sensor query and credentials
func (c *Client) queryURL() (string, error) {
	u, err := url.Parse(c.cfg.TableURL)
	if err != nil {
		return "", fmt.Errorf("invalid table URL: %w", err)
	}

	q := u.Query()
	q.Set("content", "sensors")
	q.Set("columns", tableColumns)
	q.Del("filter_status")
	for _, s := range ReportedStatuses {
		q.Add("filter_status", strconv.Itoa(int(s)))
	}
	q.Set("sortby", sortKey)
	q.Set("output", "json")
	q.Set("count", strconv.Itoa(c.cfg.MaxSensors))
	q.Set("username", c.cfg.Username)
	key, value := c.cfg.Auth()
	q.Set(key, value)

	u.RawQuery = q.Encode()
	return u.String(), nil
}
