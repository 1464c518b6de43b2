package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/paygrid/payroll-backend/pkg/config"
	"github.com/paygrid/payroll-backend/pkg/logger"
)

// ErrRecordNotFound is returned by GetRecord for a missing record ID.
var ErrRecordNotFound = errors.New("record not found")

// Client talks to the Fillout tables API. All payroll data is read through
// it; the service never writes to the store.
type Client struct {
	baseURL    string
	baseID     string
	token      string
	pageSize   int
	maxRecords int
	httpClient *http.Client
	logger     *logger.Logger
}

// NewClient creates a record store client from configuration.
func NewClient(cfg *config.FilloutConfig, log *logger.Logger) *Client {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 2000
	}
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = 10000
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		baseID:     cfg.BaseID,
		token:      cfg.APIToken,
		pageSize:   pageSize,
		maxRecords: maxRecords,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     log.WithComponent("store"),
	}
}

type queryRequest struct {
	Limit   int    `json:"limit"`
	Offset  int    `json:"offset,omitempty"`
	Filters Filter `json:"filters,omitempty"`
}

type queryResponse struct {
	Records []Record `json:"records"`
	HasMore bool     `json:"hasMore"`
}

// query fetches a single page from a table.
func (c *Client) query(ctx context.Context, table string, req queryRequest) (*queryResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/%s/tables/%s/records/list", c.baseURL, c.baseID, table)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call record store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("table", table).
			Msg("record store query failed")
		return nil, fmt.Errorf("record store query failed with status %d: %s", resp.StatusCode, body)
	}

	var out queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode query response: %w", err)
	}

	return &out, nil
}

// GetRecord fetches a single record by ID.
func (c *Client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	url := fmt.Sprintf("%s/%s/tables/%s/records/%s", c.baseURL, c.baseID, table, id)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call record store: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrRecordNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("record fetch failed with status %d: %s", resp.StatusCode, body)
	}

	var record Record
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return &record, nil
}
