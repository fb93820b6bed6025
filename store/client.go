package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/forgehq/hackforge/metrics"
)

// Row is one record as the external store returns it.
type Row map[string]interface{}

// Filter matches rows by field equality.
type Filter map[string]interface{}

type QueryOptions struct {
	Filter Filter
	Limit  int
	Offset int
}

// Client is the contract every repository talks through. The external
// database-as-a-service owns all state; there is no local database.
type Client interface {
	QueryRows(ctx context.Context, table string, opts QueryOptions) ([]Row, error)
	InsertRows(ctx context.Context, table string, rows []Row) ([]Row, error)
	UpdateRows(ctx context.Context, table string, match Filter, patch Row) (int, error)
	DeleteRows(ctx context.Context, table string, match Filter) (int, error)
}

const (
	maxAttempts  = 4
	retryBase    = 200 * time.Millisecond
	retryCap     = 5 * time.Second
	requestLimit = 30 * time.Second
)

type httpClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *slog.Logger
}

func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) Client {
	return &httpClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestLimit},
		logger:  logger,
	}
}

type queryRequest struct {
	Filter Filter `json:"filter,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type insertRequest struct {
	Rows []Row `json:"rows"`
}

type updateRequest struct {
	Match Filter `json:"match"`
	Patch Row    `json:"patch"`
}

type deleteRequest struct {
	Match Filter `json:"match"`
}

type storeResponse struct {
	Success bool   `json:"success"`
	Rows    []Row  `json:"rows,omitempty"`
	Count   int    `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
}

// QueryRows is the only operation with automatic retries: reads are
// idempotent, mutations are not.
func (c *httpClient) QueryRows(ctx context.Context, table string, opts QueryOptions) ([]Row, error) {
	body := queryRequest{Filter: opts.Filter, Limit: opts.Limit, Offset: opts.Offset}

	var resp *storeResponse
	var err error
	backoff := retryBase
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err = c.do(ctx, table, "query", body)
		if err == nil || !IsRetryable(err) {
			break
		}
		if attempt == maxAttempts {
			break
		}
		c.logger.Warn("store query failed, retrying",
			slog.String("table", table),
			slog.Int("attempt", attempt),
			slog.Any("error", err),
		)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > retryCap {
			backoff = retryCap
		}
	}
	if err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

func (c *httpClient) InsertRows(ctx context.Context, table string, rows []Row) ([]Row, error) {
	resp, err := c.do(ctx, table, "insert", insertRequest{Rows: rows})
	if err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

func (c *httpClient) UpdateRows(ctx context.Context, table string, match Filter, patch Row) (int, error) {
	resp, err := c.do(ctx, table, "update", updateRequest{Match: match, Patch: patch})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *httpClient) DeleteRows(ctx context.Context, table string, match Filter) (int, error) {
	resp, err := c.do(ctx, table, "delete", deleteRequest{Match: match})
	if err != nil {
		return 0, err
	}
	return resp.Count, nil
}

func (c *httpClient) do(ctx context.Context, table, op string, body interface{}) (*storeResponse, error) {
	started := time.Now()
	resp, err := c.doOnce(ctx, table, op, body)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.StoreRequests.WithLabelValues(table, op, outcome).Inc()
	metrics.StoreLatency.WithLabelValues(table, op).Observe(time.Since(started).Seconds())
	return resp, err
}

func (c *httpClient) doOnce(ctx context.Context, table, op string, body interface{}) (*storeResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request for table %s: %w", op, table, err)
	}

	url := fmt.Sprintf("%s/v1/tables/%s/%s", c.baseURL, table, op)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request for table %s: %w", op, table, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	httpResp, err := c.client.Do(req)
	if err != nil {
		// Network-level failures are transient by classification.
		return nil, &Error{Message: err.Error(), Retryable: true}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 10<<20))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read response body: %v", err), Retryable: true}
	}

	if httpResp.StatusCode != http.StatusOK {
		msg := string(raw)
		var decoded storeResponse
		if json.Unmarshal(raw, &decoded) == nil && decoded.Error != "" {
			msg = decoded.Error
		}
		return nil, &Error{
			Status:    httpResp.StatusCode,
			Message:   msg,
			Retryable: retryableStatus(httpResp.StatusCode),
		}
	}

	var decoded storeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &Error{Message: fmt.Sprintf("malformed store response: %v", err)}
	}
	if !decoded.Success {
		return nil, &Error{Status: httpResp.StatusCode, Message: decoded.Error}
	}
	return &decoded, nil
}
