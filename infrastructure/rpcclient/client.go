// Package rpcclient implements the backend boundary against the remote data
// service: two POST RPC endpoints plus the read-only resort_stats projection.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"snowlist/domain/contracts"
	"snowlist/domain/resort"
	"snowlist/infrastructure/config"
	"snowlist/logging"
)

// Client talks to the remote resort data backend. It implements
// contracts.ResortRepository.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	apiKey  string
	log     *logging.Logger
}

// New creates a backend client from config.
func New(cfg *config.BackendConfig, log *logging.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.RetryMax
	rc.HTTPClient.Timeout = cfg.Timeout
	rc.Logger = nil

	return &Client{
		http:    rc,
		baseURL: strings.TrimRight(cfg.RPCBaseURL, "/"),
		apiKey:  cfg.RPCAPIKey,
		log:     log.WithComponent("rpcclient"),
	}
}

// SearchResorts calls the search_resorts procedure.
func (c *Client) SearchResorts(ctx context.Context, params contracts.SearchParams) ([]resort.Summary, error) {
	args := searchArgs{
		Query:      params.Query,
		Status:     string(params.Status),
		Difficulty: string(params.Difficulty),
		KidsTape:   params.KidsTape,
		Sort:       string(params.Sort),
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	var rows []resortRow
	if err := c.callRPC(ctx, "search_resorts", args, &rows); err != nil {
		return nil, err
	}

	results := make([]resort.Summary, len(rows))
	for i, row := range rows {
		results[i] = mapResortRow(row)
	}
	return results, nil
}

// ResortCounts calls the resort_counts procedure.
func (c *Client) ResortCounts(ctx context.Context, params contracts.CountParams) (contracts.Counts, error) {
	args := countArgs{
		Query:      params.Query,
		Difficulty: string(params.Difficulty),
		KidsTape:   params.KidsTape,
	}

	var row countsRow
	if err := c.callRPC(ctx, "resort_counts", args, &row); err != nil {
		return contracts.Counts{}, err
	}
	return contracts.Counts{
		Open:   resort.NumInt(row.OpenCount),
		Closed: resort.NumInt(row.ClosedCount),
	}, nil
}

// LatestStatsUpdate reads the resort_stats projection for the single most
// recent non-null stats timestamp.
func (c *Client) LatestStatsUpdate(ctx context.Context) (*time.Time, error) {
	query := url.Values{
		"select":           {"stats_updated_at"},
		"stats_updated_at": {"not.is.null"},
		"order":            {"stats_updated_at.desc"},
		"limit":            {"1"},
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/resort_stats?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build resort_stats request: %w", err)
	}
	c.setHeaders(req)

	var rows []statsRow
	if err := c.do(req, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return parseTime(rows[0].StatsUpdatedAt), nil
}

// callRPC POSTs JSON-encoded args to an RPC endpoint and decodes the reply.
func (c *Client) callRPC(ctx context.Context, procedure string, args any, out any) error {
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode %s args: %w", procedure, err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rpc/"+procedure, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", procedure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.setHeaders(req)

	started := time.Now()
	if err := c.do(req, out); err != nil {
		return fmt.Errorf("%s call failed: %w", procedure, err)
	}
	c.log.Backend("rpc call completed", "procedure", procedure, "duration_ms", time.Since(started).Milliseconds())
	return nil
}

func (c *Client) setHeaders(req *retryablehttp.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *Client) do(req *retryablehttp.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}
