// Package remote 通过 HTTP 访问趋势服务，供验证服务使用
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

// Client 趋势服务 HTTP 客户端
type Client struct {
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// NewClient 创建一个新的趋势服务客户端，timeout 单位为秒
func NewClient(baseURL string, timeout int) *Client {
	t := time.Duration(timeout) * time.Second
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: t,
		client: &http.Client{
			Timeout: t,
		},
	}
}

// Ensure Client implements trends.Provider
var _ trends.Provider = (*Client)(nil)

type errorResponse struct {
	Error string `json:"error"`
}

// Trends 调用 GET /api/trends
func (c *Client) Trends(ctx context.Context, req *trends.Request) (*trends.Series, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL + "/api/trends")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("keywords", strings.Join(req.Keywords, ","))
	q.Set("date", req.Date)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: request failed: %v", trends.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body failed: %v", trends.ErrUpstreamUnavailable, err)
	}

	if res.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		if res.StatusCode == http.StatusBadRequest {
			return nil, fmt.Errorf("%w: %s", trends.ErrInvalidArgument, msg)
		}
		return nil, fmt.Errorf("%w: trends api error (status %d): %s", trends.ErrUpstreamUnavailable, res.StatusCode, msg)
	}

	var series trends.Series
	if err := json.Unmarshal(body, &series); err != nil {
		return nil, fmt.Errorf("%w: decode response failed: %v", trends.ErrUpstreamUnavailable, err)
	}
	if err := series.Validate(req.Keywords); err != nil {
		return nil, err
	}
	return &series, nil
}

// Health 探测 GET /api/health，任何错误都视为不可用
func (c *Client) Health(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	res, err := c.client.Do(httpReq)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)
	return res.StatusCode == http.StatusOK
}
