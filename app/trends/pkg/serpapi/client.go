package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/httputil"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

const (
	// Backend 元数据中的后端名称
	Backend = "serpapi"

	defaultBaseURL = "https://serpapi.com/search.json"
)

// Client SerpApi Google Trends 客户端
type Client struct {
	apiKey     string
	baseURL    string
	maxRetries int
	client     *http.Client
}

// Option 客户端选项
type Option func(*Client)

// WithBaseURL 覆盖 API 地址，测试中指向 httptest
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient 指定 HTTP 客户端
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithMaxRetries 429 时的最大重试次数
func WithMaxRetries(n int) Option {
	return func(c *Client) { c.maxRetries = n }
}

// NewClient 创建一个新的 SerpApi 客户端
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements trends.Provider
var _ trends.Provider = (*Client)(nil)

// searchResponse SerpApi 响应，只保留需要的字段
type searchResponse struct {
	Error            string                   `json:"error"`
	InterestOverTime *trends.InterestOverTime `json:"interest_over_time"`
}

// Trends implements trends.Provider
func (c *Client) Trends(ctx context.Context, req *trends.Request) (*trends.Series, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("engine", "google_trends")
	q.Set("q", strings.Join(req.Keywords, ","))
	q.Set("date", req.Date)
	q.Set("data_type", "TIMESERIES")
	q.Set("api_key", c.apiKey)
	u.RawQuery = q.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	res, err := httputil.DoWithRetry(ctx, c.client, httpReq, c.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: serpapi request failed: %v", trends.ErrUpstreamUnavailable, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read serpapi body failed: %v", trends.ErrUpstreamUnavailable, err)
	}

	var sr searchResponse
	decodeErr := json.Unmarshal(body, &sr)

	if res.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if decodeErr == nil && sr.Error != "" {
			msg = sr.Error
		}
		return nil, fmt.Errorf("%w: serpapi error (status %d): %s", trends.ErrUpstreamUnavailable, res.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: unmarshal serpapi response failed: %v", trends.ErrUpstreamUnavailable, decodeErr)
	}
	if sr.Error != "" {
		return nil, fmt.Errorf("%w: serpapi error: %s", trends.ErrUpstreamUnavailable, sr.Error)
	}
	if sr.InterestOverTime == nil {
		return nil, fmt.Errorf("%w: serpapi response has no interest_over_time", trends.ErrUpstreamUnavailable)
	}

	series := &trends.Series{
		InterestOverTime: *sr.InterestOverTime,
		Metadata: trends.Metadata{
			Keywords: req.Keywords,
			Date:     req.Date,
			Backend:  Backend,
		},
	}
	series.FillAverages(req.Keywords)
	if err := series.Validate(req.Keywords); err != nil {
		return nil, err
	}
	return series, nil
}
