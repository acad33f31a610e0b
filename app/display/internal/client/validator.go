// Package client 调用验证服务的 HTTP 客户端
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iWorld-y/saas_validator/app/display/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// ErrValidationFailed 网络错误、非 2xx 或 success=false
var ErrValidationFailed = errors.New("validation failed")

// ValidatorClient 验证服务客户端
type ValidatorClient struct {
	baseURL string
	client  *http.Client
}

// NewValidatorClient 创建验证服务客户端
func NewValidatorClient(c *conf.Validator) *ValidatorClient {
	baseURL, timeout := "http://localhost:8000", 2*time.Minute
	if c != nil {
		if c.Url != "" {
			baseURL = c.Url
		}
		if d, err := time.ParseDuration(c.Timeout); err == nil && d > 0 {
			timeout = d
		}
	}
	return &ValidatorClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type validateRequest struct {
	Query         string `json:"query"`
	IncludeTrends bool   `json:"include_trends"`
}

// Validate 调用 POST /validate
func (c *ValidatorClient) Validate(ctx context.Context, query string) (*model.ValidationResult, error) {
	body, err := json.Marshal(validateRequest{Query: query, IncludeTrends: true})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/validate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrValidationFailed, res.StatusCode, strings.TrimSpace(string(b)))
	}

	var result model.ValidationResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode response failed: %v", ErrValidationFailed, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, result.Error)
	}
	return &result, nil
}
