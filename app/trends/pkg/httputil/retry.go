// Package httputil 提供各个趋势客户端共用的 HTTP 工具
package httputil

import (
	"context"
	"io"
	"net/http"
	"time"
)

// RetryBaseDelay 429 退避的基础时长，测试中会被覆盖
var RetryBaseDelay = 2 * time.Second

const defaultMaxRetries = 3

// DoWithRetry 执行请求，遇到 HTTP 429 时按 2^attempt * RetryBaseDelay 退避重试
// 重试耗尽后原样返回最后一次 429 响应，由调用方决定如何处理
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(RetryBaseDelay * time.Duration(1<<attempt)):
		}
	}
}
