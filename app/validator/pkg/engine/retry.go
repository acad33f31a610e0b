package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"
)

// retryBaseDelay 模型调用退避的基础时长，测试中会被覆盖
var retryBaseDelay = 2 * time.Second

// errUnparseable 模型返回了无法解析的结构，可以重试
var errUnparseable = errors.New("unparseable model response")

// isTransient 429 / 529 / overloaded 视为可重试
func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "529") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "overloaded")
}

// generate 经过限流器调用模型，遇到临时错误或解析失败时按 2^i * retryBaseDelay 退避重试
// parse 返回 errUnparseable 时重试，返回其他错误时直接失败
func (e *Engine) generate(ctx context.Context, messages []*schema.Message, parse func(string) error) error {
	var lastErr error
	for i := 0; i <= e.maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBaseDelay * time.Duration(1<<(i-1))):
			}
		}

		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}

		resp, err := e.chatModel.Generate(ctx, messages)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if isTransient(err) {
				lastErr = err
				continue
			}
			return err
		}
		if resp == nil {
			lastErr = errUnparseable
			continue
		}

		if err := parse(resp.Content); err != nil {
			if errors.Is(err, errUnparseable) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return lastErr
}

// cleanJSON 去掉 markdown 代码块标记以及 JSON 前后的说明文字
func cleanJSON(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if start, end := strings.Index(s, "{"), strings.LastIndex(s, "}"); start >= 0 && end > start {
		s = s[start : end+1]
	}
	return s
}
