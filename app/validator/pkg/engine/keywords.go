package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/logger"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

var marketSignals = []string{"trend", "market", "business", "idea", "validate", "research", "saas", "build", "should i", "can i"}

var listMarker = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s*`)

var stopWords = map[string]bool{
	"should": true, "build": true, "create": true, "make": true,
	"start": true, "business": true, "idea": true,
}

// classify 启发式判断查询类型
func classify(idea string) string {
	lower := strings.ToLower(idea)
	for _, s := range marketSignals {
		if strings.Contains(lower, s) {
			return model.AnalysisMarketResearch
		}
	}
	return model.AnalysisGeneral
}

const keywordPrompt = `You are a keyword generation expert for business trend analysis.
Given a business idea, generate at most %d short keywords (1-3 words each) that would be useful for Google Trends analysis.
Prefer popular search terms that are specific to the product, the industry and, if mentioned, the location.

Example:
Idea: "Can I set up a cafe in Chennai?"
Keywords: coffee, cafe, Chennai

Return only the keywords as a comma-separated list, no explanations.`

// deriveKeywords 让模型提取关键词，任何失败都回退到启发式规则，本阶段不会失败
func (e *Engine) deriveKeywords(ctx context.Context, idea string, limit int) []string {
	messages := []*schema.Message{
		{Role: schema.System, Content: fmt.Sprintf(keywordPrompt, limit)},
		{Role: schema.User, Content: idea},
	}

	var keywords []string
	err := e.generate(ctx, messages, func(content string) error {
		keywords = parseKeywordList(content, limit)
		return nil
	})
	if err != nil {
		logger.Log.Warnf("关键词提取失败，使用启发式规则: %v", err)
	}
	if len(keywords) == 0 {
		keywords = fallbackKeywords(idea, limit)
	}
	return keywords
}

// parseKeywordList 解析逗号或换行分隔的关键词，去掉引号、编号与过短的词，大小写不敏感去重
func parseKeywordList(content string, limit int) []string {
	content = strings.TrimSpace(content)
	if i := strings.Index(strings.ToLower(content), "keywords:"); i >= 0 {
		content = content[i+len("keywords:"):]
	}
	fields := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	seen := make(map[string]bool)
	var out []string
	for _, f := range fields {
		kw := strings.TrimSpace(f)
		kw = listMarker.ReplaceAllString(kw, "")
		kw = strings.Trim(kw, "\"'`[] ")
		if len(kw) <= 1 || seen[strings.ToLower(kw)] {
			continue
		}
		seen[strings.ToLower(kw)] = true
		out = append(out, kw)
		if len(out) == limit {
			break
		}
	}
	return out
}

// fallbackKeywords 长度大于 3 且不在停用词表中的词，没有则使用整个想法
func fallbackKeywords(idea string, limit int) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(idea)) {
		w = strings.Trim(w, ".,!?;:\"'()")
		if len(w) > 3 && !stopWords[w] {
			out = append(out, w)
		}
		if len(out) == limit {
			break
		}
	}
	if len(out) == 0 {
		// 整个想法作为关键词时按逗号拆分，与趋势后端的解析保持一致
		parsed, err := trends.ParseKeywords(idea)
		if err != nil {
			return []string{strings.TrimSpace(idea)}
		}
		out = parsed
		if len(out) > limit {
			out = out[:limit]
		}
	}
	return out
}
