package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

const synthesisPrompt = `You are a business analyst specializing in SaaS market opportunity assessment.

Business idea:
%s

Analysis type: %s

Google Trends data:
%s

Evaluate the idea and respond with strictly this JSON object, no markdown and no other text:
{
  "opportunity_score": 7,
  "risk_score": 4,
  "recommendation": "BUILD",
  "trend_analysis": "What the trend data indicates (direction, seasonality, relative interest).",
  "key_insights": ["insight 1", "insight 2"],
  "recommendations": ["actionable recommendation 1", "actionable recommendation 2", "actionable recommendation 3"]
}

Rules:
- opportunity_score and risk_score are integers from 0 to 10 (higher opportunity is more promising, higher risk is riskier).
- recommendation is exactly one of BUILD, VALIDATE or PIVOT.
- recommendations contains one or more concrete paragraphs covering market opportunity, competition, go-to-market and next steps.
- If no trend data is available, say so and base the assessment on general market knowledge.`

const noTrendData = "No trend data available for this analysis."

// synthesis 模型返回的结构
type synthesis struct {
	OpportunityScore *float64 `json:"opportunity_score"`
	RiskScore        *float64 `json:"risk_score"`
	Recommendation   string   `json:"recommendation"`
	TrendAnalysis    string   `json:"trend_analysis"`
	KeyInsights      []string `json:"key_insights"`
	Recommendations  []string `json:"recommendations"`
}

// parseSynthesis 解析并校验模型输出，缺少分数或建议都视为无法解析
func parseSynthesis(content string) (*synthesis, error) {
	var s synthesis
	if err := json.Unmarshal([]byte(cleanJSON(content)), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", errUnparseable, err)
	}
	if s.OpportunityScore == nil || s.RiskScore == nil {
		return nil, fmt.Errorf("%w: missing scores", errUnparseable)
	}

	recs := s.Recommendations[:0]
	for _, r := range s.Recommendations {
		if r = strings.TrimSpace(r); r != "" {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: no recommendations", errUnparseable)
	}
	s.Recommendations = recs
	return &s, nil
}

func (s *synthesis) opportunity() int {
	return toScore(*s.OpportunityScore)
}

func (s *synthesis) risk() int {
	return toScore(*s.RiskScore)
}

// toScore 先在浮点域内限制到 [0, 10] 再取整，避免超大数值转换 int 时溢出
func toScore(v float64) int {
	return model.ClampScore(int(math.Round(math.Max(0, math.Min(10, v)))))
}

// synthesize 调用模型生成结论，超时与重试耗尽都算模型失败
func (e *Engine) synthesize(ctx context.Context, idea, analysisType string, series *trends.Series) (*synthesis, error) {
	ctx, cancel := context.WithTimeout(ctx, e.synthesisTimeout)
	defer cancel()

	trendText := noTrendData
	if series != nil {
		trendText = series.Summarize().String()
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: "You are a JSON generator. Output only a JSON object."},
		{Role: schema.User, Content: fmt.Sprintf(synthesisPrompt, idea, analysisType, trendText)},
	}

	var out *synthesis
	err := e.generate(ctx, messages, func(content string) error {
		s, err := parseSynthesis(content)
		if err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelFailure, err)
	}
	return out, nil
}
