package model

import (
	"strings"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

const (
	// DefaultMaxQueries 默认最多提取的关键词个数
	DefaultMaxQueries = 3
	// MaxQueriesLimit 关键词个数上限
	MaxQueriesLimit = 10
)

// AnalysisType 查询分类
const (
	AnalysisMarketResearch = "market_research"
	AnalysisGeneral        = "general_analysis"
)

// Verdict 是否值得做的结论
type Verdict string

const (
	VerdictBuild    Verdict = "BUILD"
	VerdictValidate Verdict = "VALIDATE"
	VerdictPivot    Verdict = "PIVOT"
)

// ParseVerdict 将模型输出归一化为三种结论之一
// DON'T BUILD / NO BUILD 视为 PIVOT，ANALYZE FURTHER 与无法识别的输出视为 VALIDATE
func ParseVerdict(s string) Verdict {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.NewReplacer("’", "'", "_", " ", "-", " ").Replace(v)
	switch v {
	case "BUILD", "BUILD IT", "GO":
		return VerdictBuild
	case "PIVOT", "DON'T BUILD", "DONT BUILD", "DO NOT BUILD", "NO BUILD", "NO GO":
		return VerdictPivot
	case "VALIDATE", "ANALYZE FURTHER", "VALIDATE FURTHER":
		return VerdictValidate
	}
	return VerdictValidate
}

// Options 单次验证选项
type Options struct {
	IncludeTrends *bool `json:"include_trends,omitempty"`
	MaxQueries    int   `json:"max_queries,omitempty"`
}

// WithTrends 是否查询趋势数据，默认 true
func (o Options) WithTrends() bool {
	return o.IncludeTrends == nil || *o.IncludeTrends
}

// Queries 关键词个数，默认 3，上限 10
func (o Options) Queries() int {
	switch {
	case o.MaxQueries <= 0:
		return DefaultMaxQueries
	case o.MaxQueries > MaxQueriesLimit:
		return MaxQueriesLimit
	}
	return o.MaxQueries
}

// TrendsData 结果中嵌入的趋势数据
type TrendsData struct {
	InterestOverTime *trends.InterestOverTime `json:"interest_over_time"`
}

// ValidationResult 单次验证结果
type ValidationResult struct {
	Success          bool        `json:"success"`
	Query            string      `json:"query"`
	Recommendations  []string    `json:"recommendations"`
	TrendsData       *TrendsData `json:"trends_data"`
	OpportunityScore int         `json:"opportunity_score"`
	RiskScore        int         `json:"risk_score"`
	Recommendation   Verdict     `json:"recommendation"`
	KeyInsights      []string    `json:"key_insights,omitempty"`
	TrendAnalysis    string      `json:"trend_analysis,omitempty"`
	Error            string      `json:"error,omitempty"`
	AnalysisType     string      `json:"analysis_type,omitempty"`
	Keywords         []string    `json:"keywords,omitempty"`
	ProcessingTime   float64     `json:"processing_time"`
}

// BatchResult 批量验证结果
type BatchResult struct {
	Success           bool                `json:"success"`
	Results           []*ValidationResult `json:"results"`
	TotalQueries      int                 `json:"total_queries"`
	SuccessfulQueries int                 `json:"successful_queries"`
	FailedQueries     int                 `json:"failed_queries"`
}

// NewBatchResult 汇总批量结果，至少一项成功即视为成功
func NewBatchResult(results []*ValidationResult) *BatchResult {
	br := &BatchResult{Results: results, TotalQueries: len(results)}
	for _, r := range results {
		if r != nil && r.Success {
			br.SuccessfulQueries++
		}
	}
	br.FailedQueries = br.TotalQueries - br.SuccessfulQueries
	br.Success = br.SuccessfulQueries > 0
	return br
}

// ClampScore 将分数限制在 [0, 10]
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
