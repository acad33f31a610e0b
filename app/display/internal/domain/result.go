package domain

import (
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// KeywordInterest 结果页中的关键词平均热度
type KeywordInterest struct {
	Query   string
	Average int
}

// ResultView 结果页展示对象
type ResultView struct {
	Query            string
	OpportunityScore int
	RiskScore        int
	Verdict          string
	TrendAnalysis    string
	KeyInsights      []string
	Recommendations  []string
	Keywords         []KeywordInterest
	TrendPoints      int
	ProcessingTime   float64
}

// NewResultView 从验证结果构建展示对象
func NewResultView(r *model.ValidationResult) *ResultView {
	v := &ResultView{
		Query:            r.Query,
		OpportunityScore: r.OpportunityScore,
		RiskScore:        r.RiskScore,
		Verdict:          string(r.Recommendation),
		TrendAnalysis:    r.TrendAnalysis,
		KeyInsights:      r.KeyInsights,
		Recommendations:  r.Recommendations,
		ProcessingTime:   r.ProcessingTime,
	}
	if r.TrendsData != nil && r.TrendsData.InterestOverTime != nil {
		iot := r.TrendsData.InterestOverTime
		v.TrendPoints = len(iot.TimelineData)
		for _, avg := range iot.Averages {
			v.Keywords = append(v.Keywords, KeywordInterest{Query: avg.Query, Average: avg.Value})
		}
	}
	return v
}
