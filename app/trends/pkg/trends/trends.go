package trends

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultDate 默认时间范围：最近 12 个月
	DefaultDate = "today 12-m"
	// MaxKeywords Google Trends 单次最多对比的关键词个数，多出的部分被丢弃
	MaxKeywords = 5
)

var (
	// ErrInvalidArgument 关键词缺失或为空
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable 上游趋势服务不可用，或返回了无法识别的结构
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Provider 定义通用的趋势数据接口
// mock 与 serpapi 两种后端返回完全相同的结构，调用方无法区分
type Provider interface {
	Trends(ctx context.Context, req *Request) (*Series, error)
}

// Request 通用趋势请求
type Request struct {
	Keywords []string
	Date     string // 不透明的时间范围描述，例如 "today 12-m"
}

// Series 趋势时间序列
type Series struct {
	InterestOverTime InterestOverTime `json:"interest_over_time"`
	Metadata         Metadata         `json:"search_parameters"`
}

// InterestOverTime 时间线与各关键词均值
type InterestOverTime struct {
	TimelineData []Point   `json:"timeline_data"`
	Averages     []Average `json:"averages"`
}

// Point 单个时间点
type Point struct {
	Date      string  `json:"date"`
	Timestamp string  `json:"timestamp"`
	Values    []Value `json:"values"`
}

// Value 单个关键词在某个时间点的热度
type Value struct {
	Query          string `json:"query"`
	Value          string `json:"value"`
	ExtractedValue int    `json:"extracted_value"`
}

// Average 关键词在整个区间内的平均热度
type Average struct {
	Query string `json:"query"`
	Value int    `json:"value"`
}

// Metadata 请求参数回显
type Metadata struct {
	Keywords []string `json:"q"`
	Date     string   `json:"date"`
	Backend  string   `json:"engine"`
}

// ParseKeywords 按逗号拆分、去除空白，保留顺序与重复项
func ParseKeywords(raw ...string) ([]string, error) {
	var keywords []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if kw := strings.TrimSpace(part); kw != "" {
				keywords = append(keywords, kw)
			}
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: at least one keyword is required", ErrInvalidArgument)
	}
	return keywords, nil
}

// Normalize 校验请求、截断到 MaxKeywords 并填充默认值
func (r *Request) Normalize() error {
	if r == nil {
		return fmt.Errorf("%w: nil request", ErrInvalidArgument)
	}
	keywords, err := ParseKeywords(r.Keywords...)
	if err != nil {
		return err
	}
	if len(keywords) > MaxKeywords {
		keywords = keywords[:MaxKeywords]
	}
	r.Keywords = keywords
	if strings.TrimSpace(r.Date) == "" {
		r.Date = DefaultDate
	}
	return nil
}

// Validate 防御性校验：每个关键词位置恰好一个均值，每个时间点都包含全部关键词
func (s *Series) Validate(keywords []string) error {
	if s == nil {
		return fmt.Errorf("%w: empty trends response", ErrUpstreamUnavailable)
	}
	iot := s.InterestOverTime
	if len(iot.TimelineData) == 0 {
		return fmt.Errorf("%w: timeline_data is empty", ErrUpstreamUnavailable)
	}
	if len(iot.Averages) != len(keywords) {
		return fmt.Errorf("%w: got %d averages for %d keywords", ErrUpstreamUnavailable, len(iot.Averages), len(keywords))
	}
	for i, avg := range iot.Averages {
		if !strings.EqualFold(avg.Query, keywords[i]) {
			return fmt.Errorf("%w: average %d is for %q, want %q", ErrUpstreamUnavailable, i, avg.Query, keywords[i])
		}
		if avg.Value < 0 || avg.Value > 100 {
			return fmt.Errorf("%w: average for %q out of range: %d", ErrUpstreamUnavailable, avg.Query, avg.Value)
		}
	}
	for _, p := range iot.TimelineData {
		if len(p.Values) != len(keywords) {
			return fmt.Errorf("%w: point %q has %d values for %d keywords", ErrUpstreamUnavailable, p.Date, len(p.Values), len(keywords))
		}
		for i, v := range p.Values {
			if !strings.EqualFold(v.Query, keywords[i]) {
				return fmt.Errorf("%w: point %q value %d is for %q, want %q", ErrUpstreamUnavailable, p.Date, i, v.Query, keywords[i])
			}
			if v.ExtractedValue < 0 || v.ExtractedValue > 100 {
				return fmt.Errorf("%w: point %q value for %q out of range: %d", ErrUpstreamUnavailable, p.Date, v.Query, v.ExtractedValue)
			}
		}
	}
	return nil
}

// FillAverages 上游未返回均值时（单关键词查询常见）按时间线计算
func (s *Series) FillAverages(keywords []string) {
	timeline := s.InterestOverTime.TimelineData
	if len(s.InterestOverTime.Averages) > 0 || len(timeline) == 0 {
		return
	}
	for i, kw := range keywords {
		total, n := 0, 0
		for _, p := range timeline {
			if i < len(p.Values) {
				total += p.Values[i].ExtractedValue
				n++
			}
		}
		avg := 0
		if n > 0 {
			avg = int(math.Round(float64(total) / float64(n)))
		}
		s.InterestOverTime.Averages = append(s.InterestOverTime.Averages, Average{Query: kw, Value: avg})
	}
}

// Keywords 按均值顺序返回关键词
func (s *Series) Keywords() []string {
	keywords := make([]string, 0, len(s.InterestOverTime.Averages))
	for _, avg := range s.InterestOverTime.Averages {
		keywords = append(keywords, avg.Query)
	}
	return keywords
}
