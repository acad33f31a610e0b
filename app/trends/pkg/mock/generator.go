package mock

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

const (
	// Backend 元数据中的后端名称
	Backend = "mock"
	// DefaultPoints 默认生成 52 个周数据点
	DefaultPoints = 52

	week    = 7 * 24 * time.Hour
	maxStep = 8
)

// Generator 生成模拟的 Google Trends 数据
type Generator struct {
	points int
	now    func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option 生成器选项
type Option func(*Generator)

// WithPoints 设置数据点数量
func WithPoints(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.points = n
		}
	}
}

// WithRand 指定随机源，测试中用于固定输出
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rnd = r
		}
	}
}

// WithClock 指定当前时间
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// NewGenerator 创建模拟数据生成器
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		points: DefaultPoints,
		now:    time.Now,
		rnd:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ensure Generator implements trends.Provider
var _ trends.Provider = (*Generator)(nil)

// Trends implements trends.Provider
func (g *Generator) Trends(ctx context.Context, req *trends.Request) (*trends.Series, error) {
	if err := req.Normalize(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	walks := g.walks(len(req.Keywords))
	starts := g.weekStarts()

	series := &trends.Series{
		Metadata: trends.Metadata{
			Keywords: req.Keywords,
			Date:     req.Date,
			Backend:  Backend,
		},
	}
	sums := make([]int, len(req.Keywords))
	for i, start := range starts {
		p := trends.Point{
			Date:      weekLabel(start),
			Timestamp: strconv.FormatInt(start.Unix(), 10),
			Values:    make([]trends.Value, 0, len(req.Keywords)),
		}
		for k, kw := range req.Keywords {
			v := walks[k][i]
			sums[k] += v
			p.Values = append(p.Values, trends.Value{
				Query:          kw,
				Value:          strconv.Itoa(v),
				ExtractedValue: v,
			})
		}
		series.InterestOverTime.TimelineData = append(series.InterestOverTime.TimelineData, p)
	}
	for k, kw := range req.Keywords {
		series.InterestOverTime.Averages = append(series.InterestOverTime.Averages, trends.Average{
			Query: kw,
			Value: int(math.Round(float64(sums[k]) / float64(len(starts)))),
		})
	}
	return series, nil
}

// walks 为每个关键词生成一条有界随机游走
func (g *Generator) walks(n int) [][]int {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([][]int, n)
	for k := range out {
		v := 20 + g.rnd.IntN(61)
		row := make([]int, g.points)
		for i := range row {
			v += g.rnd.IntN(2*maxStep+1) - maxStep
			v = min(max(v, 0), 100)
			row[i] = v
		}
		out[k] = row
	}
	return out
}

// weekStarts 返回以本周结束的每周起始日（周日）
func (g *Generator) weekStarts() []time.Time {
	now := g.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	current := today.AddDate(0, 0, -int(today.Weekday()))
	starts := make([]time.Time, g.points)
	for i := range starts {
		starts[i] = current.Add(-time.Duration(g.points-1-i) * week)
	}
	return starts
}

// weekLabel 生成与 SerpApi 一致的周标签，例如 "Jan 7 – 13, 2024"
func weekLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	switch {
	case start.Year() != end.Year():
		return fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	case start.Month() != end.Month():
		return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	default:
		return fmt.Sprintf("%s – %d, %d", start.Format("Jan 2"), end.Day(), end.Year())
	}
}
