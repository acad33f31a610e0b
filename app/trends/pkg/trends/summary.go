package trends

import (
	"fmt"
	"strings"
)

// recentWindow 计算近期走势使用的周数
const recentWindow = 4

// Direction 近期走势
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
	Stable  Direction = "stable"
)

// KeywordSummary 单个关键词的趋势摘要
type KeywordSummary struct {
	Query        string
	Average      int
	Latest       int
	Direction    Direction
	RecentMean   float64
	RecentPoints int
}

// Summary 整个序列的趋势摘要，供 Prompt 使用
type Summary struct {
	Keywords []KeywordSummary
	Points   int
	From     string
	To       string
	Highest  *Average
	Lowest   *Average
}

// Summarize 计算每个关键词最近几周的走势
func (s *Series) Summarize() *Summary {
	timeline := s.InterestOverTime.TimelineData
	sum := &Summary{Points: len(timeline)}
	if len(timeline) == 0 {
		return sum
	}
	sum.From = timeline[0].Date
	sum.To = timeline[len(timeline)-1].Date

	recent := timeline
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	for i, avg := range s.InterestOverTime.Averages {
		ks := KeywordSummary{Query: avg.Query, Average: avg.Value, Direction: Stable}
		var values []int
		for _, p := range recent {
			if i < len(p.Values) {
				values = append(values, p.Values[i].ExtractedValue)
			}
		}
		if len(values) > 0 {
			total := 0
			for _, v := range values {
				total += v
			}
			first, last := values[0], values[len(values)-1]
			ks.Latest = last
			ks.RecentMean = float64(total) / float64(len(values))
			ks.RecentPoints = len(values)
			switch {
			case last > first:
				ks.Direction = Rising
			case last < first:
				ks.Direction = Falling
			}
		}
		sum.Keywords = append(sum.Keywords, ks)

		a := avg
		if sum.Highest == nil || a.Value > sum.Highest.Value {
			sum.Highest = &a
		}
		if sum.Lowest == nil || a.Value < sum.Lowest.Value {
			sum.Lowest = &a
		}
	}
	return sum
}

// String 渲染为纯文本
func (sum *Summary) String() string {
	var sb strings.Builder
	names := make([]string, 0, len(sum.Keywords))
	for _, ks := range sum.Keywords {
		names = append(names, ks.Query)
	}
	fmt.Fprintf(&sb, "Trends analysis for keywords: %s\n", strings.Join(names, ", "))
	for _, ks := range sum.Keywords {
		fmt.Fprintf(&sb, "\n%s:\n", strings.ToUpper(ks.Query))
		fmt.Fprintf(&sb, "  - Average interest: %d\n", ks.Average)
		fmt.Fprintf(&sb, "  - Current interest: %d\n", ks.Latest)
		fmt.Fprintf(&sb, "  - Trend direction: %s\n", ks.Direction)
		fmt.Fprintf(&sb, "  - Recent %d-week average: %.1f\n", ks.RecentPoints, ks.RecentMean)
	}
	sb.WriteString("\nOverall:\n")
	fmt.Fprintf(&sb, "  - Data points analyzed: %d weeks\n", sum.Points)
	if sum.Points > 0 {
		fmt.Fprintf(&sb, "  - Date range: %s to %s\n", sum.From, sum.To)
	}
	if sum.Highest != nil {
		fmt.Fprintf(&sb, "  - Highest average interest: %s (%d)\n", sum.Highest.Query, sum.Highest.Value)
		fmt.Fprintf(&sb, "  - Lowest average interest: %s (%d)\n", sum.Lowest.Query, sum.Lowest.Value)
	}
	return sb.String()
}
