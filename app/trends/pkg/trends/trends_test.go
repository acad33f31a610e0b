package trends

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(keywords []string, rows ...[]int) *Series {
	s := &Series{}
	sums := make([]int, len(keywords))
	for i, row := range rows {
		p := Point{Date: "week " + string(rune('A'+i))}
		for j, kw := range keywords {
			p.Values = append(p.Values, Value{Query: kw, ExtractedValue: row[j]})
			sums[j] += row[j]
		}
		s.InterestOverTime.TimelineData = append(s.InterestOverTime.TimelineData, p)
	}
	for j, kw := range keywords {
		s.InterestOverTime.Averages = append(s.InterestOverTime.Averages, Average{Query: kw, Value: sums[j] / len(rows)})
	}
	return s
}

func TestParseKeywords(t *testing.T) {
	got, err := ParseKeywords("coffee, milk,,bread", " pasta ", "steak,coffee")
	require.NoError(t, err)
	assert.Equal(t, []string{"coffee", "milk", "bread", "pasta", "steak", "coffee"}, got)
}

func TestParseKeywords_Empty(t *testing.T) {
	for _, in := range [][]string{nil, {""}, {"   "}, {" , ,, "}} {
		got, err := ParseKeywords(in...)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %q", in)
		assert.Nil(t, got)
	}
}

func TestRequestNormalize_DefaultDate(t *testing.T) {
	req := &Request{Keywords: []string{"a,b"}}
	require.NoError(t, req.Normalize())
	assert.Equal(t, []string{"a", "b"}, req.Keywords)
	assert.Equal(t, DefaultDate, req.Date)

	req = &Request{Keywords: []string{"a"}, Date: "today 3-m"}
	require.NoError(t, req.Normalize())
	assert.Equal(t, "today 3-m", req.Date)
}

func TestRequestNormalize_CapsKeywords(t *testing.T) {
	req := &Request{Keywords: []string{"a,b,c", "d", "e,f,g"}}
	require.NoError(t, req.Normalize())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, req.Keywords)
	assert.Len(t, req.Keywords, MaxKeywords)

	// 规范化可重复执行
	require.NoError(t, req.Normalize())
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, req.Keywords)
}

func TestSeriesValidate(t *testing.T) {
	kws := []string{"coffee", "milk"}
	ok := series(kws, []int{10, 20}, []int{30, 40})
	require.NoError(t, ok.Validate(kws))

	t.Run("missing average", func(t *testing.T) {
		s := series(kws, []int{10, 20})
		s.InterestOverTime.Averages = s.InterestOverTime.Averages[:1]
		assert.ErrorIs(t, s.Validate(kws), ErrUpstreamUnavailable)
	})

	t.Run("keyword dropped mid-series", func(t *testing.T) {
		s := series(kws, []int{10, 20}, []int{30, 40})
		s.InterestOverTime.TimelineData[1].Values = s.InterestOverTime.TimelineData[1].Values[:1]
		assert.ErrorIs(t, s.Validate(kws), ErrUpstreamUnavailable)
	})

	t.Run("value out of range", func(t *testing.T) {
		s := series(kws, []int{10, 101})
		assert.ErrorIs(t, s.Validate(kws), ErrUpstreamUnavailable)
	})

	t.Run("empty timeline", func(t *testing.T) {
		s := &Series{}
		assert.ErrorIs(t, s.Validate(kws), ErrUpstreamUnavailable)
	})

	t.Run("nil series", func(t *testing.T) {
		var s *Series
		assert.ErrorIs(t, s.Validate(kws), ErrUpstreamUnavailable)
	})
}

func TestSummarize(t *testing.T) {
	kws := []string{"coffee", "milk"}
	s := series(kws,
		[]int{50, 50},
		[]int{10, 90},
		[]int{20, 80},
		[]int{30, 70},
		[]int{40, 60},
	)

	sum := s.Summarize()
	require.Len(t, sum.Keywords, 2)
	assert.Equal(t, 5, sum.Points)
	assert.Equal(t, Rising, sum.Keywords[0].Direction)
	assert.Equal(t, Falling, sum.Keywords[1].Direction)
	assert.Equal(t, 40, sum.Keywords[0].Latest)
	assert.Equal(t, 4, sum.Keywords[0].RecentPoints)
	assert.InDelta(t, 25.0, sum.Keywords[0].RecentMean, 0.001)
	assert.Equal(t, "milk", sum.Highest.Query)
	assert.Equal(t, "coffee", sum.Lowest.Query)

	text := sum.String()
	assert.Contains(t, text, "COFFEE:")
	assert.Contains(t, text, "Trend direction: rising")
	assert.True(t, strings.Contains(text, "Data points analyzed: 5 weeks"))
}
