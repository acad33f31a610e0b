package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	tests := map[string]Verdict{
		"BUILD":           VerdictBuild,
		" build ":         VerdictBuild,
		"PIVOT":           VerdictPivot,
		"DON'T BUILD":     VerdictPivot,
		"don’t build":     VerdictPivot,
		"VALIDATE":        VerdictValidate,
		"ANALYZE FURTHER": VerdictValidate,
		"analyze_further": VerdictValidate,
		"maybe?":          VerdictValidate,
		"":                VerdictValidate,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseVerdict(in), in)
	}
}

func TestOptions(t *testing.T) {
	off := false
	assert.True(t, Options{}.WithTrends())
	assert.False(t, Options{IncludeTrends: &off}.WithTrends())

	assert.Equal(t, DefaultMaxQueries, Options{}.Queries())
	assert.Equal(t, 5, Options{MaxQueries: 5}.Queries())
	assert.Equal(t, MaxQueriesLimit, Options{MaxQueries: 99}.Queries())
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0, ClampScore(-3))
	assert.Equal(t, 7, ClampScore(7))
	assert.Equal(t, 10, ClampScore(12))
}

func TestNewBatchResult(t *testing.T) {
	br := NewBatchResult([]*ValidationResult{{Success: true}, {Success: false}, {Success: true}})
	assert.True(t, br.Success)
	assert.Equal(t, 3, br.TotalQueries)
	assert.Equal(t, 2, br.SuccessfulQueries)
	assert.Equal(t, 1, br.FailedQueries)

	br = NewBatchResult([]*ValidationResult{{}, {}})
	assert.False(t, br.Success)
	assert.Equal(t, br.TotalQueries, br.SuccessfulQueries+br.FailedQueries)
}

func TestValidationResult_JSONFieldNames(t *testing.T) {
	b, err := json.Marshal(&ValidationResult{Success: true, Recommendation: VerdictBuild})
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"success", "query", "recommendations", "trends_data", "opportunity_score", "risk_score", "recommendation", "processing_time"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "error")
}
