package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult 文本格式输出单条验证结果
func writeResult(w io.Writer, r *model.ValidationResult) {
	fmt.Fprintf(w, "Idea: %s\n", r.Query)
	if !r.Success {
		fmt.Fprintf(w, "Status: FAILED (%s)\n", r.Error)
		return
	}
	fmt.Fprintf(w, "Verdict: %s\n", r.Recommendation)
	fmt.Fprintf(w, "Opportunity: %d/10  Risk: %d/10\n", r.OpportunityScore, r.RiskScore)
	if len(r.Keywords) > 0 {
		fmt.Fprintf(w, "Keywords: %s\n", strings.Join(r.Keywords, ", "))
	}
	if r.TrendAnalysis != "" {
		fmt.Fprintf(w, "\nTrend analysis:\n  %s\n", r.TrendAnalysis)
	}
	if len(r.KeyInsights) > 0 {
		fmt.Fprintln(w, "\nKey insights:")
		for _, s := range r.KeyInsights {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	fmt.Fprintln(w, "\nRecommendations:")
	for i, s := range r.Recommendations {
		fmt.Fprintf(w, "  %d. %s\n", i+1, s)
	}
	fmt.Fprintf(w, "\nProcessed in %.1fs\n", r.ProcessingTime)
}

func writeBatch(w io.Writer, br *model.BatchResult) {
	for i, r := range br.Results {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("-", 40))
		}
		writeResult(w, r)
	}
	fmt.Fprintf(w, "\n%d of %d ideas validated, %d failed\n", br.SuccessfulQueries, br.TotalQueries, br.FailedQueries)
}

func writeSeries(w io.Writer, s *trends.Series) {
	fmt.Fprint(w, s.Summarize().String())
	fmt.Fprintf(w, "  - Range: %s, source: %s\n", s.Metadata.Date, s.Metadata.Backend)
}
