package server

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/iWorld-y/saas_validator/app/validator/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/internal/service"
	"github.com/iWorld-y/saas_validator/app/validator/internal/usecase"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

type stubValidator struct {
	ready bool
	got   []model.Options
}

func (s *stubValidator) Validate(_ context.Context, idea string, opts model.Options) *model.ValidationResult {
	s.got = append(s.got, opts)
	if strings.Contains(idea, "fail") {
		return &model.ValidationResult{Query: idea, Recommendations: []string{}, Error: "model failure: timeout"}
	}
	return &model.ValidationResult{
		Success: true, Query: idea, Recommendations: []string{"ship it"},
		OpportunityScore: 7, RiskScore: 3, Recommendation: model.VerdictBuild, ProcessingTime: 0.5,
	}
}

func (s *stubValidator) ValidateBatch(ctx context.Context, ideas []string, opts model.Options) *model.BatchResult {
	results := make([]*model.ValidationResult, 0, len(ideas))
	for _, idea := range ideas {
		results = append(results, s.Validate(ctx, idea, opts))
	}
	return model.NewBatchResult(results)
}

func (s *stubValidator) Ready() bool { return s.ready }

type stubTrendsHealth bool

func (s stubTrendsHealth) Health(context.Context) bool { return bool(s) }

func newTestHandler(v *stubValidator) nethttp.Handler {
	uc := usecase.NewValidationUseCase(v, stubTrendsHealth(true), log.DefaultLogger)
	svc := service.NewValidatorService(uc, "test", log.DefaultLogger)
	return NewHTTPServer(&conf.Server{}, svc, log.DefaultLogger)
}

func post(t *testing.T, h nethttp.Handler, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(nethttp.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return rec, out
}

func TestValidateEndpoint(t *testing.T) {
	v := &stubValidator{ready: true}
	h := newTestHandler(v)

	rec, out := post(t, h, "/validate", `{"query":"coffee subscription","include_trends":false,"max_queries":2}`)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "BUILD", out["recommendation"])
	assert.EqualValues(t, 7, out["opportunity_score"])

	require.Len(t, v.got, 1)
	require.NotNil(t, v.got[0].IncludeTrends)
	assert.False(t, *v.got[0].IncludeTrends)
	assert.Equal(t, 2, v.got[0].MaxQueries)
}

func TestValidateEndpoint_HandledFailure(t *testing.T) {
	rec, out := post(t, newTestHandler(&stubValidator{}), "/validate", `{"query":"this will fail"}`)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "model failure: timeout", out["error"])
	assert.Empty(t, out["recommendations"])
}

func TestValidateEndpoint_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty query", `{"query":""}`, "query is required"},
		{"blank query", `{"query":"   "}`, "query is required"},
		{"malformed json", `{"query":`, "invalid request body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &stubValidator{}
			rec, out := post(t, newTestHandler(v), "/validate", tt.body)
			assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
			assert.Contains(t, out["error"], tt.want)
			assert.Empty(t, v.got)
		})
	}
}

func TestValidateBatchEndpoint(t *testing.T) {
	rec, out := post(t, newTestHandler(&stubValidator{}), "/validate/batch", `{"queries":["coffee","will fail","crm"]}`)
	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, true, out["success"])
	assert.EqualValues(t, 3, out["total_queries"])
	assert.EqualValues(t, 2, out["successful_queries"])
	assert.EqualValues(t, 1, out["failed_queries"])
	assert.Len(t, out["results"], 3)

	rec, out = post(t, newTestHandler(&stubValidator{}), "/validate/batch", `{"queries":[]}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, out["error"])
}

func TestHealthAndIndexEndpoints(t *testing.T) {
	h := newTestHandler(&stubValidator{ready: true})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/health", nil))
	require.Equal(t, nethttp.StatusOK, rec.Code)
	var health map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health["status"])
	assert.Equal(t, true, health["agent_ready"])
	assert.Equal(t, true, health["google_trends_available"])
	assert.NotEmpty(t, health["timestamp"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(nethttp.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), `"status":"running"`)
}

func TestHealthServer(t *testing.T) {
	for _, ready := range []bool{true, false} {
		uc := usecase.NewValidationUseCase(&stubValidator{ready: ready}, nil, log.DefaultLogger)
		hs := NewHealthServer(uc)

		resp, err := hs.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
		require.NoError(t, err)
		want := healthpb.HealthCheckResponse_NOT_SERVING
		if ready {
			want = healthpb.HealthCheckResponse_SERVING
		}
		assert.Equal(t, want, resp.Status)
	}
}

func TestNewEngineConfig(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GOOGLE_TRENDS_API_URL", "http://trends.internal:3001")

	cfg := NewEngineConfig(&conf.Validator{
		Llm:    &conf.LLM{BaseUrl: "https://api.example.com/v1", ApiKey: "k", Model: "m"},
		Engine: &conf.Engine{SynthesisTimeout: 10},
	})
	assert.Equal(t, "k", cfg.LLM.APIKey)
	assert.Equal(t, "http://trends.internal:3001", cfg.Trends.URL)
	assert.Equal(t, 10, cfg.Engine.SynthesisTimeout)
	assert.Equal(t, 3, cfg.Engine.MaxRetries)
}
