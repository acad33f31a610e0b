package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// mockValidator 模拟验证引擎
type mockValidator struct {
	ready   bool
	queries []string
}

func (m *mockValidator) Validate(_ context.Context, idea string, _ model.Options) *model.ValidationResult {
	m.queries = append(m.queries, idea)
	return &model.ValidationResult{Success: true, Query: idea, Recommendation: model.VerdictBuild}
}

func (m *mockValidator) ValidateBatch(ctx context.Context, ideas []string, opts model.Options) *model.BatchResult {
	var results []*model.ValidationResult
	for _, idea := range ideas {
		results = append(results, m.Validate(ctx, idea, opts))
	}
	return model.NewBatchResult(results)
}

func (m *mockValidator) Ready() bool { return m.ready }

type mockTrendsHealth bool

func (m mockTrendsHealth) Health(context.Context) bool { return bool(m) }

func TestValidationUseCase_Validate(t *testing.T) {
	v := &mockValidator{ready: true}
	uc := NewValidationUseCase(v, mockTrendsHealth(true), log.DefaultLogger)

	res, err := uc.Validate(context.Background(), "coffee subscription", model.Options{})
	require.NoError(t, err)
	assert.True(t, res.Success)

	_, err = uc.Validate(context.Background(), " \t", model.Options{})
	assert.ErrorIs(t, err, trends.ErrInvalidArgument)
	assert.Equal(t, []string{"coffee subscription"}, v.queries)
}

func TestValidationUseCase_ValidateBatch(t *testing.T) {
	uc := NewValidationUseCase(&mockValidator{}, nil, log.DefaultLogger)

	br, err := uc.ValidateBatch(context.Background(), []string{"a", "b"}, model.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, br.TotalQueries)

	_, err = uc.ValidateBatch(context.Background(), nil, model.Options{})
	assert.ErrorIs(t, err, trends.ErrInvalidArgument)
}

func TestValidationUseCase_Health(t *testing.T) {
	uc := NewValidationUseCase(&mockValidator{ready: true}, mockTrendsHealth(false), log.DefaultLogger)
	uc.now = func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) }

	h := uc.Health(context.Background())
	assert.Equal(t, &HealthStatus{
		Status:                "healthy",
		AgentReady:            true,
		GoogleTrendsAvailable: false,
		Timestamp:             "2024-03-14T09:00:00Z",
	}, h)
	assert.True(t, uc.Ready())
}
