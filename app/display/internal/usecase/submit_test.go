package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/saas_validator/app/display/internal/repo"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// mockValidator 模拟验证服务
type mockValidator struct {
	calls int
	err   error
}

func (m *mockValidator) Validate(_ context.Context, query string) (*model.ValidationResult, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return &model.ValidationResult{
		Success:          true,
		Query:            query,
		OpportunityScore: 7,
		Recommendation:   model.VerdictBuild,
		Recommendations:  []string{"ship it"},
		TrendsData: &model.TrendsData{InterestOverTime: &trends.InterestOverTime{
			TimelineData: make([]trends.Point, 52),
			Averages:     []trends.Average{{Query: "coffee", Value: 48}},
		}},
	}, nil
}

// mockResultRepo 模拟交接存储
type mockResultRepo struct {
	items map[string]*model.ValidationResult
}

func (m *mockResultRepo) Put(_ context.Context, r *model.ValidationResult) (string, error) {
	m.items["t1"] = r
	return "t1", nil
}

func (m *mockResultRepo) Consume(_ context.Context, token string) (*model.ValidationResult, error) {
	r, ok := m.items[token]
	if !ok {
		return nil, repo.ErrResultNotFound
	}
	delete(m.items, token)
	return r, nil
}

func newUseCase(v *mockValidator) *SubmitUseCase {
	return NewSubmitUseCase(v, &mockResultRepo{items: map[string]*model.ValidationResult{}}, log.DefaultLogger)
}

func TestSubmitUseCase_SubmitAndConsume(t *testing.T) {
	v := &mockValidator{}
	uc := newUseCase(v)

	token, err := uc.Submit(context.Background(), "  coffee shop  ")
	require.NoError(t, err)

	view, err := uc.Result(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "coffee shop", view.Query)
	assert.Equal(t, "BUILD", view.Verdict)
	assert.Equal(t, 52, view.TrendPoints)
	require.Len(t, view.Keywords, 1)
	assert.Equal(t, 48, view.Keywords[0].Average)

	_, err = uc.Result(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSubmitUseCase_EmptyIdeaNeverCallsValidator(t *testing.T) {
	v := &mockValidator{}
	uc := newUseCase(v)

	for _, idea := range []string{"", "   ", "\n\t"} {
		_, err := uc.Submit(context.Background(), idea)
		assert.ErrorIs(t, err, ErrEmptyIdea)
	}
	assert.Zero(t, v.calls)
}

func TestSubmitUseCase_ValidatorFailure(t *testing.T) {
	boom := errors.New("boom")
	uc := newUseCase(&mockValidator{err: boom})

	_, err := uc.Submit(context.Background(), "coffee")
	assert.ErrorIs(t, err, boom)
}

func TestSubmitUseCase_ResultWithoutToken(t *testing.T) {
	uc := newUseCase(&mockValidator{})
	_, err := uc.Result(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoResult)
}
