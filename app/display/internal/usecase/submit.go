package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/display/internal/domain"
	"github.com/iWorld-y/saas_validator/app/display/internal/repo"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

var (
	// ErrEmptyIdea 想法为空，不会发送到验证服务
	ErrEmptyIdea = errors.New("idea is empty")
	// ErrNoResult 没有可展示的结果（未提交、已读取或已过期）
	ErrNoResult = errors.New("no result to display")
)

// Validator 验证服务
type Validator interface {
	Validate(ctx context.Context, query string) (*model.ValidationResult, error)
}

// SubmitUseCase 提交想法与一次性结果交接
type SubmitUseCase struct {
	validator Validator
	repo      repo.ResultRepo
	log       *log.Helper
}

// NewSubmitUseCase 创建提交业务逻辑实例
func NewSubmitUseCase(v Validator, repo repo.ResultRepo, logger log.Logger) *SubmitUseCase {
	return &SubmitUseCase{validator: v, repo: repo, log: log.NewHelper(logger)}
}

// Submit 调用验证服务并保存结果，返回交接 token
func (uc *SubmitUseCase) Submit(ctx context.Context, idea string) (string, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return "", ErrEmptyIdea
	}

	result, err := uc.validator.Validate(ctx, idea)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("验证失败: %v", err)
		return "", err
	}
	return uc.repo.Put(ctx, result)
}

// Result 读取并作废 token 对应的结果
func (uc *SubmitUseCase) Result(ctx context.Context, token string) (*domain.ResultView, error) {
	if token == "" {
		return nil, ErrNoResult
	}
	result, err := uc.repo.Consume(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrResultNotFound) || errors.Is(err, repo.ErrResultConsumed) {
			return nil, ErrNoResult
		}
		return nil, err
	}
	if result == nil {
		return nil, ErrNoResult
	}
	return domain.NewResultView(result), nil
}
