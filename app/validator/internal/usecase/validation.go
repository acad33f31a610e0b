package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// Validator 验证引擎
type Validator interface {
	Validate(ctx context.Context, idea string, opts model.Options) *model.ValidationResult
	ValidateBatch(ctx context.Context, ideas []string, opts model.Options) *model.BatchResult
	Ready() bool
}

// TrendsHealth 趋势服务健康检查
type TrendsHealth interface {
	Health(ctx context.Context) bool
}

// HealthStatus 健康状态
type HealthStatus struct {
	Status                string `json:"status"`
	AgentReady            bool   `json:"agent_ready"`
	GoogleTrendsAvailable bool   `json:"google_trends_available"`
	Timestamp             string `json:"timestamp"`
}

// ValidationUseCase 验证业务逻辑
type ValidationUseCase struct {
	validator Validator
	trends    TrendsHealth
	now       func() time.Time
	log       *log.Helper
}

// NewValidationUseCase 创建验证业务逻辑实例
func NewValidationUseCase(v Validator, th TrendsHealth, logger log.Logger) *ValidationUseCase {
	return &ValidationUseCase{validator: v, trends: th, now: time.Now, log: log.NewHelper(logger)}
}

// Validate 验证单个想法；空查询返回 trends.ErrInvalidArgument
func (uc *ValidationUseCase) Validate(ctx context.Context, query string, opts model.Options) (*model.ValidationResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is required", trends.ErrInvalidArgument)
	}
	return uc.validator.Validate(ctx, query, opts), nil
}

// ValidateBatch 批量验证；空列表返回 trends.ErrInvalidArgument，空字符串作为失败项保留
func (uc *ValidationUseCase) ValidateBatch(ctx context.Context, queries []string, opts model.Options) (*model.BatchResult, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: queries must not be empty", trends.ErrInvalidArgument)
	}
	uc.log.WithContext(ctx).Infof("批量验证 %d 个想法", len(queries))
	return uc.validator.ValidateBatch(ctx, queries, opts), nil
}

// Health 探测引擎与趋势服务
func (uc *ValidationUseCase) Health(ctx context.Context) *HealthStatus {
	available := false
	if uc.trends != nil {
		available = uc.trends.Health(ctx)
	}
	return &HealthStatus{
		Status:                "healthy",
		AgentReady:            uc.validator != nil && uc.validator.Ready(),
		GoogleTrendsAvailable: available,
		Timestamp:             uc.now().UTC().Format(time.RFC3339),
	}
}

// Ready 引擎是否可用
func (uc *ValidationUseCase) Ready() bool {
	return uc.validator != nil && uc.validator.Ready()
}
