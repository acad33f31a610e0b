package service

import (
	"context"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/validator/internal/usecase"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/model"
)

// MaxBatchSize 单次批量验证的最大想法个数
const MaxBatchSize = 20

// ValidateRequest POST /validate 请求体
type ValidateRequest struct {
	Query         string `json:"query"`
	IncludeTrends *bool  `json:"include_trends,omitempty"`
	MaxQueries    int    `json:"max_queries,omitempty"`
}

// BatchRequest POST /validate/batch 请求体
type BatchRequest struct {
	Queries       []string `json:"queries"`
	IncludeTrends *bool    `json:"include_trends,omitempty"`
}

// IndexReply 服务信息
type IndexReply struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type ValidatorService struct {
	uc      *usecase.ValidationUseCase
	version string
	log     *log.Helper
}

func NewValidatorService(uc *usecase.ValidationUseCase, version Version, logger log.Logger) *ValidatorService {
	return &ValidatorService{uc: uc, version: string(version), log: log.NewHelper(logger)}
}

// Version 服务版本号，由 main 注入
type Version string

func (s *ValidatorService) Validate(ctx context.Context, req *ValidateRequest) (*model.ValidationResult, error) {
	res, err := s.uc.Validate(ctx, req.Query, model.Options{IncludeTrends: req.IncludeTrends, MaxQueries: req.MaxQueries})
	if err != nil {
		return nil, toAPIError(err)
	}
	return res, nil
}

func (s *ValidatorService) ValidateBatch(ctx context.Context, req *BatchRequest) (*model.BatchResult, error) {
	if len(req.Queries) > MaxBatchSize {
		return nil, errors.BadRequest("INVALID_ARGUMENT", "too many queries in one batch")
	}
	res, err := s.uc.ValidateBatch(ctx, req.Queries, model.Options{IncludeTrends: req.IncludeTrends})
	if err != nil {
		return nil, toAPIError(err)
	}
	return res, nil
}

func (s *ValidatorService) Health(ctx context.Context) *usecase.HealthStatus {
	return s.uc.Health(ctx)
}

func (s *ValidatorService) Index(_ context.Context) *IndexReply {
	return &IndexReply{Message: "SaaS Validator Agent API", Version: s.version, Status: "running"}
}

func toAPIError(err error) error {
	if stderrors.Is(err, trends.ErrInvalidArgument) {
		return errors.BadRequest("INVALID_ARGUMENT", err.Error())
	}
	return errors.InternalServer("INTERNAL", err.Error())
}
