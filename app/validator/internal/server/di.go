package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/saas_validator/app/validator/internal/service"
	"github.com/iWorld-y/saas_validator/app/validator/internal/usecase"
)

// ProviderSet 是验证服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGRPCServer,
	NewHealthServer,

	// Engine providers
	NewEngineConfig,
	NewTrendsClient,
	NewValidationEngine,
	NewValidator,
	NewTrendsHealth,

	// UseCase providers
	usecase.NewValidationUseCase,

	// Service providers
	service.NewValidatorService,
)
