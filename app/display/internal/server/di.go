package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/saas_validator/app/display/internal/client"
	"github.com/iWorld-y/saas_validator/app/display/internal/data"
	"github.com/iWorld-y/saas_validator/app/display/internal/service"
	"github.com/iWorld-y/saas_validator/app/display/internal/usecase"
)

// ProviderSet 是展示服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,

	// Client providers
	client.NewValidatorClient,
	wire.Bind(new(usecase.Validator), new(*client.ValidatorClient)),

	// Data providers
	data.NewData,
	data.NewResultRepo,

	// UseCase providers
	usecase.NewSubmitUseCase,

	// Service providers
	service.NewDisplayService,
)
