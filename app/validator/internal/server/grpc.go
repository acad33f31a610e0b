package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/iWorld-y/saas_validator/app/validator/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/internal/usecase"
)

// ServiceName gRPC 健康检查使用的服务名
const ServiceName = "saas_validator.Validator"

// NewHealthServer 标准 grpc.health.v1 服务，状态跟随引擎是否就绪
func NewHealthServer(uc *usecase.ValidationUseCase) *health.Server {
	hs := health.NewServer()
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if uc.Ready() {
		status = healthpb.HealthCheckResponse_SERVING
	}
	hs.SetServingStatus("", status)
	hs.SetServingStatus(ServiceName, status)
	return hs
}

func NewGRPCServer(c *conf.Server, hs *health.Server, logger log.Logger) *grpc.Server {
	var opts = []grpc.ServerOption{
		grpc.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		grpc.CustomHealth(),
	}
	if c != nil && c.Grpc != nil {
		if c.Grpc.Addr != "" {
			opts = append(opts, grpc.Address(c.Grpc.Addr))
		}
		if c.Grpc.Timeout != "" {
			if d, err := time.ParseDuration(c.Grpc.Timeout); err == nil {
				opts = append(opts, grpc.Timeout(d))
			}
		}
	}
	srv := grpc.NewServer(opts...)
	healthpb.RegisterHealthServer(srv, hs)
	return srv
}
