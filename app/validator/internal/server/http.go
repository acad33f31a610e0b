package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/saas_validator/app/common/httperr"
	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/validator/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.ValidatorService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.ErrorEncoder(httperr.ErrorEncoder),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)
	registerValidatorHTTPServer(srv, s)
	srv.Handle("/metrics", metrics.Handler())
	return srv
}

func registerValidatorHTTPServer(srv *http.Server, s *service.ValidatorService) {
	r := srv.Route("/")
	r.POST("/validate", validateHandler(s))
	r.POST("/validate/batch", validateBatchHandler(s))
	r.GET("/health", func(ctx http.Context) error {
		return ctx.JSON(200, s.Health(ctx))
	})
	r.GET("/", func(ctx http.Context) error {
		return ctx.JSON(200, s.Index(ctx))
	})
}

func validateHandler(s *service.ValidatorService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.ValidateRequest
		if err := ctx.Bind(&in); err != nil {
			return errors.BadRequest("INVALID_ARGUMENT", "invalid request body")
		}
		http.SetOperation(ctx, "/validate")
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.Validate(ctx, req.(*service.ValidateRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.JSON(200, out)
	}
}

func validateBatchHandler(s *service.ValidatorService) http.HandlerFunc {
	return func(ctx http.Context) error {
		var in service.BatchRequest
		if err := ctx.Bind(&in); err != nil {
			return errors.BadRequest("INVALID_ARGUMENT", "invalid request body")
		}
		http.SetOperation(ctx, "/validate/batch")
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.ValidateBatch(ctx, req.(*service.BatchRequest))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		return ctx.JSON(200, out)
	}
}
