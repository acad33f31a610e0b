package server

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/ratelimit"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/saas_validator/app/common/httperr"
	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/trends/internal/conf"
	"github.com/iWorld-y/saas_validator/app/trends/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.TrendsService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
			ratelimit.Server(),
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
	registerTrendsHTTPServer(srv, s)
	srv.Handle("/metrics", metrics.Handler())
	return srv
}

func registerTrendsHTTPServer(srv *http.Server, s *service.TrendsService) {
	r := srv.Route("/")
	r.GET("/api/trends", getTrendsHandler(s))
	r.GET("/api/health", func(ctx http.Context) error {
		return ctx.JSON(200, s.Health(ctx))
	})
	r.GET("/", func(ctx http.Context) error {
		return ctx.JSON(200, s.Index(ctx))
	})
}

func getTrendsHandler(s *service.TrendsService) http.HandlerFunc {
	return func(ctx http.Context) error {
		q := ctx.Query()
		in := &service.TrendsRequest{Keywords: q.Get("keywords"), Date: q.Get("date")}
		http.SetOperation(ctx, "/api/trends")
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return s.GetTrends(ctx, req.(*service.TrendsRequest))
		})
		out, err := h(ctx, in)
		if err != nil {
			return err
		}
		return ctx.JSON(200, out)
	}
}
