package server

import (
	"embed"
	"html/template"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/saas_validator/app/common/metrics"
	"github.com/iWorld-y/saas_validator/app/display/internal/conf"
	"github.com/iWorld-y/saas_validator/app/display/internal/domain"
	"github.com/iWorld-y/saas_validator/app/display/internal/service"
)

//go:embed assets/*
var assets embed.FS

var pages = template.Must(template.ParseFS(assets, "assets/*.html"))

type indexPage struct {
	Query   string
	Message string
}

type resultsPage struct {
	Result *domain.ResultView
}

func NewHTTPServer(c *conf.Server, s *service.DisplayService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
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
	h := log.NewHelper(logger)

	render := func(w nethttp.ResponseWriter, status int, name string, data any) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(status)
		if err := pages.ExecuteTemplate(w, name, data); err != nil {
			h.Errorf("render %s failed: %v", name, err)
		}
	}

	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		render(w, nethttp.StatusOK, "index.html", indexPage{})
	})

	srv.HandleFunc("/submit", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
			return
		}
		idea := r.PostFormValue("query")
		token, msg := s.Submit(r.Context(), idea)
		if msg != "" {
			status := nethttp.StatusBadGateway
			if msg == service.MsgEmptyIdea {
				status = nethttp.StatusBadRequest
			}
			render(w, status, "index.html", indexPage{Query: idea, Message: msg})
			return
		}
		nethttp.Redirect(w, r, "/results?token="+url.QueryEscape(token), nethttp.StatusSeeOther)
	})

	srv.HandleFunc("/results", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		view, ok := s.Result(r.Context(), r.URL.Query().Get("token"))
		if !ok {
			render(w, nethttp.StatusOK, "results.html", resultsPage{})
			return
		}
		render(w, nethttp.StatusOK, "results.html", resultsPage{Result: view})
	})

	srv.Handle("/metrics", metrics.Handler())
	return srv
}
