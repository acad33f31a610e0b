package main

import (
	"flag"
	"os"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/config"
	"github.com/go-kratos/kratos/v2/config/file"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/saas_validator/app/trends/internal/conf"
	"github.com/iWorld-y/saas_validator/app/trends/internal/server"
	"github.com/iWorld-y/saas_validator/app/trends/internal/service"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends/factory"
)

// go build -ldflags "-X main.Version=x.y.z"
var (
	// Name 是服务的名称
	Name string = "trends"
	// Version 是服务的版本号
	Version string = "1.0.0"
	// flagconf 是配置文件的路径命令行参数
	flagconf string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "app/trends/configs/config.yaml", "config path, eg: -conf config.yaml")
}

func newApp(logger log.Logger, hs *http.Server) *kratos.App {
	return kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Version(Version),
		kratos.Metadata(map[string]string{}),
		kratos.Logger(logger),
		kratos.Server(hs),
	)
}

func main() {
	flag.Parse()
	logger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
		"service.version", Version,
	)

	c := config.New(
		config.WithSource(
			file.NewSource(flagconf),
		),
	)
	defer c.Close()

	if err := c.Load(); err != nil {
		panic(err)
	}

	var bc conf.Bootstrap
	if err := c.Scan(&bc); err != nil {
		panic(err)
	}

	fc := factory.Config{}
	if bc.Trends != nil {
		fc.Backend = bc.Trends.Backend
		fc.MockPoints = int(bc.Trends.MockPoints)
		if bc.Trends.Serpapi != nil {
			fc.SerpAPI = factory.SerpAPIConfig{
				APIKey:     bc.Trends.Serpapi.ApiKey,
				BaseURL:    bc.Trends.Serpapi.BaseUrl,
				MaxRetries: int(bc.Trends.Serpapi.MaxRetries),
			}
		}
	}
	// 环境变量优先于配置文件
	if backend := os.Getenv("TRENDS_BACKEND"); backend != "" {
		fc.Backend = backend
	}

	provider, err := factory.NewProvider(fc)
	if err != nil {
		panic(err)
	}
	log.NewHelper(logger).Infof("趋势后端: %s", fc.Backend)

	svc := service.NewTrendsService(provider, fc.Backend, Version, logger)
	app := newApp(logger, server.NewHTTPServer(bc.Server, svc, logger))
	if err := app.Run(); err != nil {
		panic(err)
	}
}
