package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/remote"
	"github.com/iWorld-y/saas_validator/app/validator/internal/conf"
	"github.com/iWorld-y/saas_validator/app/validator/internal/usecase"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/config"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/engine"
	vlogger "github.com/iWorld-y/saas_validator/app/validator/pkg/logger"
)

// NewEngineConfig 将 internal/conf.Validator 转换为 pkg/config.Config，并应用环境变量
func NewEngineConfig(c *conf.Validator) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{BaseURL: c.Llm.BaseUrl, APIKey: c.Llm.ApiKey, Model: c.Llm.Model}
		}
		if c.Trends != nil {
			cfg.Trends = config.TrendsConfig{URL: c.Trends.Url, Timeout: int(c.Trends.Timeout)}
		}
		if c.Engine != nil {
			cfg.Engine = config.EngineConfig{
				SynthesisTimeout: int(c.Engine.SynthesisTimeout),
				MaxRetries:       int(c.Engine.MaxRetries),
				BatchParallelism: int(c.Engine.BatchParallelism),
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{QPS: int(c.Concurrency.Qps), RPM: int(c.Concurrency.Rpm)}
		}
	}
	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return cfg
}

// NewTrendsClient 趋势服务 HTTP 客户端
func NewTrendsClient(cfg *config.Config) *remote.Client {
	return remote.NewClient(cfg.Trends.URL, cfg.Trends.Timeout)
}

// NewValidationEngine 初始化日志与验证引擎
func NewValidationEngine(cfg *config.Config, tc *remote.Client, logger log.Logger) (*engine.Engine, func(), error) {
	if err := vlogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init validator logger: %v", err)
		_ = vlogger.InitLogger("info", "") // 降级处理
	}

	eng, err := engine.NewEngine(cfg, tc)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up validation engine")
	}
	return eng, cleanup, nil
}

// NewValidator 以接口形式暴露引擎
func NewValidator(e *engine.Engine) usecase.Validator { return e }

// NewTrendsHealth 以接口形式暴露趋势服务健康检查
func NewTrendsHealth(c *remote.Client) usecase.TrendsHealth { return c }
