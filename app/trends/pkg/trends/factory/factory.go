package factory

import (
	"fmt"
	"os"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/mock"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/serpapi"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
)

// Config 后端选择配置
type Config struct {
	Backend    string // mock | serpapi，为空时使用 mock
	MockPoints int
	SerpAPI    SerpAPIConfig
}

// SerpAPIConfig SerpApi 后端配置
type SerpAPIConfig struct {
	APIKey     string
	BaseURL    string
	MaxRetries int
}

// NewProvider 根据配置创建趋势后端
func NewProvider(cfg Config) (trends.Provider, error) {
	switch cfg.Backend {
	case "", mock.Backend:
		var opts []mock.Option
		if cfg.MockPoints > 0 {
			opts = append(opts, mock.WithPoints(cfg.MockPoints))
		}
		return mock.NewGenerator(opts...), nil

	case serpapi.Backend:
		apiKey := cfg.SerpAPI.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("SERPAPI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("serpapi api key is missing")
		}
		var opts []serpapi.Option
		if cfg.SerpAPI.BaseURL != "" {
			opts = append(opts, serpapi.WithBaseURL(cfg.SerpAPI.BaseURL))
		}
		if cfg.SerpAPI.MaxRetries > 0 {
			opts = append(opts, serpapi.WithMaxRetries(cfg.SerpAPI.MaxRetries))
		}
		return serpapi.NewClient(apiKey, opts...), nil

	default:
		return nil, fmt.Errorf("unknown trends backend: %s", cfg.Backend)
	}
}
