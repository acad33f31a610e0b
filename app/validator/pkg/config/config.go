package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config 验证引擎配置
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Trends      TrendsConfig      `yaml:"trends"`
	Engine      EngineConfig      `yaml:"engine"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// TrendsConfig 趋势服务配置
type TrendsConfig struct {
	URL     string `yaml:"url"`
	Timeout int    `yaml:"timeout"` // 秒
}

// EngineConfig 编排参数
type EngineConfig struct {
	SynthesisTimeout int `yaml:"synthesis_timeout"` // 秒，默认 30
	MaxRetries       int `yaml:"max_retries"`       // 模型调用重试次数，默认 3
	BatchParallelism int `yaml:"batch_parallelism"` // 批量验证并发数，默认 4
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置，并应用环境变量覆盖
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv()
	cfg.ApplyDefaults()
	return &cfg, nil
}

// LoadDotEnv 加载 .env 文件，文件不存在时忽略
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// ApplyEnv 环境变量优先于配置文件
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	} else if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("GOOGLE_TRENDS_API_URL"); v != "" {
		c.Trends.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v, err := strconv.Atoi(os.Getenv("SYNTHESIS_TIMEOUT")); err == nil && v > 0 {
		c.Engine.SynthesisTimeout = v
	}
}

// ApplyDefaults 填充默认值
func (c *Config) ApplyDefaults() {
	if c.Trends.URL == "" {
		c.Trends.URL = "http://localhost:3001"
	}
	if c.Trends.Timeout <= 0 {
		c.Trends.Timeout = 30
	}
	if c.Engine.SynthesisTimeout <= 0 {
		c.Engine.SynthesisTimeout = 30
	}
	if c.Engine.MaxRetries <= 0 {
		c.Engine.MaxRetries = 3
	}
	if c.Engine.BatchParallelism <= 0 {
		c.Engine.BatchParallelism = 4
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 60
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 2
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
