// Package cli 实现 saasctl 命令行：本地运行验证引擎、查询趋势并提供 MCP 服务
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iWorld-y/saas_validator/app/trends/pkg/remote"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends"
	"github.com/iWorld-y/saas_validator/app/trends/pkg/trends/factory"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/config"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/engine"
	"github.com/iWorld-y/saas_validator/app/validator/pkg/logger"
)

// 链接时通过 -ldflags 注入
var (
	version = "dev"
	commit  = "none"
)

// BackendRemote 通过 HTTP 访问独立部署的趋势服务
const BackendRemote = "remote"

var rootCtx = context.Background()

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "saasctl",
	Short: "Validate SaaS ideas against market trends from the command line.",
	Long: `saasctl runs the idea validation pipeline locally.

It derives search keywords from an idea, pulls interest over time from the
trends service, and asks the language model for scores, a verdict and
recommendations. The same capabilities are available to AI assistants
through the mcp subcommand.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute 执行根命令
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.saasctl.yaml or ./.saasctl.yaml)")
	pf.String("trends-url", "", "base URL of the trends service")
	pf.String("trends-backend", BackendRemote, "trends source: remote, mock or serpapi")
	pf.String("llm-base-url", "", "OpenAI compatible API base URL")
	pf.String("llm-model", "", "model name")
	pf.StringP("output", "o", "text", "output format: text or json")
	pf.String("log-level", "warn", "log level written to stderr")

	bind := map[string]string{
		"trends.url":     "trends-url",
		"trends.backend": "trends-backend",
		"llm.base-url":   "llm-base-url",
		"llm.model":      "llm-model",
		"output":         "output",
		"log.level":      "log-level",
	}
	for key, flag := range bind {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}

// initConfig 读取配置文件与 SAASCTL_* 环境变量
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".saasctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("SAASCTL")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// 让 AutomaticEnv 能找到未绑定 flag 的键
	for _, key := range []string{"trends.timeout", "trends.serpapi-key", "llm.api-key",
		"engine.synthesis-timeout", "engine.max-retries", "engine.batch-parallelism"} {
		viper.SetDefault(key, "")
	}
}

func setup(_ *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := config.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env failed: %w", err)
	}

	level, err := logrus.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q", viper.GetString("log.level"))
	}
	logger.Log.SetLevel(level)

	switch out := viper.GetString("output"); out {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q: want text or json", out)
	}
	return nil
}

// engineConfig 合并通用环境变量与 saasctl 自身配置，后者优先
func engineConfig() *config.Config {
	cfg := &config.Config{}
	cfg.ApplyEnv()

	if v := viper.GetString("llm.base-url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetString("llm.api-key"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := viper.GetString("llm.model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("trends.url"); v != "" {
		cfg.Trends.URL = v
	}
	ints := map[string]*int{
		"trends.timeout":           &cfg.Trends.Timeout,
		"engine.synthesis-timeout": &cfg.Engine.SynthesisTimeout,
		"engine.max-retries":       &cfg.Engine.MaxRetries,
		"engine.batch-parallelism": &cfg.Engine.BatchParallelism,
	}
	for key, dst := range ints {
		if v := viper.GetInt(key); v > 0 {
			*dst = v
		}
	}

	cfg.ApplyDefaults()
	return cfg
}

// newProvider 按 trends.backend 选择趋势来源
func newProvider(cfg *config.Config) (trends.Provider, error) {
	backend := viper.GetString("trends.backend")
	if backend == "" || backend == BackendRemote {
		return remote.NewClient(cfg.Trends.URL, cfg.Trends.Timeout), nil
	}
	return factory.NewProvider(factory.Config{
		Backend: backend,
		SerpAPI: factory.SerpAPIConfig{APIKey: viper.GetString("trends.serpapi-key")},
	})
}

func newEngine() (*engine.Engine, trends.Provider, error) {
	cfg := engineConfig()
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, nil, err
	}
	e, err := engine.NewEngine(cfg, provider)
	if err != nil {
		return nil, nil, err
	}
	return e, provider, nil
}
