package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 主配置结构
type Config struct {
	// 数据源配置
	Source SourceConfig `mapstructure:"source" json:"source"`

	// 新闻查询配置
	News NewsConfig `mapstructure:"news" json:"news"`

	// HTTP API 服务配置
	Server ServerConfig `mapstructure:"server" json:"server"`

	// 日志配置
	Logger LoggerConfig `mapstructure:"logger" json:"logger"`
}

// SourceConfig 上游数据源配置
type SourceConfig struct {
	Timeout    time.Duration `mapstructure:"timeout" json:"timeout"`         // 单次请求超时时间
	MaxRetries int           `mapstructure:"max_retries" json:"max_retries"` // 最大重试次数
	RateLimit  time.Duration `mapstructure:"rate_limit" json:"rate_limit"`   // 请求间隔限制
	UserAgent  string        `mapstructure:"user_agent" json:"user_agent"`   // 用户代理
}

// NewsConfig 新闻查询配置
type NewsConfig struct {
	DefaultWindowDays int `mapstructure:"default_window_days" json:"default_window_days"` // 未指定日期时的默认回溯天数
}

// ServerConfig HTTP API 服务配置
type ServerConfig struct {
	Port string `mapstructure:"port" json:"port"` // 监听端口
	Mode string `mapstructure:"mode" json:"mode"` // debug, release, test
}

// LoggerConfig 日志配置
type LoggerConfig struct {
	Level  string `mapstructure:"level" json:"level"`   // 日志级别 (debug, info, warn, error)
	Format string `mapstructure:"format" json:"format"` // 日志格式 (text, json)
}

// Default 返回默认配置
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Timeout:    15 * time.Second,
			MaxRetries: 0,
			RateLimit:  200 * time.Millisecond,
			UserAgent:  "AStock/1.0",
		},
		News: NewsConfig{
			DefaultWindowDays: 7,
		},
		Server: ServerConfig{
			Port: "8080",
			Mode: "release",
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Source.Timeout <= 0 {
		return errors.New("source timeout must be positive")
	}

	if c.Source.MaxRetries < 0 {
		return errors.New("source max_retries cannot be negative")
	}

	if c.Source.RateLimit < 0 {
		return errors.New("source rate_limit cannot be negative")
	}

	if c.News.DefaultWindowDays <= 0 {
		return errors.New("news default_window_days must be positive")
	}

	if c.Server.Port == "" {
		return errors.New("server port cannot be empty")
	}

	return nil
}

// Load 从配置文件与环境变量加载配置
// path 为空时在 ./config 和当前目录中查找 astock.yaml
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("astock")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	def := Default()
	v.SetDefault("source.timeout", def.Source.Timeout)
	v.SetDefault("source.max_retries", def.Source.MaxRetries)
	v.SetDefault("source.rate_limit", def.Source.RateLimit)
	v.SetDefault("source.user_agent", def.Source.UserAgent)
	v.SetDefault("news.default_window_days", def.News.DefaultWindowDays)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.mode", def.Server.Mode)
	v.SetDefault("logger.level", def.Logger.Level)
	v.SetDefault("logger.format", def.Logger.Format)

	v.SetEnvPrefix("ASTOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
