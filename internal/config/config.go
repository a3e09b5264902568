package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	HTTP       HTTPConfig
	Backend    BackendConfig
	Log        LogConfig
	Monitoring MonitoringConfig
}

// HTTPConfig 控制台 HTTP 服务配置
type HTTPConfig struct {
	Addr string
}

// BackendConfig 研究助手后端配置
type BackendConfig struct {
	URL     string
	Timeout time.Duration
}

// LogConfig 日志配置
type LogConfig struct {
	Level      string
	Production bool
}

// MonitoringConfig 监控配置
type MonitoringConfig struct {
	Enabled bool
}

// Load 加载配置
func Load() (*Config, error) {
	v := viper.New()

	// 设置配置文件名和路径
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")
	v.AddConfigPath("../..")

	// 允许从环境变量读取（优先级最高）
	v.AutomaticEnv()

	// 读取配置文件（如果存在）
	_ = v.ReadInConfig() // 忽略错误，因为可能只使用环境变量

	cfg := &Config{}

	// HTTP 配置
	cfg.HTTP.Addr = v.GetString("HTTP_ADDR")
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":27080"
	}

	// 后端配置
	cfg.Backend.URL = strings.TrimRight(v.GetString("BACKEND_URL"), "/")
	if cfg.Backend.URL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required")
	}

	cfg.Backend.Timeout = v.GetDuration("BACKEND_TIMEOUT")
	if cfg.Backend.Timeout == 0 {
		cfg.Backend.Timeout = 30 * time.Second
	}

	// 日志配置
	cfg.Log.Level = v.GetString("LOG_LEVEL")
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Production = v.GetBool("LOG_PRODUCTION")

	// 监控配置
	cfg.Monitoring.Enabled = v.GetBool("MONITORING_ENABLED")

	return cfg, nil
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("backend URL is required")
	}
	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		return fmt.Errorf("backend URL must start with http:// or https://")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("HTTP address is required")
	}
	return nil
}
