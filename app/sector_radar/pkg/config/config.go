package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Export      ExportConfig      `yaml:"export"`
}

// LLMConfig LLM 相关配置，凭证只从环境变量读取
type LLMConfig struct {
	Provider   string `yaml:"provider"` // gemini or openai
	BaseURL    string `yaml:"base_url"` // 仅 openai 兼容接口使用
	Model      string `yaml:"model"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Structured bool   `yaml:"structured"`
}

// DBConfig 数据库相关配置，Host 为空时不归档
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 模型调用限流配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// ExportConfig 导出文件配置
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// ApplyDefaults 填充未配置的默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.APIKeyEnv == "" {
		switch c.LLM.Provider {
		case "openai":
			c.LLM.APIKeyEnv = "OPENAI_API_KEY"
		default:
			c.LLM.APIKeyEnv = "GEMINI_API_KEY"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 15
	}
	if c.DB.Port == 0 {
		c.DB.Port = 5432
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = "output"
	}
}
