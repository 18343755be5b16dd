package factory

import (
	"fmt"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm/gemini"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm/openai"
)

// NewGenerator 根据配置创建模型客户端。凭证在每次调用时读取，这里不做检查。
func NewGenerator(cfg *config.Config) (llm.Generator, error) {
	provider := cfg.LLM.Provider
	if provider == "" {
		provider = "gemini"
	}

	switch provider {
	case "gemini":
		return gemini.NewClient(gemini.Config{
			Model:      cfg.LLM.Model,
			APIKeyEnv:  cfg.LLM.APIKeyEnv,
			Structured: cfg.LLM.Structured,
		}), nil

	case "openai":
		if cfg.LLM.Model == "" {
			return nil, fmt.Errorf("openai model is missing")
		}
		if cfg.LLM.Structured {
			return nil, fmt.Errorf("structured output is only supported by the gemini provider")
		}
		return openai.NewClient(openai.Config{
			BaseURL:   cfg.LLM.BaseURL,
			Model:     cfg.LLM.Model,
			APIKeyEnv: cfg.LLM.APIKeyEnv,
		}), nil

	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
