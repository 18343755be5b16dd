package server

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sector_radar/app/display/internal/conf"
	"github.com/iWorld-y/sector_radar/app/display/internal/data"
	"github.com/iWorld-y/sector_radar/app/display/internal/repo"
	"github.com/iWorld-y/sector_radar/app/display/internal/usecase"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/engine"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm/factory"
	srLogger "github.com/iWorld-y/sector_radar/app/sector_radar/pkg/logger"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/state"
)

// NewRadarConfig 将 internal/conf.Radar 转换为 pkg/config.Config
func NewRadarConfig(c *conf.Radar) *config.Config {
	cfg := &config.Config{}
	if c != nil {
		if c.Llm != nil {
			cfg.LLM = config.LLMConfig{
				Provider:   c.Llm.Provider,
				BaseURL:    c.Llm.BaseUrl,
				Model:      c.Llm.Model,
				APIKeyEnv:  c.Llm.ApiKeyEnv,
				Structured: c.Llm.Structured,
			}
		}
		if c.Log != nil {
			cfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
		}
		if c.Concurrency != nil {
			cfg.Concurrency = config.ConcurrencyConfig{
				QPS: int(c.Concurrency.Qps),
				RPM: int(c.Concurrency.Rpm),
			}
		}
		if c.Db != nil {
			cfg.DB = config.DBConfig{
				Host:     c.Db.Host,
				Port:     int(c.Db.Port),
				User:     c.Db.User,
				Password: c.Db.Password,
				Name:     c.Db.Name,
			}
		}
	}
	cfg.ApplyDefaults()
	return cfg
}

// NewRadarEngine 初始化分析引擎
func NewRadarEngine(cfg *config.Config, d *data.Data, logger log.Logger) (*engine.Engine, func(), error) {
	helper := log.NewHelper(logger)

	// 初始化日志
	if err := srLogger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		helper.Errorf("Failed to init sector_radar logger: %v", err)
		_ = srLogger.InitLogger("info", "") // 降级处理
	}

	generator, err := factory.NewGenerator(cfg)
	if err != nil {
		helper.Errorf("Failed to init model client: %v", err)
		return nil, nil, err
	}

	eng := engine.NewEngine(cfg, generator, d.Archive())
	helper.Infof("sector radar engine ready (provider=%s, structured=%v)", cfg.LLM.Provider, cfg.LLM.Structured)

	cleanup := func() {
		helper.Info("Cleaning up sector_radar engine")
	}
	return eng, cleanup, nil
}

// NewAnalysisUseCase 创建分析业务逻辑，并应用历史条数配置
func NewAnalysisUseCase(c *conf.Radar, runner usecase.Runner, store *state.Store, history repo.HistoryRepo, logger log.Logger) *usecase.AnalysisUseCase {
	uc := usecase.NewAnalysisUseCase(runner, store, history, logger)
	if c != nil {
		uc.SetHistoryLimit(int(c.HistoryLimit))
	}
	return uc
}
