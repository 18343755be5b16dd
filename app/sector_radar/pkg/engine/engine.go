package engine

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/logger"
	dm "github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/prompt"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/segment"
)

// Archive 分析结果归档，未配置数据库时为 nil
type Archive interface {
	SaveRun(ctx context.Context, sector string, rawText string, result *dm.SearchResult) (int, error)
}

// Engine 核心处理引擎
type Engine struct {
	generator  llm.Generator
	archive    Archive
	limiter    *rate.Limiter
	titles     []string
	structured bool
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config, generator llm.Generator, archive Archive) *Engine {
	// 初始化限流器，未配置 RPM 时不限流
	limit := rate.Inf
	if cfg.Concurrency.RPM > 0 {
		limit = rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	}
	burst := cfg.Concurrency.QPS
	if burst < 1 {
		burst = 1
	}

	return &Engine{
		generator:  generator,
		archive:    archive,
		limiter:    rate.NewLimiter(limit, burst),
		titles:     dm.CategoryTitles(),
		structured: cfg.LLM.Structured,
	}
}

// RunOptions 运行选项
type RunOptions struct {
	Sector           string
	ProgressCallback func(status string, progress int)
}

// Run 执行一次行业分析
func (e *Engine) Run(ctx context.Context, opts RunOptions) (*dm.SearchResult, error) {
	sector := strings.TrimSpace(opts.Sector)
	if sector == "" {
		return nil, errs.Validation()
	}

	progress := func(status string, p int) {
		if opts.ProgressCallback != nil {
			opts.ProgressCallback(status, p)
		}
	}

	logger.Log.Infof("开始分析行业 [%s]", sector)
	progress("starting", 0)

	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	var text string
	if e.structured {
		text = prompt.BuildStructured(sector, e.titles)
	} else {
		text = prompt.Build(sector, e.titles)
	}
	progress("querying model", 10)

	gen, err := e.generator.Generate(ctx, text)
	if err != nil {
		logger.Log.Errorf("模型调用失败 [%s]: %v", sector, err)
		return nil, err
	}
	progress("segmenting response", 80)

	result := e.segment(gen)

	if e.archive != nil {
		if runID, err := e.archive.SaveRun(ctx, sector, gen.Text, result); err != nil {
			logger.Log.Errorf("保存分析结果失败 [%s]: %v", sector, err)
		} else {
			logger.Log.Infof("分析结果已归档 [%s] (run=%d)", sector, runID)
		}
	}

	progress("completed", 100)
	logger.Log.Infof("行业 [%s] 分析完成 (%d 个来源)", sector, len(result.Sources))
	return result, nil
}

// segment 结构化输出优先按 JSON 解析，失败时回退到按标题切分
func (e *Engine) segment(gen *llm.Generation) *dm.SearchResult {
	var result *dm.SearchResult
	if gen.Structured {
		if r, ok := segment.FromJSON(gen.Text, e.titles); ok {
			result = r
		} else {
			logger.Log.Warn("结构化输出解析失败，回退到按标题切分")
		}
	}
	if result == nil {
		result = segment.Segment(gen.Text, e.titles)
	}

	result.Sources = gen.Sources
	if result.Sources == nil {
		result.Sources = []dm.GroundingChunk{}
	}
	return result
}
