package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/engine"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/export"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm/factory"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/logger"
	dm "github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/render"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/storage"
)

var (
	flagconf   string
	flagSector string
	flagOut    string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagSector, "sector", "", "economic sector to analyze, eg: -sector Agricultura")
	flag.StringVar(&flagOut, "out", "", "output directory, overrides export.output_dir")
}

func main() {
	flag.Parse()

	// .env 不存在时忽略，凭证也可以直接来自环境变量
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("无法加载 .env: %v", err)
	}

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if flagOut != "" {
		cfg.Export.OutputDir = flagOut
	}

	// 2. 初始化日志
	if err = logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动 Foresight 行业雷达...")

	ctx := context.Background()

	// 3. 初始化数据库连接，未配置时跳过
	var archive engine.Archive
	if cfg.DB.Host != "" {
		s, err := storage.NewStorage(cfg.DB)
		if err != nil {
			logger.Log.Errorf("无法连接数据库: %v. 将仅生成报告文件。", err)
		} else {
			defer s.Close()
			archive = s
			logger.Log.Info("已成功连接到数据库")
		}
	} else {
		logger.Log.Info("未配置数据库信息，跳过数据库连接")
	}

	// 4. 初始化模型客户端
	generator, err := factory.NewGenerator(cfg)
	if err != nil {
		logger.Log.Fatalf("模型客户端初始化失败: %v", err)
	}

	eng := engine.NewEngine(cfg, generator, archive)

	// 5. 执行分析
	result, err := eng.Run(ctx, engine.RunOptions{
		Sector: flagSector,
		ProgressCallback: func(status string, progress int) {
			logger.Log.Debugf("进度 %d%%: %s", progress, status)
		},
	})
	if err != nil {
		logger.Log.Fatalf("分析失败: %s", errs.Message(err))
	}

	// 6. 写出纯文本报告和 HTML
	sector := strings.TrimSpace(flagSector)
	now := time.Now()
	if err := writeReports(cfg.Export.OutputDir, sector, result, now); err != nil {
		logger.Log.Fatalf("生成报告失败: %v", err)
	}
	logger.Log.Infof("✅ 行业 [%s] 分析报告生成完毕: %s", sector, cfg.Export.OutputDir)
}

// writeReports 在 dir 下写出导出文本和 index.html
func writeReports(dir, sector string, result *dm.SearchResult, now time.Time) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	txtPath := filepath.Join(dir, export.FileName(sector, now))
	if err := os.WriteFile(txtPath, []byte(export.Document(result, sector, now)), 0o644); err != nil {
		return err
	}
	logger.Log.Infof("已导出: %s", txtPath)

	f, err := os.Create(filepath.Join(dir, "index.html"))
	if err != nil {
		return err
	}
	defer f.Close()

	return render.Page(f, render.PageData{
		Date:      now.Format("02/01/2006"),
		Sector:    sector,
		ExportURL: filepath.Base(txtPath),
		Result:    result,
	})
}
