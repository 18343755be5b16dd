package repo

import (
	"context"

	"github.com/iWorld-y/sector_radar/app/display/internal/domain"
)

// HistoryRepo 分析历史仓库接口
type HistoryRepo interface {
	// ListRuns 按时间倒序获取最近的分析摘要
	ListRuns(ctx context.Context, limit int) ([]*domain.RunSummary, error)
	// GetRun 根据ID获取归档的分析结果
	GetRun(ctx context.Context, id int) (*domain.Run, error)
}
