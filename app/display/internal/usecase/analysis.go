package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sector_radar/app/display/internal/domain"
	"github.com/iWorld-y/sector_radar/app/display/internal/repo"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/engine"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/export"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/state"
)

const defaultHistoryLimit = 10

// Runner 执行一次行业分析，由 engine.Engine 实现
type Runner interface {
	Run(ctx context.Context, opts engine.RunOptions) (*model.SearchResult, error)
}

// AnalysisUseCase 分析业务逻辑。同一时间只有一个分析在进行，结果保存在 state.Store 中。
type AnalysisUseCase struct {
	runner       Runner
	store        *state.Store
	history      repo.HistoryRepo
	historyLimit int
	log          *log.Helper
	now          func() time.Time
}

// NewAnalysisUseCase 创建分析业务逻辑实例
func NewAnalysisUseCase(runner Runner, store *state.Store, history repo.HistoryRepo, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		runner:       runner,
		store:        store,
		history:      history,
		historyLimit: defaultHistoryLimit,
		log:          log.NewHelper(logger),
		now:          time.Now,
	}
}

// SetHistoryLimit 设置历史列表的条数
func (uc *AnalysisUseCase) SetHistoryLimit(limit int) {
	if limit > 0 {
		uc.historyLimit = limit
	}
}

// Search 同步执行分析并返回结果。已有分析在进行时返回 Busy。
func (uc *AnalysisUseCase) Search(ctx context.Context, sector string) (*model.SearchResult, error) {
	sector = strings.TrimSpace(sector)
	if err := uc.store.Begin(sector); err != nil {
		return nil, err
	}
	return uc.run(context.WithoutCancel(ctx), sector)
}

// Start 在后台执行分析，立即返回。请求结束不会取消模型调用。
func (uc *AnalysisUseCase) Start(ctx context.Context, sector string) error {
	sector = strings.TrimSpace(sector)
	if err := uc.store.Begin(sector); err != nil {
		return err
	}
	go uc.run(context.WithoutCancel(ctx), sector)
	return nil
}

func (uc *AnalysisUseCase) run(ctx context.Context, sector string) (*model.SearchResult, error) {
	result, err := uc.runner.Run(ctx, engine.RunOptions{Sector: sector})
	uc.store.Settle(result, err)
	if err != nil {
		uc.log.Warnf("analysis for sector %q failed: %v", sector, err)
		return nil, errs.Normalize(err)
	}
	return result, nil
}

// State 返回当前状态
func (uc *AnalysisUseCase) State() state.Snapshot {
	return uc.store.Snapshot()
}

// Export 返回当前结果的导出文件名和内容，没有成功的结果时返回 NotFound
func (uc *AnalysisUseCase) Export() (string, string, error) {
	snap := uc.store.Snapshot()
	if snap.Phase != state.Settled || snap.Result == nil {
		return "", "", errors.NotFound("RESULT_NOT_FOUND", "no result to export")
	}
	at := snap.SettledAt
	if at.IsZero() {
		at = uc.now()
	}
	return export.FileName(snap.Sector, at), export.Document(snap.Result, snap.Sector, at), nil
}

// History 列出最近的归档分析
func (uc *AnalysisUseCase) History(ctx context.Context) ([]*domain.RunSummary, error) {
	return uc.history.ListRuns(ctx, uc.historyLimit)
}

// GetRun 读取一次归档的分析
func (uc *AnalysisUseCase) GetRun(ctx context.Context, id int) (*domain.Run, error) {
	return uc.history.GetRun(ctx, id)
}
