package data

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/sector_radar/app/display/internal/domain"
	"github.com/iWorld-y/sector_radar/app/display/internal/repo"
)

type historyRepo struct {
	data *Data
	log  *log.Helper
}

func NewHistoryRepo(data *Data, logger log.Logger) repo.HistoryRepo {
	return &historyRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *historyRepo) ListRuns(ctx context.Context, limit int) ([]*domain.RunSummary, error) {
	if r.data.store == nil {
		return []*domain.RunSummary{}, nil
	}

	runs, err := r.data.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, &domain.RunSummary{
			ID:     run.ID,
			Sector: run.Sector,
			Date:   run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return summaries, nil
}

func (r *historyRepo) GetRun(ctx context.Context, id int) (*domain.Run, error) {
	if r.data.store == nil {
		return nil, errors.NotFound("RUN_NOT_FOUND", "run not found")
	}

	sector, result, err := r.data.store.GetRun(ctx, id)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("RUN_NOT_FOUND", "run not found")
		}
		return nil, err
	}
	return &domain.Run{ID: id, Sector: sector, Result: result}, nil
}
