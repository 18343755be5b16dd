package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/config"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

// Storage 分析结果归档，只写入与浏览，不作为查询缓存
type Storage struct {
	db *sql.DB
}

// RunSummary 一次归档分析的摘要
type RunSummary struct {
	ID        int
	Sector    string
	CreatedAt time.Time
}

// New 包装已打开的连接，不初始化表结构
func New(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id SERIAL PRIMARY KEY,
			sector TEXT NOT NULL,
			raw_text TEXT,
			megatrends TEXT,
			future_vision TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS technology_categories (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			content TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS grounding_sources (
			id SERIAL PRIMARY KEY,
			run_id INTEGER REFERENCES analysis_runs(id),
			position INTEGER NOT NULL,
			uri TEXT,
			title TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}

	return nil
}

// SaveRun 在一个事务中保存分析结果及其分类与来源
func (s *Storage) SaveRun(ctx context.Context, sector string, rawText string, result *model.SearchResult) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var runID int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO analysis_runs (sector, raw_text, megatrends, future_vision)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		sector, sanitize(rawText), sanitize(result.Megatrends), sanitize(result.FutureVision)).Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	for i, cat := range result.Categories {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO technology_categories (run_id, position, title, content)
			VALUES ($1, $2, $3, $4)`,
			runID, i, cat.Title, sanitize(cat.Content))
		if err != nil {
			return 0, fmt.Errorf("failed to insert technology category: %w", err)
		}
	}

	for i, src := range result.Sources {
		var uri, title string
		if src.Web != nil {
			uri, title = src.Web.URI, src.Web.Title
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO grounding_sources (run_id, position, uri, title)
			VALUES ($1, $2, $3, $4)`,
			runID, i, uri, title)
		if err != nil {
			return 0, fmt.Errorf("failed to insert grounding source: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

// ListRuns 按时间倒序列出最近的分析
func (s *Storage) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sector, created_at FROM analysis_runs
		ORDER BY created_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.Sector, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRun 读取一次归档的完整结果，不存在时返回 sql.ErrNoRows
func (s *Storage) GetRun(ctx context.Context, id int) (string, *model.SearchResult, error) {
	var sector string
	result := &model.SearchResult{}
	err := s.db.QueryRowContext(ctx, `
		SELECT sector, megatrends, future_vision FROM analysis_runs WHERE id = $1`, id).
		Scan(&sector, &result.Megatrends, &result.FutureVision)
	if err != nil {
		return "", nil, err
	}

	if result.Categories, err = s.loadCategories(ctx, id); err != nil {
		return "", nil, err
	}
	if result.Sources, err = s.loadSources(ctx, id); err != nil {
		return "", nil, err
	}

	return sector, result, nil
}

func (s *Storage) loadCategories(ctx context.Context, runID int) ([]model.TechnologyCategory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, content FROM technology_categories
		WHERE run_id = $1 ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load technology categories: %w", err)
	}
	defer rows.Close()

	var categories []model.TechnologyCategory
	for rows.Next() {
		var c model.TechnologyCategory
		if err := rows.Scan(&c.Title, &c.Content); err != nil {
			return nil, fmt.Errorf("failed to scan technology category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// loadSources 读取引用列表，空 uri 和 title 还原为没有 Web 的条目
func (s *Storage) loadSources(ctx context.Context, runID int) ([]model.GroundingChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT uri, title FROM grounding_sources
		WHERE run_id = $1 ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grounding sources: %w", err)
	}
	defer rows.Close()

	sources := []model.GroundingChunk{}
	for rows.Next() {
		var uri, title string
		if err := rows.Scan(&uri, &title); err != nil {
			return nil, fmt.Errorf("failed to scan grounding source: %w", err)
		}
		var chunk model.GroundingChunk
		if uri != "" || title != "" {
			chunk.Web = &model.WebChunk{URI: uri, Title: title}
		}
		sources = append(sources, chunk)
	}
	return sources, rows.Err()
}

// sanitize 移除无效的 UTF-8 字符和 NULL 字节，PostgreSQL 文本字段不支持 NULL 字节
func sanitize(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	return strings.ReplaceAll(s, "\x00", "")
}
