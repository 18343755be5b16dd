package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

func newMock(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return New(db), mock
}

func sampleResult() *model.SearchResult {
	return &model.SearchResult{
		Categories: []model.TechnologyCategory{
			{Title: model.TitleImmediate, Content: "- **Suprimentos:** X"},
			{Title: model.TitleStructural, Content: "- **Mercado:** Y"},
		},
		Sources: []model.GroundingChunk{
			{Web: &model.WebChunk{URI: "https://a.example", Title: "A"}},
			{},
		},
		Megatrends:   "1. A\x00",
		FutureVision: "F",
	}
}

func TestStorage_SaveRun(t *testing.T) {
	s, mock := newMock(t)
	r := sampleResult()

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO analysis_runs").
		WithArgs("Agricultura", "raw", "1. A", "F").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec("INSERT INTO technology_categories").
		WithArgs(7, 0, model.TitleImmediate, "- **Suprimentos:** X").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO technology_categories").
		WithArgs(7, 1, model.TitleStructural, "- **Mercado:** Y").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO grounding_sources").
		WithArgs(7, 0, "https://a.example", "A").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO grounding_sources").
		WithArgs(7, 1, "", "").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	id, err := s.SaveRun(context.Background(), "Agricultura", "raw", r)
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if id != 7 {
		t.Errorf("SaveRun() id = %d, want 7", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStorage_SaveRunRollback(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO analysis_runs").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec("INSERT INTO technology_categories").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	if _, err := s.SaveRun(context.Background(), "Saúde", "raw", sampleResult()); err == nil {
		t.Fatal("SaveRun() should fail")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStorage_ListRuns(t *testing.T) {
	s, mock := newMock(t)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, sector, created_at FROM analysis_runs").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sector", "created_at"}).
			AddRow(2, "Varejo", now).
			AddRow(1, "Saúde", now.Add(-time.Hour)))

	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 || runs[0].ID != 2 || runs[1].Sector != "Saúde" {
		t.Errorf("ListRuns() = %+v", runs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStorage_GetRun(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("SELECT sector, megatrends, future_vision FROM analysis_runs").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"sector", "megatrends", "future_vision"}).
			AddRow("Moda", "1. A", "F"))
	mock.ExpectQuery("SELECT title, content FROM technology_categories").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"title", "content"}).
			AddRow(model.TitleImmediate, "X").
			AddRow(model.TitleStructural, "Y"))
	mock.ExpectQuery("SELECT uri, title FROM grounding_sources").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"uri", "title"}).
			AddRow("https://a.example", "A").
			AddRow("", ""))

	sector, r, err := s.GetRun(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if sector != "Moda" || r.Megatrends != "1. A" || r.FutureVision != "F" {
		t.Errorf("GetRun() = %q, %+v", sector, r)
	}
	if len(r.Categories) != 2 || r.Categories[1].Content != "Y" {
		t.Errorf("Categories = %+v", r.Categories)
	}
	if len(r.Sources) != 2 || r.Sources[0].Web.URI != "https://a.example" || r.Sources[1].Web != nil {
		t.Errorf("Sources = %+v", r.Sources)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestStorage_GetRunNotFound(t *testing.T) {
	s, mock := newMock(t)

	mock.ExpectQuery("SELECT sector, megatrends, future_vision FROM analysis_runs").
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	if _, _, err := s.GetRun(context.Background(), 99); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetRun() error = %v, want sql.ErrNoRows", err)
	}
}

func TestSanitize(t *testing.T) {
	if got := sanitize("a\x00b\xffc"); got != "abc" {
		t.Errorf("sanitize() = %q, want abc", got)
	}
}
