package service

import (
	"fmt"
	nethttp "net/http"
	"strconv"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/sector_radar/app/display/internal/usecase"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/render"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/state"
)

// RadarService 页面与 JSON 接口
type RadarService struct {
	uc  *usecase.AnalysisUseCase
	log *log.Helper
}

func NewRadarService(uc *usecase.AnalysisUseCase, logger log.Logger) *RadarService {
	return &RadarService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

type searchReq struct {
	Sector string `json:"sector"`
}

type errorReply struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type stateReply struct {
	Phase  string              `json:"phase"`
	Sector string              `json:"sector,omitempty"`
	Result *model.SearchResult `json:"result,omitempty"`
	Error  *errorReply         `json:"error,omitempty"`
}

type historyItem struct {
	ID     int    `json:"id"`
	Sector string `json:"sector"`
	Date   string `json:"date"`
}

type historyReply struct {
	Runs []historyItem `json:"runs"`
}

type runReply struct {
	ID     int                 `json:"id"`
	Sector string              `json:"sector"`
	Result *model.SearchResult `json:"result"`
}

// Page GET / 渲染当前状态对应的页面
func (s *RadarService) Page(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}

	snap := s.uc.State()
	data := render.PageData{
		Sector:      snap.Sector,
		Interactive: true,
		Loading:     snap.Phase == state.Loading,
		Result:      snap.Result,
	}
	if snap.Err != nil {
		data.Error = errs.Message(snap.Err)
	}
	if snap.Result != nil {
		data.ExportURL = "/api/v1/export"
	}
	if runs, err := s.uc.History(r.Context()); err != nil {
		s.log.Errorf("failed to list history: %v", err)
	} else {
		for _, run := range runs {
			data.History = append(data.History, render.HistoryItem{ID: run.ID, Sector: run.Sector, Date: run.Date})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.Page(w, data); err != nil {
		s.log.Errorf("failed to render page: %v", err)
	}
}

// SubmitForm POST /search 在后台开始分析并跳回首页
func (s *RadarService) SubmitForm(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.Method != nethttp.MethodPost {
		w.Header().Set("Allow", nethttp.MethodPost)
		nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
		return
	}
	if err := s.uc.Start(r.Context(), r.FormValue("sector")); err != nil {
		// 已有分析在进行，页面会显示进行中的状态
		s.log.Warnf("search not started: %v", err)
	}
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// Search POST /api/v1/search
func (s *RadarService) Search(ctx http.Context) error {
	var req searchReq
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	result, err := s.uc.Search(ctx, req.Sector)
	if err != nil {
		return errs.Normalize(err)
	}
	return ctx.JSON(nethttp.StatusOK, result)
}

// State GET /api/v1/state
func (s *RadarService) State(ctx http.Context) error {
	snap := s.uc.State()
	reply := stateReply{
		Phase:  string(snap.Phase),
		Sector: snap.Sector,
		Result: snap.Result,
	}
	if snap.Err != nil {
		e := errs.Normalize(snap.Err)
		reply.Error = &errorReply{Reason: e.Reason, Message: e.Message}
	}
	return ctx.JSON(nethttp.StatusOK, reply)
}

// Export GET /api/v1/export 下载纯文本报告
func (s *RadarService) Export(ctx http.Context) error {
	name, doc, err := s.uc.Export()
	if err != nil {
		return err
	}
	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	return ctx.Blob(nethttp.StatusOK, "text/plain; charset=utf-8", []byte(doc))
}

// History GET /api/v1/history
func (s *RadarService) History(ctx http.Context) error {
	runs, err := s.uc.History(ctx)
	if err != nil {
		return err
	}
	reply := historyReply{Runs: make([]historyItem, 0, len(runs))}
	for _, run := range runs {
		reply.Runs = append(reply.Runs, historyItem{ID: run.ID, Sector: run.Sector, Date: run.Date})
	}
	return ctx.JSON(nethttp.StatusOK, reply)
}

// GetRun GET /api/v1/history/{id}
func (s *RadarService) GetRun(ctx http.Context) error {
	id, err := strconv.Atoi(ctx.Vars().Get("id"))
	if err != nil {
		return errors.BadRequest("INVALID_RUN_ID", "invalid run id")
	}
	run, err := s.uc.GetRun(ctx, id)
	if err != nil {
		return err
	}
	return ctx.JSON(nethttp.StatusOK, runReply{ID: run.ID, Sector: run.Sector, Result: run.Result})
}
