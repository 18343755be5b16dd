package state

import (
	"sync"
	"time"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

// Phase 页面状态
type Phase string

const (
	Idle    Phase = "idle"
	Loading Phase = "loading"
	Settled Phase = "settled"
)

// Snapshot 某一时刻的状态副本。Settled 时 Result 与 Err 恰好一个非空。
type Snapshot struct {
	Phase     Phase
	Sector    string
	Result    *model.SearchResult
	Err       error
	SettledAt time.Time
}

// Store 保存当前唯一的搜索状态，同一时间只允许一个请求在进行
type Store struct {
	mu   sync.Mutex
	snap Snapshot
	now  func() time.Time
}

// NewStore 创建处于 Idle 状态的 Store
func NewStore() *Store {
	return &Store{snap: Snapshot{Phase: Idle}, now: time.Now}
}

// Begin 进入 Loading 状态，并清空上一次的结果
func (s *Store) Begin(sector string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Phase == Loading {
		return errs.Busy()
	}
	s.snap = Snapshot{Phase: Loading, Sector: sector}
	return nil
}

// Settle 以结果或错误结束当前请求。有错误时丢弃结果。
func (s *Store) Settle(result *model.SearchResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Phase != Loading {
		return
	}
	s.snap.Phase = Settled
	s.snap.SettledAt = s.now()
	if err != nil {
		s.snap.Result = nil
		s.snap.Err = errs.Normalize(err)
		return
	}
	s.snap.Result = result
	s.snap.Err = nil
}

// Snapshot 返回当前状态
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
