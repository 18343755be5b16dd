package domain

import "github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"

// RunSummary 已归档分析的摘要
type RunSummary struct {
	ID     int
	Sector string
	Date   string
}

// Run 一次归档分析的完整结果
type Run struct {
	ID     int
	Sector string
	Result *model.SearchResult
}
