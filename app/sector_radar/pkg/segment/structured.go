package segment

import (
	"encoding/json"
	"strings"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

type structuredResponse struct {
	Categories []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	} `json:"categories"`
	Megatrends   string `json:"megatrends"`
	FutureVision string `json:"futureVision"`
}

// cleanJSON 去掉模型可能包裹的 markdown 代码块
func cleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// FromJSON 解析结构化输出。分类按 titles 的顺序对齐，标题以固定值为准；
// 文本不是 JSON 对象时 ok 为 false，调用方应回退到 Segment。
func FromJSON(text string, titles []string) (result *model.SearchResult, ok bool) {
	cleaned := cleanJSON(text)
	if !strings.HasPrefix(cleaned, "{") {
		return nil, false
	}

	var resp structuredResponse
	if err := json.Unmarshal([]byte(cleaned), &resp); err != nil {
		return nil, false
	}

	byTitle := make(map[string]string, len(resp.Categories))
	for _, c := range resp.Categories {
		byTitle[strings.ToLower(strings.TrimSpace(c.Title))] = c.Content
	}

	categories := make([]model.TechnologyCategory, 0, len(titles))
	for i, title := range titles {
		content, found := byTitle[strings.ToLower(title)]
		if !found && i < len(resp.Categories) {
			content = resp.Categories[i].Content
		}
		content = strings.TrimSpace(content)
		if content == "" {
			content = model.NoCategoryContent
		}
		categories = append(categories, model.TechnologyCategory{Title: title, Content: content})
	}

	megatrends := strings.TrimSpace(resp.Megatrends)
	if megatrends == "" {
		megatrends = model.NoMegatrends
	}
	futureVision := strings.TrimSpace(resp.FutureVision)
	if futureVision == "" {
		futureVision = model.NoFutureVision
	}

	return &model.SearchResult{
		Categories:   categories,
		Megatrends:   megatrends,
		FutureVision: futureVision,
	}, true
}
