package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

var (
	megatrendsHeading = headingPattern(model.HeadingMegatrends)

	megatrendsSection = regexp.MustCompile(`(?is)` +
		regexp.QuoteMeta("**"+model.HeadingMegatrends+"**") + `\s*(.*?)\s*` +
		regexp.QuoteMeta("**"+model.HeadingFutureVision+"**"))

	futureVisionSection = regexp.MustCompile(`(?is)` +
		regexp.QuoteMeta("**"+model.HeadingFutureVision+"**") + `\s*(.*)`)
)

// headingPattern 匹配 **heading**，不区分大小写
func headingPattern(heading string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta("**"+heading+"**"))
}

// categoryPattern 匹配 **N- title**，连字符两侧允许空白，标题按字面匹配
func categoryPattern(ordinal int, title string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?i)\*\*%d\s*-\s*%s\*\*`, ordinal, regexp.QuoteMeta(title)))
}

// Segment 按标题切分模型输出。找不到的段落用占位文本代替，不会返回错误。
// Sources 由调用方填充。
func Segment(text string, titles []string) *model.SearchResult {
	return &model.SearchResult{
		Categories:   Categories(text, titles),
		Megatrends:   Megatrends(text),
		FutureVision: FutureVision(text),
	}
}

// Categories 按顺序提取每个分类的正文，结果长度总是等于 len(titles)
func Categories(text string, titles []string) []model.TechnologyCategory {
	categories := make([]model.TechnologyCategory, 0, len(titles))
	for i, title := range titles {
		categories = append(categories, model.TechnologyCategory{
			Title:   title,
			Content: categoryContent(text, titles, i),
		})
	}
	return categories
}

func categoryContent(text string, titles []string, i int) string {
	start := categoryPattern(i+1, titles[i]).FindStringIndex(text)
	if start == nil {
		return model.NoCategoryContent
	}

	rest := text[start[1]:]
	if end := endBoundary(rest, titles, i); end >= 0 {
		rest = rest[:end]
	}

	content := strings.TrimSpace(rest)
	if content == "" {
		return model.NoCategoryContent
	}
	return content
}

// endBoundary 返回第 i 个分类在 rest 中的结束位置。
// 依次尝试后续分类标题，最后是大趋势标题；都不存在时返回 -1，正文延伸到文本末尾。
func endBoundary(rest string, titles []string, i int) int {
	for j := i + 1; j < len(titles); j++ {
		if loc := categoryPattern(j+1, titles[j]).FindStringIndex(rest); loc != nil {
			return loc[0]
		}
	}
	if loc := megatrendsHeading.FindStringIndex(rest); loc != nil {
		return loc[0]
	}
	return -1
}

// Megatrends 提取大趋势与未来愿景标题之间的内容
func Megatrends(text string) string {
	m := megatrendsSection.FindStringSubmatch(text)
	if m == nil {
		return model.NoMegatrends
	}
	return strings.TrimSpace(m[1])
}

// FutureVision 提取未来愿景标题之后直到文本结尾的内容
func FutureVision(text string) string {
	m := futureVisionSection.FindStringSubmatch(text)
	if m == nil {
		return model.NoFutureVision
	}
	return strings.TrimSpace(m[1])
}
