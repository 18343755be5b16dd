package render

import (
	"regexp"
	"strings"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

// LineKind 分类正文中一行的类型
type LineKind int

const (
	TextLine LineKind = iota
	BulletLine
)

// Span 一段行内文本，Bold 表示原文中被 ** 包裹
type Span struct {
	Text string
	Bold bool
}

// Line 渲染用的一行
type Line struct {
	Kind        LineKind
	Label       string
	Description string
	Spans       []Span
}

// Category 渲染用的分类
type Category struct {
	Title string
	Icon  string
	Lines []Line
}

var (
	bulletLine = regexp.MustCompile(`^- \*\*(` + strings.Join(quoteAll(model.ChainLinks()), "|") + `):\*\* (.*)`)
	boldSpan   = regexp.MustCompile(`\*\*.*?\*\*`)
	ordinal    = regexp.MustCompile(`^\d\.`)
	ordinalPfx = regexp.MustCompile(`^\d\.\s*`)
)

var categoryIcons = map[string]string{
	model.TitleImmediate:  "tech",
	model.TitleStructural: "chain",
	model.TitleSystemic:   "system",
}

func quoteAll(items []string) []string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = regexp.QuoteMeta(s)
	}
	return quoted
}

// ContentLines 把分类正文拆成行，识别 "- **环节:** 描述" 格式的条目，空行丢弃
func ContentLines(content string) []Line {
	var lines []Line
	for _, raw := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if m := bulletLine.FindStringSubmatch(trimmed); m != nil {
			lines = append(lines, Line{Kind: BulletLine, Label: m[1], Description: m[2]})
			continue
		}
		lines = append(lines, Line{Kind: TextLine, Spans: Spans(raw)})
	}
	return lines
}

// Spans 按 **...** 切分行内加粗片段
func Spans(line string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldSpan.FindAllStringIndex(line, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: line[last:loc[0]]})
		}
		inner := line[loc[0]+2 : loc[1]-2]
		if inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	if last < len(line) {
		spans = append(spans, Span{Text: line[last:]})
	}
	return spans
}

// MegatrendItems 只保留以 "数字." 开头的行，并去掉序号
func MegatrendItems(megatrends string) []string {
	var items []string
	for _, raw := range strings.Split(megatrends, "\n") {
		trimmed := strings.TrimSpace(raw)
		if !ordinal.MatchString(trimmed) {
			continue
		}
		items = append(items, ordinalPfx.ReplaceAllString(trimmed, ""))
	}
	return items
}

// Categories 把结果中的分类转换为渲染结构
func Categories(result *model.SearchResult) []Category {
	categories := make([]Category, 0, len(result.Categories))
	for _, c := range result.Categories {
		icon, ok := categoryIcons[c.Title]
		if !ok {
			icon = "tech"
		}
		categories = append(categories, Category{
			Title: c.Title,
			Icon:  icon,
			Lines: ContentLines(c.Content),
		})
	}
	return categories
}
