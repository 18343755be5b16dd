package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

const (
	documentTitle = "PROJETO FORESIGHT - ANÁLISE TECNOLÓGICA"
	ruleWidth     = 60
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Document 生成纯文本报告。大趋势和未来愿景为占位文本时整段省略。
func Document(result *model.SearchResult, sector string, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(documentTitle + "\n")
	fmt.Fprintf(&sb, "Setor: %s\n", sector)
	fmt.Fprintf(&sb, "Data: %s\n", now.Format("02/01/2006"))
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n\n")

	for i, cat := range result.Categories {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.ToUpper(cat.Title))
		writeSection(&sb, cat.Content)
	}

	if result.HasMegatrends() {
		sb.WriteString(strings.ToUpper(model.HeadingMegatrends) + "\n")
		writeSection(&sb, result.Megatrends)
	}

	if result.HasFutureVision() {
		sb.WriteString(strings.ToUpper(model.HeadingFutureVision) + "\n")
		writeSection(&sb, result.FutureVision)
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, body string) {
	sb.WriteString(strings.Repeat("-", ruleWidth) + "\n")
	sb.WriteString(body + "\n\n")
}

// FileName 导出文件名：foresight-<行业>-<YYYY-MM-DD>.txt
func FileName(sector string, now time.Time) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(sector), "-")
	return fmt.Sprintf("foresight-%s-%s.txt", slug, now.Format(time.DateOnly))
}
