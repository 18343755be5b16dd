package segment

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

const wellFormed = `Aqui está a análise solicitada.

**1- Tecnologias de aplicação imediata pelas empresas**
- **Suprimentos:** Rastreamento por IoT.
- **Design e Produção:** Gêmeos digitais.
- **Mercado:** Precificação dinâmica.

**2- Tecnologias de aplicação estrutural, na cadeia produtiva**
- **Suprimentos:** Blockchain para rastreabilidade.
- **Design e Produção:** Robótica colaborativa.
- **Mercado:** Plataformas B2B.

**3- Tecnologias sistêmicas, de aplicação no território**
- **Suprimentos:** Hubs logísticos inteligentes.
- **Design e Produção:** Energia distribuída.
- **Mercado:** Dados abertos regionais.

**As Big Threes**
1. Descarbonização
2. Automação
3. Personalização

**Visão de Futuro**
Um setor conectado e sustentável.
`

func TestSegment_WellFormed(t *testing.T) {
	got := Segment(wellFormed, model.CategoryTitles())

	want := []string{
		"- **Suprimentos:** Rastreamento por IoT.\n- **Design e Produção:** Gêmeos digitais.\n- **Mercado:** Precificação dinâmica.",
		"- **Suprimentos:** Blockchain para rastreabilidade.\n- **Design e Produção:** Robótica colaborativa.\n- **Mercado:** Plataformas B2B.",
		"- **Suprimentos:** Hubs logísticos inteligentes.\n- **Design e Produção:** Energia distribuída.\n- **Mercado:** Dados abertos regionais.",
	}
	if len(got.Categories) != 3 {
		t.Fatalf("Categories len = %d, want 3", len(got.Categories))
	}
	for i, c := range got.Categories {
		if c.Title != model.CategoryTitles()[i] {
			t.Errorf("Categories[%d].Title = %q", i, c.Title)
		}
		if c.Content != want[i] {
			t.Errorf("Categories[%d].Content = %q, want %q", i, c.Content, want[i])
		}
	}
	if got.Megatrends != "1. Descarbonização\n2. Automação\n3. Personalização" {
		t.Errorf("Megatrends = %q", got.Megatrends)
	}
	if got.FutureVision != "Um setor conectado e sustentável." {
		t.Errorf("FutureVision = %q", got.FutureVision)
	}
}

func TestSegment_Example(t *testing.T) {
	text := "**1- Tecnologias de aplicação imediata pelas empresas**\n- **Suprimentos:** X\n" +
		"**2- Tecnologias de aplicação estrutural, na cadeia produtiva**\n- **Mercado:** Y\n" +
		"**As Big Threes**\n1. A\n2. B\n3. C\n**Visão de Futuro**\nParagraph."

	got := Segment(text, model.CategoryTitles())

	if got.Categories[0].Content != "- **Suprimentos:** X" {
		t.Errorf("Categories[0].Content = %q", got.Categories[0].Content)
	}
	if got.Categories[1].Content != "- **Mercado:** Y" {
		t.Errorf("Categories[1].Content = %q", got.Categories[1].Content)
	}
	if got.Categories[2].Content != model.NoCategoryContent {
		t.Errorf("Categories[2].Content = %q, want sentinel", got.Categories[2].Content)
	}
	if got.Megatrends != "1. A\n2. B\n3. C" {
		t.Errorf("Megatrends = %q", got.Megatrends)
	}
	if got.FutureVision != "Paragraph." {
		t.Errorf("FutureVision = %q", got.FutureVision)
	}
}

func TestSegment_MissingCategory(t *testing.T) {
	titles := model.CategoryTitles()
	full := Segment(wellFormed, titles)

	for i := range titles {
		// 去掉第 i 个分类的整段（标题与条目）
		text := withoutSection(wellFormed, titles, i)
		got := Segment(text, titles)

		if got.Categories[i].Content != model.NoCategoryContent {
			t.Errorf("missing %d: Content = %q, want sentinel", i, got.Categories[i].Content)
		}
		for j := range titles {
			if j == i {
				continue
			}
			if got.Categories[j] != full.Categories[j] {
				t.Errorf("missing %d: Categories[%d] = %q, want %q", i, j, got.Categories[j].Content, full.Categories[j].Content)
			}
		}
		if got.Megatrends != full.Megatrends || got.FutureVision != full.FutureVision {
			t.Errorf("missing %d: trailing sections changed", i)
		}
	}
}

func withoutSection(text string, titles []string, i int) string {
	start := strings.Index(text, fmt.Sprintf("**%d- %s**", i+1, titles[i]))
	var end int
	if i+1 < len(titles) {
		end = strings.Index(text, fmt.Sprintf("**%d- %s**", i+2, titles[i+1]))
	} else {
		end = strings.Index(text, "**As Big Threes**")
	}
	return text[:start] + text[end:]
}

func TestSegment_MissingMegatrendsHeading(t *testing.T) {
	text := strings.Replace(wellFormed, "**As Big Threes**", "", 1)
	got := Segment(text, model.CategoryTitles())

	if got.Megatrends != model.NoMegatrends {
		t.Errorf("Megatrends = %q, want sentinel", got.Megatrends)
	}
	if got.FutureVision != "Um setor conectado e sustentável." {
		t.Errorf("FutureVision = %q", got.FutureVision)
	}
	// 没有结束边界时最后一个分类延伸到文本末尾
	last := got.Categories[2].Content
	if !strings.Contains(last, "Dados abertos regionais.") || !strings.Contains(last, "**Visão de Futuro**") {
		t.Errorf("last category should extend to end of text, got %q", last)
	}
}

func TestSegment_NoHeadings(t *testing.T) {
	got := Segment("O modelo respondeu algo totalmente diferente.", model.CategoryTitles())

	for i, c := range got.Categories {
		if c.Content != model.NoCategoryContent {
			t.Errorf("Categories[%d].Content = %q, want sentinel", i, c.Content)
		}
	}
	if got.Megatrends != model.NoMegatrends {
		t.Errorf("Megatrends = %q", got.Megatrends)
	}
	if got.FutureVision != model.NoFutureVision {
		t.Errorf("FutureVision = %q", got.FutureVision)
	}
}

func TestSegment_EmptyText(t *testing.T) {
	got := Segment("", model.CategoryTitles())
	if len(got.Categories) != 3 {
		t.Fatalf("Categories len = %d, want 3", len(got.Categories))
	}
}

func TestSegment_Idempotent(t *testing.T) {
	a := Segment(wellFormed, model.CategoryTitles())
	b := Segment(wellFormed, model.CategoryTitles())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Segment is not idempotent: %+v vs %+v", a, b)
	}
}

func TestSegment_HeadingTolerance(t *testing.T) {
	tests := []struct {
		name    string
		heading string
		found   bool
	}{
		{"canonical", "**1- Tecnologias de aplicação imediata pelas empresas**", true},
		{"upper case", "**1- TECNOLOGIAS DE APLICAÇÃO IMEDIATA PELAS EMPRESAS**", true},
		{"space after hyphen", "**1-   Tecnologias de aplicação imediata pelas empresas**", true},
		{"space before hyphen", "**1 - Tecnologias de aplicação imediata pelas empresas**", true},
		{"wrong ordinal", "**2- Tecnologias de aplicação imediata pelas empresas**", false},
		{"paraphrased title", "**1- Tecnologias imediatas**", false},
		{"no bold", "1- Tecnologias de aplicação imediata pelas empresas", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := tt.heading + "\n- **Mercado:** Z\n**As Big Threes**\n1. A"
			got := Segment(text, model.CategoryTitles()).Categories[0].Content
			if tt.found && got != "- **Mercado:** Z" {
				t.Errorf("Content = %q, want bullet", got)
			}
			if !tt.found && got != model.NoCategoryContent {
				t.Errorf("Content = %q, want sentinel", got)
			}
		})
	}
}

func TestSegment_EmptySectionIsSentinel(t *testing.T) {
	text := "**1- Tecnologias de aplicação imediata pelas empresas**\n   \n" +
		"**2- Tecnologias de aplicação estrutural, na cadeia produtiva**\nconteúdo"
	got := Segment(text, model.CategoryTitles())
	if got.Categories[0].Content != model.NoCategoryContent {
		t.Errorf("Categories[0].Content = %q, want sentinel", got.Categories[0].Content)
	}
	if got.Categories[1].Content != "conteúdo" {
		t.Errorf("Categories[1].Content = %q", got.Categories[1].Content)
	}
}

func TestFutureVision_CaseInsensitive(t *testing.T) {
	if got := FutureVision("**VISÃO DE FUTURO**\n  Texto. "); got != "Texto." {
		t.Errorf("FutureVision = %q", got)
	}
}
