package prompt

import (
	"fmt"
	"strings"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

const intro = `Você é um agente especialista em soluções tecnológicas. Sua missão é analisar um setor da economia e identificar as tecnologias mais avançadas para ele, com base em uma ampla pesquisa global.
Para o setor de "%s", forneça uma análise detalhada. Sua pesquisa deve abranger referências internacionais de alta reputação, como Wired, The Verge, TechCrunch, Ars Technica, Reuters, Financial Times, Gartner, e outras publicações notórias do setor de tecnologia.
`

// Build 根据行业名称生成提示词，标题按调用方给定的顺序编号
func Build(sector string, titles []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, intro, sector)

	sb.WriteString("\nEstruture sua resposta em EXATAMENTE três categorias principais, usando os seguintes títulos em negrito, precedidos por um número:\n\n")
	for i, title := range titles {
		fmt.Fprintf(&sb, "**%d- %s**\n\n", i+1, title)
	}

	sb.WriteString("Dentro de CADA UMA dessas três categorias, você DEVE listar exatamente UMA tecnologia para cada um dos TRÊS elos da cadeia produtiva. Use o seguinte formato exato para cada item, incluindo o hífen e os asteriscos, mas SEM incluir os colchetes []:\n\n")
	for _, link := range model.ChainLinks() {
		fmt.Fprintf(&sb, "- **%s:** Descrição da tecnologia para o elo de %s\n", link, strings.ToLower(link))
	}

	sb.WriteString("\nPara cada tecnologia, forneça uma breve descrição de sua aplicação e impacto no setor.\n")
	sb.WriteString("Seja conciso, preciso e baseie-se nas informações mais recentes e globais.\n\n")
	sb.WriteString("Após essa análise detalhada, adicione as seguintes seções, usando os títulos em negrito exatamente como mostrado:\n\n")

	fmt.Fprintf(&sb, "**%s**\n", model.HeadingMegatrends)
	fmt.Fprintf(&sb, "Liste as 3 maiores e mais impactantes megatendências para o setor de \"%s\". Use um formato de lista numerada (ex: 1. Tendência A...).\n\n", sector)

	fmt.Fprintf(&sb, "**%s**\n", model.HeadingFutureVision)
	sb.WriteString("Com base nas tecnologias e megatendências identificadas, escreva um parágrafo conciso e inspirador que resuma a \"Visão de Futuro\" para este setor.\n\n")

	sb.WriteString("Responda em português brasileiro.\n")
	return sb.String()
}

// BuildStructured 结构化输出模式下的提示词，要求模型按 JSON schema 返回
func BuildStructured(sector string, titles []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, intro, sector)

	sb.WriteString("\nResponda com um objeto JSON. O campo \"categories\" deve conter EXATAMENTE três itens, nesta ordem, com o campo \"title\" copiado literalmente:\n\n")
	for i, title := range titles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}

	sb.WriteString("\nNo campo \"content\" de cada categoria, liste exatamente UMA tecnologia para cada elo da cadeia produtiva, uma por linha, neste formato:\n\n")
	for _, link := range model.ChainLinks() {
		fmt.Fprintf(&sb, "- **%s:** Descrição da tecnologia para o elo de %s\n", link, strings.ToLower(link))
	}

	fmt.Fprintf(&sb, "\nNo campo \"megatrends\", liste as 3 maiores megatendências para o setor de \"%s\" em lista numerada (1. ..., 2. ..., 3. ...), uma por linha.\n", sector)
	sb.WriteString("No campo \"futureVision\", escreva um parágrafo conciso e inspirador com a visão de futuro do setor.\n\n")
	sb.WriteString("Responda em português brasileiro.\n")
	return sb.String()
}
