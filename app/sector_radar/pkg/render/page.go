package render

import (
	"html/template"
	"io"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

// PageData 用于模板渲染的数据
type PageData struct {
	Date   string
	Sector string
	// Interactive 为 true 时显示搜索表单（服务端页面），CLI 生成的静态报告不显示
	Interactive bool
	Loading     bool
	Error       string
	ExportURL   string
	History     []HistoryItem
	Result      *model.SearchResult
}

// HistoryItem 历史记录中的一条
type HistoryItem struct {
	ID     int
	Sector string
	Date   string
}

type resultView struct {
	Categories      []Category
	Megatrends      []string
	FutureVision    string
	HasMegatrends   bool
	HasFutureVision bool
	Sources         []model.GroundingChunk
}

type pageView struct {
	PageData
	View *resultView
}

var pageTpl = template.Must(template.New("page").Parse(pageHTML))

// Page 渲染完整页面
func Page(w io.Writer, data PageData) error {
	v := pageView{PageData: data}
	if data.Result != nil {
		r := data.Result
		v.View = &resultView{
			Categories:      Categories(r),
			Megatrends:      MegatrendItems(r.Megatrends),
			FutureVision:    r.FutureVision,
			HasMegatrends:   r.HasMegatrends(),
			HasFutureVision: r.HasFutureVision(),
			Sources:         r.Sources,
		}
	}
	return pageTpl.Execute(w, v)
}

const pageHTML = `<!DOCTYPE html>
<html lang="pt-BR">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Projeto Foresight</title>
    {{if .Loading}}<meta http-equiv="refresh" content="3">{{end}}
    <style>
        :root {
            --bg-color: #0f172a;
            --card-bg: rgba(30, 41, 59, 0.5);
            --border-color: #334155;
            --text-main: #e2e8f0;
            --text-secondary: #94a3b8;
            --accent: #38bdf8;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 900px; margin: 0 auto; }
        header { text-align: center; margin: 32px 0; }
        h1 { font-size: 2.4rem; margin: 0 0 10px 0; color: var(--accent); }
        .subtitle { color: var(--text-secondary); }
        form { display: flex; gap: 12px; margin-bottom: 32px; }
        form input { flex: 1; padding: 12px 16px; border-radius: 8px; border: 1px solid #475569; background: #1e293b; color: #fff; }
        form button { padding: 12px 24px; border-radius: 8px; border: 0; background: #0284c7; color: #fff; font-weight: bold; }
        form button[disabled] { background: #334155; }
        .error { background: rgba(127, 29, 29, 0.5); border: 1px solid #b91c1c; color: #fca5a5; padding: 12px 16px; border-radius: 8px; text-align: center; }
        .hint { text-align: center; color: #64748b; padding: 64px 0; }
        .card { background: var(--card-bg); border: 1px solid var(--border-color); border-radius: 12px; padding: 24px; margin-bottom: 24px; }
        .card h2 { margin-top: 0; font-size: 1.4rem; }
        .icon-tech h2 { color: #38bdf8; }
        .icon-chain h2 { color: #2dd4bf; }
        .icon-system h2 { color: #818cf8; }
        .bullet { position: relative; padding-left: 24px; }
        .bullet::before { content: ""; position: absolute; left: 0; top: 10px; width: 10px; height: 10px; border-radius: 50%; background: #0ea5e9; }
        .bullet strong { color: var(--accent); }
        .text { padding-left: 24px; color: #d1d5db; }
        .megatrends li { margin-bottom: 12px; }
        .megatrends h2 { color: #fbbf24; }
        .vision h2 { color: #c084fc; }
        .vision p { font-style: italic; }
        .download { display: inline-block; margin-bottom: 16px; padding: 12px 24px; border-radius: 8px; background: #059669; color: #fff; text-decoration: none; font-weight: 600; }
        .sources a, .history a { color: var(--accent); text-decoration: none; }
        .sources li, .history li { margin-bottom: 6px; font-size: 0.9rem; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>Projeto Foresight: Agente Especialista em Soluções Tecnológicas</h1>
            <div class="subtitle">Seu agente de IA para descobrir as tecnologias de ponta em qualquer setor da economia.</div>
            {{if .Date}}<div class="subtitle">{{.Date}}{{if .Sector}} • {{.Sector}}{{end}}</div>{{end}}
        </header>

        {{if .Interactive}}
        <form method="post" action="/search">
            <input type="text" name="sector" value="{{.Sector}}" placeholder="Ex: Agricultura, Saúde, Varejo..." {{if .Loading}}disabled{{end}}>
            <button type="submit" {{if .Loading}}disabled{{end}}>{{if .Loading}}Analisando...{{else}}Buscar Soluções{{end}}</button>
        </form>
        {{end}}

        {{if .Error}}
        <div class="error" role="alert"><strong>Erro: </strong><span>{{.Error}}</span></div>
        {{end}}

        {{with .View}}
        {{if $.ExportURL}}<a class="download" href="{{$.ExportURL}}">Baixar Relatório</a>{{end}}

        {{range .Categories}}
        <div class="card icon-{{.Icon}}">
            <h2>{{.Title}}</h2>
            {{range .Lines}}
            {{if eq .Kind 1}}
            <div class="bullet"><p><strong>{{.Label}}:</strong> {{.Description}}</p></div>
            {{else}}
            <p class="text">{{range .Spans}}{{if .Bold}}<strong>{{.Text}}</strong>{{else}}{{.Text}}{{end}}{{end}}</p>
            {{end}}
            {{end}}
        </div>
        {{end}}

        {{if .HasMegatrends}}
        <div class="card megatrends">
            <h2>As Big Threes</h2>
            <ul>
                {{range .Megatrends}}<li>{{.}}</li>{{end}}
            </ul>
        </div>
        {{end}}

        {{if .HasFutureVision}}
        <div class="card vision">
            <h2>Visão de Futuro</h2>
            <p>"{{.FutureVision}}"</p>
        </div>
        {{end}}

        {{if .Sources}}
        <div class="card sources">
            <h2>Fontes</h2>
            <ul>
                {{range .Sources}}{{with .Web}}<li><a href="{{.URI}}" target="_blank" rel="noopener">{{if .Title}}{{.Title}}{{else}}{{.URI}}{{end}}</a></li>{{end}}{{end}}
            </ul>
        </div>
        {{end}}
        {{else}}
        {{if and .Interactive (not .Loading) (not .Error)}}
        <div class="hint"><p>Insira um setor econômico para iniciar a análise de tecnologias.</p></div>
        {{end}}
        {{end}}

        {{if .History}}
        <div class="card history">
            <h2>Análises anteriores</h2>
            <ul>
                {{range .History}}<li>{{.Date}} • {{.Sector}}</li>{{end}}
            </ul>
        </div>
        {{end}}
    </div>
</body>
</html>
`
