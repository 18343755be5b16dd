package model

// 三个固定的技术分类标题，顺序即展示顺序
const (
	TitleImmediate  = "Tecnologias de aplicação imediata pelas empresas"
	TitleStructural = "Tecnologias de aplicação estrutural, na cadeia produtiva"
	TitleSystemic   = "Tecnologias sistêmicas, de aplicação no território"
)

// 大趋势与未来愿景两个段落的标题
const (
	HeadingMegatrends   = "As Big Threes"
	HeadingFutureVision = "Visão de Futuro"
)

// 未找到对应段落时的占位文本
const (
	NoCategoryContent = "Nenhuma informação encontrada para esta categoria."
	NoMegatrends      = "Nenhuma megatendência encontrada."
	NoFutureVision    = "Nenhuma visão de futuro encontrada."
)

// CategoryTitles 返回固定的分类标题列表
func CategoryTitles() []string {
	return []string{TitleImmediate, TitleStructural, TitleSystemic}
}

// ChainLinks 产业链三个环节的固定标签
func ChainLinks() []string {
	return []string{"Suprimentos", "Design e Produção", "Mercado"}
}

// TechnologyCategory 单个技术分类
type TechnologyCategory struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// WebChunk 检索增强返回的网页引用
type WebChunk struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// GroundingChunk 模型返回的单条引用，原样透传
type GroundingChunk struct {
	Web *WebChunk `json:"web,omitempty"`
}

// SearchResult 一次分析的完整结果
type SearchResult struct {
	Categories   []TechnologyCategory `json:"categories"`
	Sources      []GroundingChunk     `json:"sources"`
	Megatrends   string               `json:"megatrends"`
	FutureVision string               `json:"futureVision"`
}

// HasMegatrends 大趋势段落是否有效
func (r *SearchResult) HasMegatrends() bool {
	return r.Megatrends != "" && r.Megatrends != NoMegatrends
}

// HasFutureVision 未来愿景段落是否有效
func (r *SearchResult) HasFutureVision() bool {
	return r.FutureVision != "" && r.FutureVision != NoFutureVision
}
