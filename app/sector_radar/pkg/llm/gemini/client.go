package gemini

import (
	"context"
	"errors"
	"time"

	"google.golang.org/genai"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/logger"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

const (
	DefaultModel     = "gemini-2.5-flash-lite-preview-06-17"
	DefaultAPIKeyEnv = "GEMINI_API_KEY"
)

// ContentGenerator 是 genai.Models 中用到的部分
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// ModelsFactory 用凭证创建 ContentGenerator
type ModelsFactory func(ctx context.Context, apiKey string) (ContentGenerator, error)

// Config Gemini 客户端配置
type Config struct {
	Model      string
	APIKeyEnv  string
	Structured bool
}

// Client Gemini 客户端，每次调用时读取凭证
type Client struct {
	cfg       Config
	lookup    llm.LookupFunc
	newModels ModelsFactory
}

// Option 客户端选项
type Option func(*Client)

// WithLookup 替换环境变量读取方式
func WithLookup(lookup llm.LookupFunc) Option {
	return func(c *Client) { c.lookup = lookup }
}

// WithModelsFactory 替换底层 SDK 客户端的创建方式
func WithModelsFactory(f ModelsFactory) Option {
	return func(c *Client) { c.newModels = f }
}

// NewClient 创建一个新的 Gemini 客户端
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
	c := &Client{
		cfg:       cfg,
		newModels: newGenAIModels,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements llm.Generator
var _ llm.Generator = (*Client)(nil)

func newGenAIModels(ctx context.Context, apiKey string) (ContentGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return client.Models, nil
}

// Generate 发起一次带 Google Search 检索增强的生成请求
func (c *Client) Generate(ctx context.Context, prompt string) (*llm.Generation, error) {
	apiKey, ok := llm.Credential(c.lookup, c.cfg.APIKeyEnv)
	if !ok {
		return nil, errs.Configuration(c.cfg.APIKeyEnv)
	}

	models, err := c.newModels(ctx, apiKey)
	if err != nil {
		logger.Log.Errorf("Gemini 客户端初始化失败: %v", err)
		return nil, errs.Upstream(err)
	}

	startTime := time.Now()
	resp, err := models.GenerateContent(ctx, c.cfg.Model, genai.Text(prompt), c.generateConfig())
	if err != nil {
		logger.Log.Errorf("Gemini 请求失败 (model=%s, %s): %v", c.cfg.Model, time.Since(startTime), err)
		return nil, errs.Upstream(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, errs.Upstream(errors.New("empty response from model"))
	}

	gen := &llm.Generation{
		Text:       resp.Text(),
		Sources:    groundingSources(resp),
		Structured: c.cfg.Structured,
	}
	logger.Log.Infof("Gemini 响应完成 (model=%s, %s, %d 字符, %d 个来源)",
		c.cfg.Model, time.Since(startTime), len(gen.Text), len(gen.Sources))
	return gen, nil
}

func (c *Client) generateConfig() *genai.GenerateContentConfig {
	if c.cfg.Structured {
		// 结构化输出与检索工具不能同时使用
		return &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema(),
		}
	}
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// groundingSources 取第一个候选的引用列表，没有时返回空切片
func groundingSources(resp *genai.GenerateContentResponse) []model.GroundingChunk {
	sources := []model.GroundingChunk{}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil {
			continue
		}
		var gc model.GroundingChunk
		if chunk.Web != nil {
			gc.Web = &model.WebChunk{URI: chunk.Web.URI, Title: chunk.Web.Title}
		}
		sources = append(sources, gc)
	}
	return sources
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"categories": {
				Type:        genai.TypeArray,
				Description: "Exactly three technology categories, in the requested order",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title": {
							Type:        genai.TypeString,
							Description: "Category title, copied verbatim",
						},
						"content": {
							Type:        genai.TypeString,
							Description: "One bullet per production-chain link: - **Label:** description",
						},
					},
					Required: []string{"title", "content"},
				},
			},
			"megatrends": {
				Type:        genai.TypeString,
				Description: "Numbered list of the three main megatrends, one per line",
			},
			"futureVision": {
				Type:        genai.TypeString,
				Description: "One concise paragraph describing the future vision",
			},
		},
		Required: []string{"categories", "megatrends", "futureVision"},
	}
}
