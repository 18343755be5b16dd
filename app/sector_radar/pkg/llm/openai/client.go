package openai

import (
	"context"
	"errors"
	"strings"
	"time"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/llm"
	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/logger"
	dm "github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

const DefaultAPIKeyEnv = "OPENAI_API_KEY"

const systemPrompt = "Você é um analista de tecnologia. Siga exatamente a estrutura de títulos pedida."

// ChatModelFactory 用凭证创建 eino ChatModel
type ChatModelFactory func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (model.BaseChatModel, error)

// Config OpenAI 兼容接口配置
type Config struct {
	BaseURL   string
	Model     string
	APIKeyEnv string
}

// Client OpenAI 兼容接口客户端，没有检索增强，Sources 总为空
type Client struct {
	cfg          Config
	lookup       llm.LookupFunc
	newChatModel ChatModelFactory
}

// Option 客户端选项
type Option func(*Client)

// WithLookup 替换环境变量读取方式
func WithLookup(lookup llm.LookupFunc) Option {
	return func(c *Client) { c.lookup = lookup }
}

// WithChatModelFactory 替换 ChatModel 的创建方式
func WithChatModelFactory(f ChatModelFactory) Option {
	return func(c *Client) { c.newChatModel = f }
}

// NewClient 创建一个新的 OpenAI 兼容客户端
func NewClient(cfg Config, opts ...Option) *Client {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = DefaultAPIKeyEnv
	}
	c := &Client{
		cfg: cfg,
		newChatModel: func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (model.BaseChatModel, error) {
			return einoopenai.NewChatModel(ctx, cfg)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure Client implements llm.Generator
var _ llm.Generator = (*Client)(nil)

// Generate 发起一次对话生成请求
func (c *Client) Generate(ctx context.Context, prompt string) (*llm.Generation, error) {
	apiKey, ok := llm.Credential(c.lookup, c.cfg.APIKeyEnv)
	if !ok {
		return nil, errs.Configuration(c.cfg.APIKeyEnv)
	}

	cm, err := c.newChatModel(ctx, &einoopenai.ChatModelConfig{
		BaseURL: c.cfg.BaseURL,
		APIKey:  apiKey,
		Model:   c.cfg.Model,
	})
	if err != nil {
		logger.Log.Errorf("LLM 初始化失败: %v", err)
		return nil, errs.Upstream(err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: prompt},
	}

	startTime := time.Now()
	resp, err := cm.Generate(ctx, messages)
	if err != nil {
		logger.Log.Errorf("LLM 请求失败 (model=%s, %s): %v", c.cfg.Model, time.Since(startTime), err)
		return nil, errs.Upstream(err)
	}
	if resp == nil {
		return nil, errs.Upstream(errors.New("empty response from model"))
	}

	logger.Log.Infof("LLM 响应完成 (model=%s, %s, %d 字符)", c.cfg.Model, time.Since(startTime), len(resp.Content))
	return &llm.Generation{
		Text:    strings.TrimSpace(resp.Content),
		Sources: []dm.GroundingChunk{},
	}, nil
}
