package openai

import (
	"context"
	"errors"
	"testing"

	einoopenai "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/errs"
)

// mockChatModel 模拟 eino ChatModel
type mockChatModel struct {
	content  string
	err      error
	messages []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.messages = input
	if m.err != nil {
		return nil, m.err
	}
	return schema.AssistantMessage(m.content, nil), nil
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func lookupKey(key string) Option {
	return WithLookup(func(string) (string, bool) { return key, key != "" })
}

func TestClient_MissingCredential(t *testing.T) {
	calls := 0
	c := NewClient(Config{Model: "gpt"}, lookupKey(""), WithChatModelFactory(
		func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (model.BaseChatModel, error) {
			calls++
			return &mockChatModel{}, nil
		}))

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("Generate() error = %v, want configuration error", err)
	}
	if calls != 0 {
		t.Errorf("factory called %d times, want 0", calls)
	}
}

func TestClient_Generate(t *testing.T) {
	cm := &mockChatModel{content: "  resposta  \n"}
	var got *einoopenai.ChatModelConfig
	c := NewClient(Config{BaseURL: "http://llm.local/v1", Model: "gpt"}, lookupKey("sk-test"), WithChatModelFactory(
		func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (model.BaseChatModel, error) {
			got = cfg
			return cm, nil
		}))

	gen, err := c.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gen.Text != "resposta" {
		t.Errorf("Text = %q", gen.Text)
	}
	if gen.Sources == nil || len(gen.Sources) != 0 {
		t.Errorf("Sources = %#v, want empty slice", gen.Sources)
	}
	if got.APIKey != "sk-test" || got.BaseURL != "http://llm.local/v1" || got.Model != "gpt" {
		t.Errorf("ChatModelConfig = %+v", got)
	}
	if len(cm.messages) != 2 || cm.messages[1].Role != schema.User || cm.messages[1].Content != "prompt" {
		t.Errorf("messages = %+v", cm.messages)
	}
}

func TestClient_UpstreamFailure(t *testing.T) {
	c := NewClient(Config{Model: "gpt"}, lookupKey("k"), WithChatModelFactory(
		func(ctx context.Context, cfg *einoopenai.ChatModelConfig) (model.BaseChatModel, error) {
			return &mockChatModel{err: errors.New("503 service unavailable")}, nil
		}))

	_, err := c.Generate(context.Background(), "prompt")
	if !errors.Is(err, errs.ErrUpstream) {
		t.Fatalf("Generate() error = %v, want upstream error", err)
	}
}
