package llm

import (
	"context"
	"os"
	"strings"

	"github.com/iWorld-y/sector_radar/app/sector_radar/pkg/model"
)

// Generator 定义通用的模型调用接口
type Generator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// Generation 一次模型调用的原始输出
type Generation struct {
	Text    string
	Sources []model.GroundingChunk
	// Structured 为 true 时 Text 是按 schema 返回的 JSON
	Structured bool
}

// LookupFunc 读取环境变量，测试中可替换
type LookupFunc func(key string) (string, bool)

// Credential 在调用时从环境中读取凭证，空白值视为不存在
func Credential(lookup LookupFunc, key string) (string, bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}
