package llm

import (
	"context"
	"errors"
)

// ErrNoChoices 模型没有返回任何结果
var ErrNoChoices = errors.New("no response choices")

// Completer 语言模型接口: 一条 system 提示 + 一条 user 提示，返回文本
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Config LLM 配置
type Config struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
}
