package answer

import (
	"context"
	"errors"
	"strings"

	"github.com/eryajf/servicebot/internal/llm"
	"github.com/eryajf/servicebot/internal/metrics"
	"github.com/eryajf/servicebot/internal/model"
)

// ErrEmptyAnswer 模型返回了空白内容
var ErrEmptyAnswer = errors.New("language model returned an empty answer")

// Generator 生成答案
type Generator struct {
	llm llm.Completer
}

// NewGenerator 创建答案生成器
func NewGenerator(completer llm.Completer) *Generator {
	return &Generator{llm: completer}
}

// Generate 按答案类型选择提示词和 token 预算，context 为空时模型凭自身知识回答
func (g *Generator) Generate(ctx context.Context, question, webContext string, answerType model.AnswerType) (string, error) {
	system, maxTokens := shortAnswerSystemPrompt, shortAnswerMaxTokens
	if answerType == model.AnswerLong {
		system, maxTokens = longAnswerSystemPrompt, longAnswerMaxTokens
	}

	out, err := g.llm.Complete(ctx, system, answerPrompt(question, webContext), maxTokens)
	if err != nil {
		metrics.LLMCalls.WithLabelValues("generate", "error").Inc()
		return "", err
	}
	metrics.LLMCalls.WithLabelValues("generate", "ok").Inc()

	if strings.TrimSpace(out) == "" {
		return "", ErrEmptyAnswer
	}
	return out, nil
}
