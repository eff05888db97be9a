package answer

import (
	"context"
	"strings"

	"github.com/eryajf/servicebot/internal/llm"
	"github.com/eryajf/servicebot/internal/metrics"
)

// Summarizer 把长答案压缩成 1-3 句
type Summarizer struct {
	llm llm.Completer
}

// NewSummarizer 创建摘要器
func NewSummarizer(completer llm.Completer) *Summarizer {
	return &Summarizer{llm: completer}
}

// Summarize 只用于长答案，短答案的摘要就是答案本身
func (s *Summarizer) Summarize(ctx context.Context, answer string) (string, error) {
	out, err := s.llm.Complete(ctx, summarySystemPrompt, summaryPrompt(answer), summaryMaxTokens)
	if err != nil {
		metrics.LLMCalls.WithLabelValues("summarize", "error").Inc()
		return "", err
	}
	metrics.LLMCalls.WithLabelValues("summarize", "ok").Inc()

	return strings.TrimSpace(out), nil
}
