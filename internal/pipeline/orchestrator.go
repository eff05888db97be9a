// Package pipeline 串联问答流程: 规范化、审核、记忆查询、联网上下文、分类、生成、摘要、持久化
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eryajf/servicebot/internal/answer"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/memory"
	"github.com/eryajf/servicebot/internal/metrics"
	"github.com/eryajf/servicebot/internal/model"
	"github.com/eryajf/servicebot/internal/moderation"
)

// ErrEmptyQuestion 问题为空
var ErrEmptyQuestion = errors.New("question is empty")

// Store 知识库
type Store interface {
	Lookup(ctx context.Context, normalized string) (*model.QuestionRecord, error)
	Save(ctx context.Context, normalized string, candidate *model.QuestionRecord) (*model.QuestionRecord, error)
}

// ContextProvider 联网上下文，失败时返回空字符串
type ContextProvider interface {
	Fetch(ctx context.Context, query string) string
}

// Classifier 意图分类
type Classifier interface {
	Classify(ctx context.Context, question string) (answer.Classification, error)
}

// Generator 答案生成
type Generator interface {
	Generate(ctx context.Context, question, webContext string, answerType model.AnswerType) (string, error)
}

// Summarizer 长答案摘要
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// ChatLogger 问答日志
type ChatLogger interface {
	Record(ctx context.Context, question, source string) error
}

// Request 一次提问
type Request struct {
	Question   string
	ForceShort bool
}

// Response 提问结果
type Response struct {
	Answer     string           `json:"answer"`
	AnswerType model.AnswerType `json:"answer_type"`
	Source     string           `json:"source"`
	Confidence float64          `json:"confidence"`
}

// Deps 编排器依赖
type Deps struct {
	Moderator  *moderation.Moderator
	Store      Store
	Context    ContextProvider
	Classifier Classifier
	Generator  Generator
	Summarizer Summarizer
	ChatLog    ChatLogger
}

// Orchestrator 问答流程编排，每个请求独立执行，没有重试
type Orchestrator struct {
	moderator  *moderation.Moderator
	store      Store
	context    ContextProvider
	classifier Classifier
	generator  Generator
	summarizer Summarizer
	chatLog    ChatLogger
	now        func() time.Time
}

// New 创建编排器
func New(deps Deps) *Orchestrator {
	mod := deps.Moderator
	if mod == nil {
		mod = moderation.New(nil)
	}
	return &Orchestrator{
		moderator:  mod,
		store:      deps.Store,
		context:    deps.Context,
		classifier: deps.Classifier,
		generator:  deps.Generator,
		summarizer: deps.Summarizer,
		chatLog:    deps.ChatLog,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Ask 回答一个问题
func (o *Orchestrator) Ask(ctx context.Context, req Request) (resp *Response, err error) {
	start := time.Now()
	outcome := metrics.OutcomeError
	defer func() {
		metrics.AskTotal.WithLabelValues(outcome).Inc()
		metrics.AskDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	}()

	raw := strings.TrimSpace(req.Question)
	if raw == "" {
		return nil, ErrEmptyQuestion
	}
	normalized := memory.Normalize(raw)

	if verdict := o.moderator.Check(raw); !verdict.Safe {
		outcome = metrics.OutcomeBlocked
		logx.Info("Question blocked by moderation, term=%s", verdict.Reason)
		return nil, &BlockedError{Reason: verdict.Reason}
	}

	existing, err := o.store.Lookup(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to lookup knowledge store: %w", err)
	}
	if existing != nil {
		outcome = metrics.OutcomeMemory
		o.recordChat(ctx, raw, model.SourceMemory)
		return &Response{
			Answer:     existing.Answer,
			AnswerType: existing.TypeOrDefault(),
			Source:     model.SourceMemory,
			Confidence: existing.Confidence,
		}, nil
	}

	webContext := o.context.Fetch(ctx, raw)

	class, err := o.classifier.Classify(ctx, raw)
	if err != nil {
		return nil, &UpstreamError{Stage: "classify", Err: err}
	}
	if req.ForceShort {
		class.AnswerType = model.AnswerShort
	}

	text, err := o.generator.Generate(ctx, raw, webContext, class.AnswerType)
	if err != nil {
		return nil, &UpstreamError{Stage: "generate", Err: err}
	}

	summary := text
	if class.AnswerType == model.AnswerLong {
		summary, err = o.summarizer.Summarize(ctx, text)
		if err != nil {
			return nil, &UpstreamError{Stage: "summarize", Err: err}
		}
	}

	candidate := &model.QuestionRecord{
		QuestionRaw: raw,
		Answer:      text,
		Summary:     summary,
		AnswerType:  class.AnswerType,
		Confidence:  class.Confidence,
		Context:     webContext,
		Source:      model.SourceGenerated,
		Timestamp:   o.now(),
	}
	if _, err := o.store.Save(ctx, normalized, candidate); err != nil {
		metrics.StoreErrors.WithLabelValues("save").Inc()
		logx.Warn("Failed to save answer to knowledge store: %v", err)
	}

	o.recordChat(ctx, raw, model.SourceGenerated)

	outcome = metrics.OutcomeGenerated
	return &Response{
		Answer:     text,
		AnswerType: class.AnswerType,
		Source:     model.SourceGenerated,
		Confidence: class.Confidence,
	}, nil
}

// recordChat 写问答日志，失败只记录警告
func (o *Orchestrator) recordChat(ctx context.Context, question, source string) {
	if o.chatLog == nil {
		return
	}
	if err := o.chatLog.Record(ctx, question, source); err != nil {
		metrics.StoreErrors.WithLabelValues("chat_log").Inc()
		logx.Warn("Failed to record chat log: %v", err)
	}
}
