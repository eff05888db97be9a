package answer

import (
	"context"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/eryajf/servicebot/internal/llm"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/metrics"
	"github.com/eryajf/servicebot/internal/model"
)

// Classification 问题意图分类结果
type Classification struct {
	AnswerType model.AnswerType `json:"answer_type"`
	Confidence float64          `json:"confidence"`
}

// DefaultClassification 模型输出无法解析时使用
var DefaultClassification = Classification{
	AnswerType: model.AnswerShort,
	Confidence: model.DefaultConfidence,
}

// Classifier 让模型判断用户想要简短还是详细的回答
type Classifier struct {
	llm llm.Completer
}

// NewClassifier 创建分类器
func NewClassifier(completer llm.Completer) *Classifier {
	return &Classifier{llm: completer}
}

// Classify 只有模型调用失败时返回错误，输出格式不对时使用默认值
func (c *Classifier) Classify(ctx context.Context, question string) (Classification, error) {
	raw, err := c.llm.Complete(ctx, classifySystemPrompt, classifyPrompt(question), classifyMaxTokens)
	if err != nil {
		metrics.LLMCalls.WithLabelValues("classify", "error").Inc()
		return Classification{}, err
	}
	metrics.LLMCalls.WithLabelValues("classify", "ok").Inc()

	return ParseClassification(raw), nil
}

// ParseClassification 解析模型输出的 JSON
func ParseClassification(raw string) Classification {
	body := stripCodeFence(raw)

	if !gjson.Valid(body) {
		logx.Debug("Classifier returned non-JSON output, using default: %q", raw)
		return DefaultClassification
	}
	doc := gjson.Parse(body)
	if !doc.IsObject() {
		return DefaultClassification
	}

	result := Classification{
		AnswerType: model.AnswerShort,
		Confidence: model.DefaultConfidence,
	}

	if strings.EqualFold(strings.TrimSpace(doc.Get("answer_type").String()), string(model.AnswerLong)) {
		result.AnswerType = model.AnswerLong
	}

	conf := doc.Get("confidence")
	switch conf.Type {
	case gjson.Null:
		// 缺失时保持默认
	case gjson.Number:
		result.Confidence = conf.Num
	case gjson.String:
		v, err := strconv.ParseFloat(strings.TrimSpace(conf.Str), 64)
		if err != nil {
			return DefaultClassification
		}
		result.Confidence = v
	default:
		return DefaultClassification
	}

	result.Confidence = clamp(result.Confidence)
	return result
}

// stripCodeFence 去掉 ```json ... ``` 包裹
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
