// Package moderation 提供基于关键词的输入审核
//
// 这只是一个粗粒度的前置过滤: 任一屏蔽词以子串形式(忽略大小写)出现即拒绝，
// 不能作为安全保证。
package moderation

import "strings"

// Verdict 审核结果
type Verdict struct {
	Safe   bool   `json:"safe"`
	Reason string `json:"reason,omitempty"` // 命中的屏蔽词
}

// Moderator 关键词审核器
type Moderator struct {
	terms []string
}

// New 使用屏蔽词列表创建审核器，空白词条会被忽略
func New(terms []string) *Moderator {
	cleaned := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return &Moderator{terms: cleaned}
}

// Check 检查文本，按列表顺序第一个命中的词作为原因
func (m *Moderator) Check(text string) Verdict {
	lower := strings.ToLower(text)
	for _, term := range m.terms {
		if strings.Contains(lower, term) {
			return Verdict{Safe: false, Reason: term}
		}
	}
	return Verdict{Safe: true}
}

// Terms 返回当前的屏蔽词
func (m *Moderator) Terms() []string {
	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}
