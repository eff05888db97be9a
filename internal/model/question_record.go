package model

import "time"

// AnswerType 答案类型
type AnswerType string

const (
	AnswerShort AnswerType = "short"
	AnswerLong  AnswerType = "long"
)

// 答案来源
const (
	SourceMemory    = "memory"
	SourceGenerated = "online+generated"
)

// DefaultConfidence 分类结果缺失时的默认置信度
const DefaultConfidence = 0.8

// QuestionRecord 知识库问答记录
// Question 为规范化后的问题，作为缓存 key，只建普通索引(允许重复)
type QuestionRecord struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Question    string     `json:"question" gorm:"column:question;type:text;not null;index:idx_knowledge_question"`
	QuestionRaw string     `json:"question_raw" gorm:"type:text"`
	Answer      string     `json:"answer" gorm:"type:text"`
	Summary     string     `json:"summary" gorm:"type:text"`
	AnswerType  AnswerType `json:"answer_type" gorm:"size:10"`
	Confidence  float64    `json:"confidence"`
	Context     string     `json:"context" gorm:"type:text"`
	Source      string     `json:"source" gorm:"size:50"`
	Timestamp   time.Time  `json:"timestamp"`
	VariantOf   *uint      `json:"variant_of,omitempty" gorm:"index"` // 同一问题不同答案时指向最早的记录
}

// TableName 指定表名
func (QuestionRecord) TableName() string {
	return "knowledge_store"
}

// TypeOrDefault 返回答案类型，为空时视为 short
func (r *QuestionRecord) TypeOrDefault() AnswerType {
	if r.AnswerType == "" {
		return AnswerShort
	}
	return r.AnswerType
}
