package model

import "time"

// ChatLog 问答日志，只追加
type ChatLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
	Question  string    `json:"question" gorm:"type:text"`
	Source    string    `json:"source" gorm:"size:50;index"` // "memory" | "online+generated"
}

// TableName 指定表名
func (ChatLog) TableName() string {
	return "chat_logs"
}
