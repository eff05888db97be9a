package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/eryajf/servicebot/internal/model"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.QuestionRecord{},
		&model.ChatLog{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	return EnsureQuestionIndex(db)
}

// EnsureQuestionIndex 确保 question 列上存在非唯一索引
func EnsureQuestionIndex(db *gorm.DB) error {
	m := db.Migrator()
	if m.HasIndex(&model.QuestionRecord{}, "idx_knowledge_question") {
		return nil
	}
	if err := m.CreateIndex(&model.QuestionRecord{}, "idx_knowledge_question"); err != nil {
		return fmt.Errorf("failed to create question index: %w", err)
	}
	return nil
}
