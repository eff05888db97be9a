package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/eryajf/servicebot/internal/model"
)

// ChatLogService 问答日志服务
type ChatLogService struct {
	db *gorm.DB
}

// NewChatLogService 创建问答日志服务实例
func NewChatLogService(db *gorm.DB) *ChatLogService {
	return &ChatLogService{
		db: db,
	}
}

// Record 追加一条问答日志，是否吞掉错误由调用方决定
func (s *ChatLogService) Record(ctx context.Context, question, source string) error {
	log := &model.ChatLog{
		Timestamp: time.Now().UTC(),
		Question:  question,
		Source:    source,
	}
	return s.db.WithContext(ctx).Create(log).Error
}

// ListChatLogs 列出问答日志，按时间倒序
func (s *ChatLogService) ListChatLogs(ctx context.Context, source string, limit, offset int) ([]model.ChatLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.ChatLog{})

	if source != "" {
		query = query.Where("source = ?", source)
	}

	// 获取总数
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	var logs []model.ChatLog
	err := query.Order("timestamp DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error

	return logs, total, err
}
