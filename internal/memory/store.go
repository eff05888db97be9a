package memory

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/model"
)

// Store 知识库存储
//
// Save 是"先查后写"，不是原子的 compare-and-set:
// 同一新问题的两个并发 Save 都可能看到"无记录"并各自插入一条顶层记录。
type Store struct {
	db    *gorm.DB
	redis *RedisCache // 可选的 Redis 缓存
}

// NewStore 创建知识库存储，redis 可以为 nil
func NewStore(db *gorm.DB, redis *RedisCache) *Store {
	return &Store{
		db:    db,
		redis: redis,
	}
}

// Lookup 按规范化问题查找最早的一条记录，未命中返回 nil
func (s *Store) Lookup(ctx context.Context, normalized string) (*model.QuestionRecord, error) {
	hash := questionHash(normalized)

	// 1. 先尝试从 Redis 读取
	if s.redis != nil {
		record, ok, err := s.redis.GetRecord(ctx, hash)
		if err != nil {
			logx.Warn("Failed to read knowledge cache from Redis: %v", err)
		} else if ok {
			logx.Debug("Knowledge cache hit from Redis, question_hash=%s", hash)
			return record, nil
		}
	}

	// 2. 从数据库读取
	record, err := s.first(ctx, normalized)
	if err != nil || record == nil {
		return record, err
	}

	// 3. 回填 Redis 缓存
	s.cache(ctx, hash, record)

	return record, nil
}

// Save 保存候选记录
//   - 已有记录且答案相同: 直接返回已有记录，不重复写入
//   - 已有记录但答案不同: 候选记录的 VariantOf 指向已有记录后插入
//   - 没有记录: 直接插入
//
// 返回重新读取后的记录
func (s *Store) Save(ctx context.Context, normalized string, candidate *model.QuestionRecord) (*model.QuestionRecord, error) {
	existing, err := s.first(ctx, normalized)
	if err != nil {
		return nil, err
	}

	record := *candidate
	record.ID = 0
	record.Question = normalized

	if existing != nil {
		if existing.Answer == record.Answer {
			return existing, nil
		}
		id := existing.ID
		record.VariantOf = &id
	}

	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to insert knowledge record: %w", err)
	}

	var stored model.QuestionRecord
	if err := s.db.WithContext(ctx).First(&stored, record.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload knowledge record %d: %w", record.ID, err)
	}

	if existing == nil {
		s.cache(ctx, questionHash(normalized), &stored)
		logx.Debug("Knowledge record saved: id=%d", stored.ID)
	} else {
		logx.Info("Knowledge variant saved: id=%d variant_of=%d", stored.ID, existing.ID)
	}

	return &stored, nil
}

// Variants 列出某条记录的所有变体
func (s *Store) Variants(ctx context.Context, id uint) ([]model.QuestionRecord, error) {
	var records []model.QuestionRecord
	if err := s.db.WithContext(ctx).
		Where("variant_of = ?", id).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list variants: %w", err)
	}
	return records, nil
}

// Stats 知识库统计
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats

	if err := s.db.WithContext(ctx).Model(&model.QuestionRecord{}).
		Count(&stats.Records).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.QuestionRecord{}).
		Where("variant_of IS NOT NULL").
		Count(&stats.Variants).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.QuestionRecord{}).
		Distinct("question").
		Count(&stats.Questions).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// Reset 清空整个知识库(维护操作，问答流程不会调用)
func (s *Store) Reset(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.QuestionRecord{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear knowledge store: %w", result.Error)
	}

	if s.redis != nil {
		n, err := s.redis.DeleteAll(ctx)
		if err != nil {
			logx.Warn("Failed to clear knowledge cache in Redis: %v", err)
		} else {
			logx.Debug("Cleared %d Redis knowledge keys", n)
		}
	}

	logx.Info("✅ Knowledge store cleared, %d records removed", result.RowsAffected)
	return result.RowsAffected, nil
}

// Ping 检查数据库连通性
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Stats 知识库统计信息
type Stats struct {
	Records   int64 `json:"records"`
	Questions int64 `json:"questions"`
	Variants  int64 `json:"variants"`
}

// first 查询 key 对应 ID 最小的记录
func (s *Store) first(ctx context.Context, normalized string) (*model.QuestionRecord, error) {
	var record model.QuestionRecord
	err := s.db.WithContext(ctx).
		Where("question = ?", normalized).
		Order("id ASC").
		First(&record).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // 未命中
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge store: %w", err)
	}

	return &record, nil
}

func (s *Store) cache(ctx context.Context, hash string, record *model.QuestionRecord) {
	if s.redis == nil {
		return
	}
	if err := s.redis.SetRecord(ctx, hash, record); err != nil {
		logx.Warn("Failed to set knowledge cache to Redis: %v", err)
	}
}

// questionHash 计算问题的哈希值
func questionHash(normalized string) string {
	hash := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", hash[:8]) // 取前 8 字节
}
