package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eryajf/servicebot/internal/model"
)

const qaKeyPrefix = "qa:"

// RedisCache Redis 缓存层，缓存每个问题 key 对应的首条记录
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 创建 Redis 缓存
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheWithClient(client, ttl), nil
}

// NewRedisCacheWithClient 使用已有的客户端创建缓存
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// GetRecord 获取缓存的记录
func (r *RedisCache) GetRecord(ctx context.Context, questionHash string) (*model.QuestionRecord, bool, error) {
	data, err := r.client.Get(ctx, qaKeyPrefix+questionHash).Bytes()
	if err == redis.Nil {
		return nil, false, nil // 缓存未命中
	}
	if err != nil {
		return nil, false, err
	}

	var record model.QuestionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached record: %w", err)
	}

	return &record, true, nil
}

// SetRecord 缓存记录
func (r *RedisCache) SetRecord(ctx context.Context, questionHash string, record *model.QuestionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, qaKeyPrefix+questionHash, data, r.ttl).Err()
}

// DeleteAll 删除所有问答缓存，返回删除的 key 数量
func (r *RedisCache) DeleteAll(ctx context.Context) (int64, error) {
	var (
		cursor  uint64
		deleted int64
	)

	for {
		keys, next, err := r.client.Scan(ctx, cursor, qaKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, err
		}

		if len(keys) > 0 {
			n, err := r.client.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += n
		}

		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Ping 检查连接
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close 关闭 Redis 连接
func (r *RedisCache) Close() error {
	return r.client.Close()
}
