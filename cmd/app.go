package cmd

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/eryajf/servicebot/internal/answer"
	"github.com/eryajf/servicebot/internal/config"
	"github.com/eryajf/servicebot/internal/database"
	"github.com/eryajf/servicebot/internal/llm"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/memory"
	"github.com/eryajf/servicebot/internal/moderation"
	"github.com/eryajf/servicebot/internal/pipeline"
	"github.com/eryajf/servicebot/internal/service"
	"github.com/eryajf/servicebot/internal/websearch"
)

// App 持有进程内所有外部连接，由 Close 统一释放
type App struct {
	db       *gorm.DB
	redis    *memory.RedisCache
	store    *memory.Store
	chatLogs *service.ChatLogService
	pipeline *pipeline.Orchestrator
}

// newApp 按配置构建依赖
func newApp(cfg *config.Config) (*App, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}

	app := &App{db: db}

	if cfg.Redis.Enabled {
		app.redis, err = memory.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		logx.Info("Redis knowledge cache enabled, addr %s", cfg.Redis.Addr)
	}

	app.store = memory.NewStore(db, app.redis)
	app.chatLogs = service.NewChatLogService(db)

	client := llm.NewOpenAIClient(&llm.Config{
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Temperature: cfg.LLM.Temperature,
	}, cfg.LLM.Timeout)

	if !cfg.Search.Enabled() {
		logx.Warn("Web search credentials not configured, using encyclopedia summaries only")
	}

	app.pipeline = pipeline.New(pipeline.Deps{
		Moderator:  moderation.New(cfg.Moderation.BannedTerms),
		Store:      app.store,
		Context:    websearch.NewProviderFromConfig(cfg.Search, cfg.Wikipedia),
		Classifier: answer.NewClassifier(client),
		Generator:  answer.NewGenerator(client),
		Summarizer: answer.NewSummarizer(client),
		ChatLog:    app.chatLogs,
	})

	return app, nil
}

// Close 关闭数据库和 Redis 连接
func (a *App) Close() error {
	var result *multierror.Error

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("close redis: %w", err))
		}
	}
	if err := database.Close(a.db); err != nil {
		result = multierror.Append(result, fmt.Errorf("close database: %w", err))
	}

	return result.ErrorOrNil()
}
