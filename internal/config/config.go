package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
)

// Config 应用配置
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Search     SearchConfig     `mapstructure:"search"`
	Wikipedia  WikipediaConfig  `mapstructure:"wikipedia"`
	Moderation ModerationConfig `mapstructure:"moderation"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig 服务配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// DatabaseConfig 知识库存储配置
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	DSN    string `mapstructure:"dsn"`
	Debug  bool   `mapstructure:"debug"`
}

// RedisConfig Redis 查询缓存配置(可选)
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LLMConfig 语言模型配置(OpenAI 兼容接口)
type LLMConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	Model       string        `mapstructure:"model"`
	Temperature float32       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// SearchConfig 网页搜索配置，APIKey 和 EngineID 都配置时才启用
type SearchConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	EngineID    string        `mapstructure:"engine_id"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxSnippets int           `mapstructure:"max_snippets"`
}

// Enabled 搜索是否可用
func (c SearchConfig) Enabled() bool {
	return c.APIKey != "" && c.EngineID != ""
}

// WikipediaConfig 百科摘要配置
type WikipediaConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Sentences int           `mapstructure:"sentences"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// ModerationConfig 关键词审核配置
type ModerationConfig struct {
	BannedTerms []string `mapstructure:"banned_terms"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate 校验必填项，缺失时启动失败
func (c *Config) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(c.Database.DSN) == "" {
		result = multierror.Append(result, errors.New("database.dsn (DATABASE_DSN) is required"))
	}
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		result = multierror.Append(result, errors.New("llm.api_key (GROQ_API_KEY) is required"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		result = multierror.Append(result, fmt.Errorf("unsupported database.driver %q", c.Database.Driver))
	}

	return result.ErrorOrNil()
}
