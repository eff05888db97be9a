package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envAliases 原部署中使用的无前缀环境变量
var envAliases = map[string]string{
	"database.dsn":     "DATABASE_DSN",
	"llm.api_key":      "GROQ_API_KEY",
	"search.api_key":   "SEARCH_API_KEY",
	"search.engine_id": "SEARCH_ENGINE_ID",
}

// Load 加载配置: .env -> YAML 文件 -> 环境变量，最后校验必填项
func Load(configFile string) (*Config, error) {
	cfg, err := load(configFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func load(configFile string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.servicebot")
	}

	v.SetEnvPrefix("SERVICEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envAliases {
		prefixed := "SERVICEBOT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.debug", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.debug", false)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")

	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.timeout", "60s")

	v.SetDefault("search.api_key", "")
	v.SetDefault("search.engine_id", "")
	v.SetDefault("search.base_url", "https://www.googleapis.com/customsearch/v1")
	v.SetDefault("search.timeout", "8s")
	v.SetDefault("search.max_snippets", 5)

	v.SetDefault("wikipedia.base_url", "https://en.wikipedia.org/w/api.php")
	v.SetDefault("wikipedia.sentences", 2)
	v.SetDefault("wikipedia.timeout", "8s")

	v.SetDefault("moderation.banned_terms", []string{"kill", "attack", "bomb", "suicide"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}
