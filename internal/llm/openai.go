package llm

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/eryajf/servicebot/internal/logx"
)

// OpenAIClient OpenAI 兼容的客户端(Groq 等)
type OpenAIClient struct {
	config *Config
	client *openai.Client
}

// NewOpenAIClient 创建新的 OpenAI 客户端
func NewOpenAIClient(config *Config, timeout time.Duration) *OpenAIClient {
	clientConfig := openai.DefaultConfig(config.APIKey)

	// 直接使用配置的 BaseURL,不自动添加 /v1
	// 不同的 API 提供商路径格式不同，例如 Groq 使用 /openai/v1
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
		logx.Debug("OpenAI client BaseURL: %s", config.BaseURL)
	}

	// 禁用 HTTP/2,强制使用 HTTP/1.1 以避免 INTERNAL_ERROR
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSNextProto:        make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
	}

	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	clientConfig.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}

	logx.Info("OpenAI client initialized, model %s", config.Model)

	return &OpenAIClient{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Complete 非流式对话，不做重试
func (c *OpenAIClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: c.config.Temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	logx.Debug("Chat completion finished, reason %s, tokens %d", resp.Choices[0].FinishReason, resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}
