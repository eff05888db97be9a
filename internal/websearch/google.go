package websearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultGoogleBaseURL Google Custom Search JSON API 地址
const DefaultGoogleBaseURL = "https://www.googleapis.com/customsearch/v1"

// GoogleSearch 基于 Google Custom Search 的搜索实现
type GoogleSearch struct {
	APIKey   string
	EngineID string
	BaseURL  string
	client   *http.Client
}

// NewGoogleSearch 创建搜索客户端，timeout 作用于整个请求
func NewGoogleSearch(apiKey, engineID, baseURL string, timeout time.Duration) *GoogleSearch {
	if baseURL == "" {
		baseURL = DefaultGoogleBaseURL
	}
	return &GoogleSearch{
		APIKey:   apiKey,
		EngineID: engineID,
		BaseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
	}
}

// Search 执行查询，返回每条结果的 snippet(可能为空字符串)
func (g *GoogleSearch) Search(ctx context.Context, query string) ([]string, error) {
	if strings.TrimSpace(g.APIKey) == "" || strings.TrimSpace(g.EngineID) == "" {
		return nil, errors.New("google search: api key or engine id is missing")
	}

	searchURL, err := g.buildSearchURL(query)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google search returned %d", resp.StatusCode)
	}

	var payload struct {
		Items []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode google search response: %w", err)
	}

	snippets := make([]string, 0, len(payload.Items))
	for _, item := range payload.Items {
		snippets = append(snippets, item.Snippet)
	}
	return snippets, nil
}

func (g *GoogleSearch) buildSearchURL(query string) (string, error) {
	base, err := url.Parse(g.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid search base url: %w", err)
	}
	params := url.Values{}
	params.Set("key", g.APIKey)
	params.Set("cx", g.EngineID)
	params.Set("q", query)
	base.RawQuery = params.Encode()
	return base.String(), nil
}
