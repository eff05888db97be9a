package websearch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// DefaultWikipediaBaseURL MediaWiki action API 地址
const DefaultWikipediaBaseURL = "https://en.wikipedia.org/w/api.php"

const wikipediaUserAgent = "servicebot/1.0 (https://github.com/eryajf/servicebot)"

// Wikipedia 百科摘要: 取搜索结果第一页的纯文本前 N 句
type Wikipedia struct {
	BaseURL string
	client  *http.Client
}

// NewWikipedia 创建百科客户端
func NewWikipedia(baseURL string, timeout time.Duration) *Wikipedia {
	if baseURL == "" {
		baseURL = DefaultWikipediaBaseURL
	}
	return &Wikipedia{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// Summary 返回与 topic 最相关页面的前 sentences 句，没有匹配页面时返回空字符串
func (w *Wikipedia) Summary(ctx context.Context, topic string, sentences int) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", errors.New("wikipedia: topic is empty")
	}
	if sentences <= 0 {
		sentences = 2
	}

	base, err := url.Parse(w.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid wikipedia base url: %w", err)
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("redirects", "1")
	params.Set("generator", "search")
	params.Set("gsrsearch", topic)
	params.Set("gsrlimit", "1")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("exsentences", strconv.Itoa(sentences))
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", wikipediaUserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("wikipedia request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("wikipedia returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read wikipedia response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", errors.New("wikipedia returned invalid json")
	}

	if apiErr := gjson.GetBytes(body, "error.info"); apiErr.Exists() {
		return "", fmt.Errorf("wikipedia api error: %s", apiErr.String())
	}

	extract := gjson.GetBytes(body, "query.pages.0.extract")
	return strings.TrimSpace(extract.String()), nil
}
