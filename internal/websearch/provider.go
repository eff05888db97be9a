package websearch

import (
	"context"
	"strings"

	"github.com/eryajf/servicebot/internal/config"
	"github.com/eryajf/servicebot/internal/logx"
	"github.com/eryajf/servicebot/internal/metrics"
)

const (
	defaultMaxSnippets = 5
	defaultSentences   = 2
)

// Provider 上下文提供者
type Provider struct {
	searcher     Searcher     // 为 nil 表示未配置搜索
	encyclopedia Encyclopedia // 为 nil 表示不回退
	maxSnippets  int
	sentences    int
}

// NewProvider 创建上下文提供者，searcher 和 encyclopedia 都可以为 nil
func NewProvider(searcher Searcher, encyclopedia Encyclopedia, maxSnippets, sentences int) *Provider {
	if maxSnippets <= 0 {
		maxSnippets = defaultMaxSnippets
	}
	if sentences <= 0 {
		sentences = defaultSentences
	}
	return &Provider{
		searcher:     searcher,
		encyclopedia: encyclopedia,
		maxSnippets:  maxSnippets,
		sentences:    sentences,
	}
}

// NewProviderFromConfig 按配置组装: 搜索凭证不全时不启用搜索
func NewProviderFromConfig(search config.SearchConfig, wiki config.WikipediaConfig) *Provider {
	var searcher Searcher
	if search.Enabled() {
		searcher = NewGoogleSearch(search.APIKey, search.EngineID, search.BaseURL, search.Timeout)
	} else {
		logx.Info("Web search disabled: search.api_key or search.engine_id not set")
	}

	return NewProvider(searcher, NewWikipedia(wiki.BaseURL, wiki.Timeout), search.MaxSnippets, wiki.Sentences)
}

// Fetch 返回上下文文本，任何失败都退化为空字符串
func (p *Provider) Fetch(ctx context.Context, query string) string {
	res := p.Lookup(ctx, query)
	if !res.Found() {
		return ""
	}
	return res.Text
}

// Lookup 先搜索，没有得到文本时回退到百科摘要
func (p *Provider) Lookup(ctx context.Context, query string) Result {
	if p.searcher != nil {
		res := p.search(ctx, query)
		observe(res)
		if res.Found() {
			return res
		}
		if res.Status == StatusFailed {
			logx.Warn("Web search failed, falling back to encyclopedia: %v", res.Err)
		}
	}

	if p.encyclopedia == nil {
		return empty(OriginNone)
	}

	res := p.summary(ctx, query)
	observe(res)
	if res.Status == StatusFailed {
		logx.Warn("Encyclopedia lookup failed, continuing with empty context: %v", res.Err)
	}
	return res
}

func (p *Provider) search(ctx context.Context, query string) Result {
	snippets, err := p.searcher.Search(ctx, query)
	if err != nil {
		return failed(OriginSearch, err)
	}

	if len(snippets) > p.maxSnippets {
		snippets = snippets[:p.maxSnippets]
	}

	lines := make([]string, 0, len(snippets))
	for _, s := range snippets {
		if s == "" {
			continue
		}
		lines = append(lines, "- "+s)
	}
	if len(lines) == 0 {
		return empty(OriginSearch)
	}

	return found(OriginSearch, strings.Join(lines, "\n"))
}

func (p *Provider) summary(ctx context.Context, query string) Result {
	text, err := p.encyclopedia.Summary(ctx, query, p.sentences)
	if err != nil {
		return failed(OriginEncyclopedia, err)
	}
	if text == "" {
		return empty(OriginEncyclopedia)
	}
	return found(OriginEncyclopedia, text)
}

func observe(res Result) {
	metrics.ContextLookups.WithLabelValues(string(res.Origin), string(res.Status)).Inc()
}
