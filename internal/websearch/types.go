// Package websearch 为答案生成提供网页上下文: 先查搜索引擎，失败或无结果时回退到百科摘要。
//
// 所有失败都被吸收为空上下文，不会向调用方返回错误。
package websearch

import "context"

// Searcher 搜索引擎，返回结果摘要(snippet)列表
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Encyclopedia 百科摘要
type Encyclopedia interface {
	Summary(ctx context.Context, topic string, sentences int) (string, error)
}

// Status 上下文查询结果状态
type Status string

const (
	StatusFound  Status = "found"  // 得到了非空文本
	StatusEmpty  Status = "empty"  // 查询成功但没有数据，或未配置
	StatusFailed Status = "failed" // 查询出错
)

// Origin 上下文来源
type Origin string

const (
	OriginSearch       Origin = "search"
	OriginEncyclopedia Origin = "encyclopedia"
	OriginNone         Origin = "none"
)

// Result 一次上下文查询的结果，区分"没有数据"和"出错"
type Result struct {
	Text   string
	Origin Origin
	Status Status
	Err    error
}

// Found 是否得到了可用的上下文
func (r Result) Found() bool {
	return r.Status == StatusFound
}

func found(origin Origin, text string) Result {
	return Result{Text: text, Origin: origin, Status: StatusFound}
}

func empty(origin Origin) Result {
	return Result{Origin: origin, Status: StatusEmpty}
}

func failed(origin Origin, err error) Result {
	return Result{Origin: origin, Status: StatusFailed, Err: err}
}
