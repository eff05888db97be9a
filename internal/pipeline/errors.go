package pipeline

import "fmt"

// BlockedError 问题未通过内容审核
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("question blocked by moderation filter: %s", e.Reason)
}

// UpstreamError 语言模型调用失败
type UpstreamError struct {
	Stage string
	Err   error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
