package answer

import (
	"context"
)

type call struct {
	system    string
	user      string
	maxTokens int
}

// fakeCompleter 记录调用并返回预设结果
type fakeCompleter struct {
	reply string
	err   error
	calls []call
}

func (f *fakeCompleter) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	f.calls = append(f.calls, call{system: system, user: user, maxTokens: maxTokens})
	return f.reply, f.err
}
