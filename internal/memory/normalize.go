package memory

import "strings"

// Normalize 问题规范化: 小写、合并连续空白、去掉首尾空白
// 结果作为知识库的缓存 key
func Normalize(question string) string {
	return strings.Join(strings.Fields(strings.ToLower(question)), " ")
}
