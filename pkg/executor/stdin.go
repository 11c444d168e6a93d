package executor

import (
	"regexp"
	"strings"
)

var assignmentPrefix = regexp.MustCompile(`^\s*[A-Za-z_]\w*\s*=`)

// FormatStdin 把 "nums=[1,2], target=3" 这类用例输入拆成每行一个参数：
// 只有逗号后紧跟 "标识符=" 时才换行，值内部的逗号保持不变
func FormatStdin(input string) string {
	var b strings.Builder
	b.Grow(len(input))

	for i := 0; i < len(input); i++ {
		if input[i] == ',' && assignmentPrefix.MatchString(input[i+1:]) {
			b.WriteByte('\n')
			for i+1 < len(input) && isSpace(input[i+1]) {
				i++
			}
			continue
		}
		b.WriteByte(input[i])
	}
	return b.String()
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
