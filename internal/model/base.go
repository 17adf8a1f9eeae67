package model

import (
	"fmt"
	"strings"
)

// ── 可选字段辅助 ──

// Label 读取可选文本字段；nil 或空串视为缺失，空白字符串原样保留
func Label(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

// StringPtr 返回字符串指针；空串返回 nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// displayCode 未设置编号时按 "前缀-0001" 规则生成展示编号
func displayCode(prefix string, id int64, code *string) string {
	if c, ok := Label(code); ok {
		return c
	}
	return fmt.Sprintf("%s-%04d", prefix, id)
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
