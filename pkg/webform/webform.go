// Package webform 提供表单字段的清洗与校验错误收集
//
// 设计说明：
// 1. 所有自由文本字段在进一步校验前先做清洗：去首尾空白 + 转义HTML特殊字符
// 2. 校验错误是有序的用户可读消息列表，一条违反规则对应一条消息，
//    空列表表示校验通过；错误会随清洗后的值一起回显到表单，绝不上抛为失败
package webform

import (
	"html"
	"strings"
)

// Sanitize 清洗单个自由文本字段
// 规则：去除首尾空白，转义 < > & ' " 等对标记语言有意义的字符
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Errors 有序的校验错误消息列表
type Errors []string

// Add 追加一条错误消息
func (e *Errors) Add(message string) {
	*e = append(*e, message)
}

// HasErrors 是否存在校验错误
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Messages 返回底层消息切片（nil安全，空列表返回空切片便于JSON序列化为[]）
func (e Errors) Messages() []string {
	if e == nil {
		return []string{}
	}
	return e
}
