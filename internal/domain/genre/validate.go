package genre

import (
	"fmt"
	"unicode/utf8"

	"github.com/takinabradley/mdn-local-library/pkg/webform"
)

// 名称长度约束的唯一权威定义
// 说明:校验器与持久层schema都从这里取值,避免同一约束在两处各写一份魔数
const (
	NameMinLen = 3
	NameMaxLen = 100
)

// Form 图书类型表单的原始提交值
type Form struct {
	Name string `form:"name" json:"name"`
}

// ParseForm 清洗并校验表单,返回候选实体与有序错误列表
// 规则:
// 1. 先清洗(去首尾空白+转义标记字符),再做长度校验
// 2. 错误列表非空时候选实体仍然返回(携带清洗后的值,用于表单回显)
// 3. 候选实体不带ID,更新流程由调用方保留原ID
func ParseForm(f Form) (*Genre, webform.Errors) {
	name := webform.Sanitize(f.Name)

	var errs webform.Errors
	length := utf8.RuneCountInString(name)
	if length < NameMinLen {
		errs.Add(fmt.Sprintf("类型名称至少需要%d个字符", NameMinLen))
	}
	if length > NameMaxLen {
		errs.Add(fmt.Sprintf("类型名称不能超过%d个字符", NameMaxLen))
	}

	return New(name), errs
}
