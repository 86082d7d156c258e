package author

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/takinabradley/mdn-local-library/pkg/webform"
)

// 姓名长度约束的唯一权威定义
const (
	NameMaxLen = 100
)

// dateLayout 表单提交的日期格式
const dateLayout = "2006-01-02"

// Form 作者表单的原始提交值
type Form struct {
	FirstName   string `form:"first_name" json:"first_name"`
	FamilyName  string `form:"family_name" json:"family_name"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// ParseForm 清洗并校验表单,返回候选实体与有序错误列表
// 规则:
// 1. 名/姓必填,不超过NameMaxLen个字符
// 2. 生卒日期可选,填写时必须是YYYY-MM-DD格式
// 3. 错误列表非空时候选实体仍然返回(携带清洗后的值,用于表单回显)
func ParseForm(f Form) (*Author, webform.Errors) {
	first := webform.Sanitize(f.FirstName)
	family := webform.Sanitize(f.FamilyName)

	var errs webform.Errors

	if first == "" {
		errs.Add("名字必须填写")
	} else if utf8.RuneCountInString(first) > NameMaxLen {
		errs.Add(fmt.Sprintf("名字不能超过%d个字符", NameMaxLen))
	}

	if family == "" {
		errs.Add("姓氏必须填写")
	} else if utf8.RuneCountInString(family) > NameMaxLen {
		errs.Add(fmt.Sprintf("姓氏不能超过%d个字符", NameMaxLen))
	}

	birth := parseDate(f.DateOfBirth, "出生日期格式不正确(应为YYYY-MM-DD)", &errs)
	death := parseDate(f.DateOfDeath, "去世日期格式不正确(应为YYYY-MM-DD)", &errs)

	if birth != nil && death != nil && death.Before(*birth) {
		errs.Add("去世日期不能早于出生日期")
	}

	return &Author{
		FirstName:   first,
		FamilyName:  family,
		DateOfBirth: birth,
		DateOfDeath: death,
	}, errs
}

// parseDate 解析可选日期字段,空串表示未填写
func parseDate(raw, message string, errs *webform.Errors) *time.Time {
	value := webform.Sanitize(raw)
	if value == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		errs.Add(message)
		return nil
	}
	return &t
}
