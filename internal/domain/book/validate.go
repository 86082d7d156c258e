package book

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/takinabradley/mdn-local-library/pkg/webform"
)

// 书名长度约束的唯一权威定义
const (
	TitleMaxLen = 200
)

// isbnPattern ISBN格式:10位或13位数字
var isbnPattern = regexp.MustCompile(`^(\d{10}|\d{13})$`)

// Form 图书表单的原始提交值
// AuthorID/GenreID以字符串提交(来自表单下拉选择),解析失败视为校验错误
type Form struct {
	Title    string `form:"title" json:"title"`
	Summary  string `form:"summary" json:"summary"`
	ISBN     string `form:"isbn" json:"isbn"`
	AuthorID string `form:"author_id" json:"author_id"`
	GenreID  string `form:"genre_id" json:"genre_id"`
}

// ParseForm 清洗并校验表单,返回候选实体与有序错误列表
// 规则:
// 1. 书名必填,不超过TitleMaxLen个字符
// 2. 简介必填
// 3. ISBN必填且为10位或13位数字
// 4. 作者/图书类型必须选择且为合法ID(被引用记录是否实际存在由控制器查库校验)
func ParseForm(f Form) (*Book, webform.Errors) {
	title := webform.Sanitize(f.Title)
	summary := webform.Sanitize(f.Summary)
	isbn := webform.Sanitize(f.ISBN)

	var errs webform.Errors

	if title == "" {
		errs.Add("书名必须填写")
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		errs.Add(fmt.Sprintf("书名不能超过%d个字符", TitleMaxLen))
	}

	if summary == "" {
		errs.Add("内容简介必须填写")
	}

	if !isbnPattern.MatchString(isbn) {
		errs.Add("ISBN格式不正确(应为10位或13位数字)")
	}

	authorID := parseRef(f.AuthorID, "必须选择作者", &errs)
	genreID := parseRef(f.GenreID, "必须选择图书类型", &errs)

	return &Book{
		Title:    title,
		Summary:  summary,
		ISBN:     isbn,
		AuthorID: authorID,
		GenreID:  genreID,
	}, errs
}

// parseRef 解析外键字段,必须是正整数
func parseRef(raw, message string, errs *webform.Errors) uint {
	value := webform.Sanitize(raw)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil || id == 0 {
		errs.Add(message)
		return 0
	}
	return uint(id)
}
