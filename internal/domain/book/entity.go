package book

import "fmt"

// Book 图书实体
// 设计说明:
// 1. AuthorID/GenreID是弱引用:只保存标识符,查询时再按需关联,
//    任何实体都不拥有另一个实体,删除不级联
// 2. Title作为自然键参与去重(忽略大小写与重音)
// 3. ISBN仅做格式校验(10位或13位数字),不作为去重依据
// 4. Book被BookInstance引用,存在副本时禁止删除
type Book struct {
	ID       uint
	Title    string // 书名(自然键)
	Summary  string // 内容简介
	ISBN     string // ISBN号(国际标准书号)
	AuthorID uint   // 作者ID(弱引用)
	GenreID  uint   // 图书类型ID(弱引用)
}

// URL 详情页路径
func (b *Book) URL() string {
	return fmt.Sprintf("/catalog/book/%d", b.ID)
}

// ListURL 列表页路径
const ListURL = "/catalog/books"

// SummaryView 列表/引用展示用的最小投影
// 删除确认页需要展示"哪些图书阻止了删除",只取标题与简介
type SummaryView struct {
	ID      uint   `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

// ToSummary 生成最小投影
func (b *Book) ToSummary() SummaryView {
	return SummaryView{ID: b.ID, Title: b.Title, Summary: b.Summary}
}
