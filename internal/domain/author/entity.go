package author

import (
	"fmt"
	"time"
)

// Author 作者实体
// 设计说明:
// 1. 姓名拆分为FirstName/FamilyName两个必填字段,展示名是派生值
// 2. 生卒日期为可选字段,使用*time.Time表示"未填写"
// 3. 所有派生字段(Name/URL/日期投影)都是按需计算的纯函数,不持久化
type Author struct {
	ID          uint
	FirstName   string
	FamilyName  string
	DateOfBirth *time.Time
	DateOfDeath *time.Time
}

// Name 展示名:"姓, 名";任一部分缺失时返回空字符串
func (a *Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL 详情页路径
func (a *Author) URL() string {
	return fmt.Sprintf("/catalog/author/%d", a.ID)
}

// ListURL 列表页路径
const ListURL = "/catalog/authors"

// BirthFormatted 出生日期的可读格式,未填写时返回空字符串
func (a *Author) BirthFormatted() string {
	return formatDate(a.DateOfBirth)
}

// DeathFormatted 去世日期的可读格式,未填写时返回空字符串
func (a *Author) DeathFormatted() string {
	return formatDate(a.DateOfDeath)
}

// BirthISO 出生日期的YYYY-MM-DD格式,未填写时返回空字符串
func (a *Author) BirthISO() string {
	return formatISO(a.DateOfBirth)
}

// DeathISO 去世日期的YYYY-MM-DD格式,未填写时返回空字符串
func (a *Author) DeathISO() string {
	return formatISO(a.DateOfDeath)
}

// Lifespan 生卒区间,如"Jan 2, 1920 - Mar 4, 1999";两端缺失时对应为空
func (a *Author) Lifespan() string {
	return a.BirthFormatted() + " - " + a.DeathFormatted()
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func formatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
