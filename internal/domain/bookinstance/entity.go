package bookinstance

import (
	"fmt"
	"time"
)

// Status 馆藏副本状态
type Status string

const (
	StatusAvailable   Status = "Available"   // 在馆可借
	StatusOnLoan      Status = "Loaned"      // 借出
	StatusMaintenance Status = "Maintenance" // 维护中
	StatusReserved    Status = "Reserved"    // 已预约
)

// Instance 馆藏副本实体
// 设计说明:
// 1. 每个副本按BookID弱引用一种图书;存在副本时对应Book禁止删除
// 2. DueBack仅在借出/预约状态下有意义,可选
type Instance struct {
	ID      uint
	BookID  uint   // 图书ID(弱引用)
	Imprint string // 版次/出版信息
	Status  Status
	DueBack *time.Time
}

// URL 详情页路径
func (i *Instance) URL() string {
	return fmt.Sprintf("/catalog/bookinstance/%d", i.ID)
}

// DueBackFormatted 应还日期的可读格式,未设置时返回空字符串
func (i *Instance) DueBackFormatted() string {
	if i.DueBack == nil {
		return ""
	}
	return i.DueBack.Format("Jan 2, 2006")
}
