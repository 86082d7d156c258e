package genre

import "fmt"

// Genre 图书类型实体
// 设计说明:
// 1. Genre是目录中最小的聚合,只有一个自然键字段Name
// 2. 不变量:在"英文语言环境、忽略大小写与重音"的比较规则下,
//    不允许存在两个同名的Genre(由生命周期控制器的先查后写保证,
//    持久层的归一化键唯一索引作为并发写入时的兜底)
// 3. 与Book是弱引用关系:Book按GenreID引用Genre,删除Genre不级联
type Genre struct {
	ID   uint
	Name string
}

// New 创建新的图书类型(工厂方法)
// 参数name需是已清洗、已通过校验的值;ID由存储层在持久化时分配
func New(name string) *Genre {
	return &Genre{Name: name}
}

// URL 详情页路径(派生字段,按需计算,不持久化)
func (g *Genre) URL() string {
	return fmt.Sprintf("/catalog/genre/%d", g.ID)
}

// ListURL 列表页路径
const ListURL = "/catalog/genres"
