package genre

import (
	"context"
)

// Repository 图书类型仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书类型,成功后回填存储分配的ID
	// 归一化键唯一索引冲突时返回ErrNameDuplicate
	Create(ctx context.Context, g *Genre) error

	// FindByID 根据ID查找,未找到时返回ErrGenreNotFound
	FindByID(ctx context.Context, id uint) (*Genre, error)

	// FindByName 按自然键等值查找(英文语言环境,忽略大小写与重音)
	// 未找到时返回ErrGenreNotFound;重复检测器假定至多存在一条匹配
	FindByName(ctx context.Context, name string) (*Genre, error)

	// Update 按ID整体覆盖更新(替换语义)
	// 归一化键唯一索引冲突时返回ErrNameDuplicate
	Update(ctx context.Context, g *Genre) error

	// Delete 根据ID删除,未找到时返回ErrGenreNotFound
	Delete(ctx context.Context, id uint) error

	// List 查询全部图书类型,按名称升序(存储默认排序规则)
	// 空存储返回空切片,不是错误
	List(ctx context.Context) ([]*Genre, error)
}
