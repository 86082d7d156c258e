package bookinstance

import (
	"context"
)

// Repository 馆藏副本仓储接口
// 副本没有独立的生命周期控制器,仓储只提供引用检查与基础读写
type Repository interface {
	// Create 创建副本,成功后回填存储分配的ID
	Create(ctx context.Context, i *Instance) error

	// FindByID 根据ID查找,未找到时返回ErrInstanceNotFound
	FindByID(ctx context.Context, id uint) (*Instance, error)

	// FindByBookID 查询指定图书的全部副本
	// 删除Book前由引用检查器调用,返回完整列表供确认页展示
	FindByBookID(ctx context.Context, bookID uint) ([]*Instance, error)

	// Delete 根据ID删除,未找到时返回ErrInstanceNotFound
	Delete(ctx context.Context, id uint) error
}
