package author

import (
	"context"
)

// Repository 作者仓储接口
// 与genre.Repository同构:生命周期控制器对每种实体使用同一组存储原语
type Repository interface {
	// Create 创建作者,成功后回填存储分配的ID
	// 归一化键唯一索引冲突时返回ErrNameDuplicate
	Create(ctx context.Context, a *Author) error

	// FindByID 根据ID查找,未找到时返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	// FindByName 按展示名("姓, 名")等值查找,忽略大小写与重音
	// 未找到时返回ErrAuthorNotFound
	FindByName(ctx context.Context, name string) (*Author, error)

	// Update 按ID整体覆盖更新(替换语义)
	Update(ctx context.Context, a *Author) error

	// Delete 根据ID删除,未找到时返回ErrAuthorNotFound
	Delete(ctx context.Context, id uint) error

	// List 查询全部作者,按姓氏+名字升序
	List(ctx context.Context) ([]*Author, error)
}
