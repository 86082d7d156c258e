package book

import (
	"context"
)

// Repository 图书仓储接口
// 除与genre/author同构的生命周期原语外,还提供按外键查询的能力,
// 供引用检查器使用(删除Genre/Author前查出所有引用它的图书)
type Repository interface {
	// Create 创建图书,成功后回填存储分配的ID
	// 归一化键唯一索引冲突时返回ErrTitleDuplicate
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找,未找到时返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByTitle 按书名等值查找,忽略大小写与重音
	// 未找到时返回ErrBookNotFound
	FindByTitle(ctx context.Context, title string) (*Book, error)

	// FindByGenreID 查询引用指定图书类型的全部图书
	// 返回完整列表而非计数,调用方需要展示"哪些图书阻止了删除"
	FindByGenreID(ctx context.Context, genreID uint) ([]*Book, error)

	// FindByAuthorID 查询指定作者名下的全部图书
	FindByAuthorID(ctx context.Context, authorID uint) ([]*Book, error)

	// Update 按ID整体覆盖更新(替换语义)
	Update(ctx context.Context, b *Book) error

	// Delete 根据ID删除,未找到时返回ErrBookNotFound
	Delete(ctx context.Context, id uint) error

	// List 查询全部图书,按书名升序
	List(ctx context.Context) ([]*Book, error)
}
