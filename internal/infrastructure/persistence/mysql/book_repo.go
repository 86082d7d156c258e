package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/takinabradley/mdn-local-library/internal/domain/book"
	"github.com/takinabradley/mdn-local-library/pkg/collation"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// bookRepository 图书仓储实现(MySQL)
// 除生命周期原语外,还提供按外键(author_id/genre_id)的引用查询,
// 供删除前的引用检查器使用
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:    b.Title,
		TitleKey: collation.Key(b.Title),
		Summary:  b.Summary,
		ISBN:     b.ISBN,
		AuthorID: b.AuthorID,
		GenreID:  b.GenreID,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByTitle 按归一化书名键等值查找
func (r *bookRepository) FindByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := r.db.WithContext(ctx).
		Where("title_key = ?", collation.Key(title)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByGenreID 查询引用指定图书类型的全部图书
func (r *bookRepository) FindByGenreID(ctx context.Context, genreID uint) ([]*book.Book, error) {
	return r.findAll(ctx, "genre_id = ?", genreID)
}

// FindByAuthorID 查询指定作者名下的全部图书
func (r *bookRepository) FindByAuthorID(ctx context.Context, authorID uint) ([]*book.Book, error) {
	return r.findAll(ctx, "author_id = ?", authorID)
}

// Update 按ID整体覆盖更新
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	updates := map[string]any{
		"title":     b.Title,
		"title_key": collation.Key(b.Title),
		"summary":   b.Summary,
		"isbn":      b.ISBN,
		"author_id": b.AuthorID,
		"genre_id":  b.GenreID,
	}

	err := r.db.WithContext(ctx).
		Model(&BookModel{}).
		Where("id = ?", b.ID).
		Updates(updates).Error
	if err != nil {
		if isDuplicateError(err) {
			return book.ErrTitleDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Delete 根据ID删除图书
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 查询全部图书,按书名原文升序
// 列表排序走区分大小写的序数比较,与去重用的归一化键是两套规则
func (r *bookRepository) List(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).Order("title ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

func (r *bookRepository) findAll(ctx context.Context, query string, args ...any) ([]*book.Book, error) {
	var models []BookModel
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("title ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:       model.ID,
		Title:    model.Title,
		Summary:  model.Summary,
		ISBN:     model.ISBN,
		AuthorID: model.AuthorID,
		GenreID:  model.GenreID,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}
