package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/takinabradley/mdn-local-library/internal/domain/genre"
	"github.com/takinabradley/mdn-local-library/pkg/collation"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// genreRepository 图书类型仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/genre/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 写入时计算归一化键(name_key),等值查找与唯一约束都走这一列;
//    唯一索引冲突转换为genre.ErrNameDuplicate业务错误
type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建图书类型仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

// Create 创建图书类型
func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{
		Name:    g.Name,
		NameKey: collation.Key(g.Name),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建图书类型失败")
	}

	g.ID = model.ID
	return nil
}

// FindByID 根据ID查找图书类型
func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书类型失败")
	}
	return toGenreEntity(&model), nil
}

// FindByName 按归一化键等值查找(忽略大小写与重音)
func (r *genreRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	var model GenreModel
	err := r.db.WithContext(ctx).
		Where("name_key = ?", collation.Key(name)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书类型失败")
	}
	return toGenreEntity(&model), nil
}

// Update 按ID整体覆盖更新
func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	updates := map[string]any{
		"name":     g.Name,
		"name_key": collation.Key(g.Name),
	}

	err := r.db.WithContext(ctx).
		Model(&GenreModel{}).
		Where("id = ?", g.ID).
		Updates(updates).Error
	if err != nil {
		if isDuplicateError(err) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新图书类型失败")
	}
	return nil
}

// Delete 根据ID删除图书类型
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&GenreModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书类型失败")
	}
	if result.RowsAffected == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

// List 查询全部图书类型,按名称原文升序
// 列表排序走区分大小写的序数比较,与去重用的归一化键是两套规则
func (r *genreRepository) List(ctx context.Context) ([]*genre.Genre, error) {
	var models []GenreModel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书类型列表失败")
	}

	genres := make([]*genre.Genre, len(models))
	for i := range models {
		genres[i] = toGenreEntity(&models[i])
	}
	return genres, nil
}

// toGenreEntity GORM模型 → 领域实体
func toGenreEntity(model *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:   model.ID,
		Name: model.Name,
	}
}
