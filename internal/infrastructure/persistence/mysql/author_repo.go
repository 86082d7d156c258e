package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/takinabradley/mdn-local-library/internal/domain/author"
	"github.com/takinabradley/mdn-local-library/pkg/collation"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// authorRepository 作者仓储实现(MySQL)
// 归一化键按派生展示名("姓, 名")计算,与图书类型仓储同一套重复兜底机制
type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

// Create 创建作者
func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := &AuthorModel{
		FirstName:   a.FirstName,
		FamilyName:  a.FamilyName,
		NameKey:     collation.Key(a.Name()),
		DateOfBirth: a.DateOfBirth,
		DateOfDeath: a.DateOfDeath,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return author.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建作者失败")
	}

	a.ID = model.ID
	return nil
}

// FindByID 根据ID查找作者
func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// FindByName 按展示名的归一化键等值查找
func (r *authorRepository) FindByName(ctx context.Context, name string) (*author.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).
		Where("name_key = ?", collation.Key(name)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

// Update 按ID整体覆盖更新
// 日期字段用map承载,nil值才能写入(GORM的Updates跳过结构体零值)
func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	updates := map[string]any{
		"first_name":    a.FirstName,
		"family_name":   a.FamilyName,
		"name_key":      collation.Key(a.Name()),
		"date_of_birth": a.DateOfBirth,
		"date_of_death": a.DateOfDeath,
	}

	err := r.db.WithContext(ctx).
		Model(&AuthorModel{}).
		Where("id = ?", a.ID).
		Updates(updates).Error
	if err != nil {
		if isDuplicateError(err) {
			return author.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

// Delete 根据ID删除作者
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&AuthorModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除作者失败")
	}
	if result.RowsAffected == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

// List 查询全部作者,按姓氏+名字升序
func (r *authorRepository) List(ctx context.Context) ([]*author.Author, error) {
	var models []AuthorModel
	err := r.db.WithContext(ctx).
		Order("family_name ASC, first_name ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询作者列表失败")
	}

	authors := make([]*author.Author, len(models))
	for i := range models {
		authors[i] = toAuthorEntity(&models[i])
	}
	return authors, nil
}

// toAuthorEntity GORM模型 → 领域实体
func toAuthorEntity(model *AuthorModel) *author.Author {
	return &author.Author{
		ID:          model.ID,
		FirstName:   model.FirstName,
		FamilyName:  model.FamilyName,
		DateOfBirth: model.DateOfBirth,
		DateOfDeath: model.DateOfDeath,
	}
}
