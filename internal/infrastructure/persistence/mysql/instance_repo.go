package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/takinabradley/mdn-local-library/internal/domain/bookinstance"
	apperrors "github.com/takinabradley/mdn-local-library/pkg/errors"
)

// instanceRepository 馆藏副本仓储实现(MySQL)
type instanceRepository struct {
	db *gorm.DB
}

// NewInstanceRepository 创建馆藏副本仓储
func NewInstanceRepository(db *gorm.DB) bookinstance.Repository {
	return &instanceRepository{db: db}
}

// Create 创建副本
func (r *instanceRepository) Create(ctx context.Context, i *bookinstance.Instance) error {
	model := &BookInstanceModel{
		BookID:  i.BookID,
		Imprint: i.Imprint,
		Status:  string(i.Status),
		DueBack: i.DueBack,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建馆藏副本失败")
	}

	i.ID = model.ID
	return nil
}

// FindByID 根据ID查找副本
func (r *instanceRepository) FindByID(ctx context.Context, id uint) (*bookinstance.Instance, error) {
	var model BookInstanceModel
	err := r.db.WithContext(ctx).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookinstance.ErrInstanceNotFound
		}
		return nil, apperrors.Wrap(err, "查询馆藏副本失败")
	}
	return toInstanceEntity(&model), nil
}

// FindByBookID 查询指定图书的全部副本
func (r *instanceRepository) FindByBookID(ctx context.Context, bookID uint) ([]*bookinstance.Instance, error) {
	var models []BookInstanceModel
	err := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询馆藏副本列表失败")
	}

	instances := make([]*bookinstance.Instance, len(models))
	for i := range models {
		instances[i] = toInstanceEntity(&models[i])
	}
	return instances, nil
}

// Delete 根据ID删除副本
func (r *instanceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&BookInstanceModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除馆藏副本失败")
	}
	if result.RowsAffected == 0 {
		return bookinstance.ErrInstanceNotFound
	}
	return nil
}

// toInstanceEntity GORM模型 → 领域实体
func toInstanceEntity(model *BookInstanceModel) *bookinstance.Instance {
	return &bookinstance.Instance{
		ID:      model.ID,
		BookID:  model.BookID,
		Imprint: model.Imprint,
		Status:  bookinstance.Status(model.Status),
		DueBack: model.DueBack,
	}
}
