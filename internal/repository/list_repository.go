package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/model"
)

// ListRepository handles CRUD for task lists, always scoped by owner.
type ListRepository struct {
	db *gorm.DB
}

func NewListRepository(db *gorm.DB) *ListRepository {
	return &ListRepository{db: db}
}

func (r *ListRepository) Create(ctx context.Context, list *model.List) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

func (r *ListRepository) ListByUser(ctx context.Context, userID uint) ([]model.List, error) {
	var lists []model.List
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// FindByID fetches a list only when it belongs to the given user.
func (r *ListRepository) FindByID(ctx context.Context, userID, listID uint) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// Update applies title and description to an owned list and returns the
// refreshed row. Reports gorm.ErrRecordNotFound when the row vanished
// between the ownership check and the write.
func (r *ListRepository) Update(ctx context.Context, userID, listID uint, title, description string) (*model.List, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.List{}).
		Where("id = ? AND user_id = ?", listID, userID).
		Updates(map[string]interface{}{"title": title, "description": description})
	if res.Error != nil {
		return nil, fmt.Errorf("update list: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var list model.List
	if err := db.First(&list, listID).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes an owned list together with all of its tasks in one
// transaction.
func (r *ListRepository) Delete(ctx context.Context, userID, listID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", listID, userID).Delete(&model.List{})
		if res.Error != nil {
			return fmt.Errorf("delete list: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("list_id = ?", listID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete list tasks: %w", err)
		}
		return nil
	})
}

func (r *ListRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.List{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count lists: %w", err)
	}
	return n, nil
}
