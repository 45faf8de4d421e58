package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todo-api/internal/model"
)

// TaskRepository handles CRUD for tasks. Ownership is resolved through
// the parent list, never by a user column on the task itself.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) ListByList(ctx context.Context, listID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("list_id = ?", listID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindByIDOwned fetches a task only when its parent list belongs to the
// given user.
func (r *TaskRepository) FindByIDOwned(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).
		Joins("JOIN lists ON lists.id = tasks.list_id").
		Where("tasks.id = ? AND lists.user_id = ?", taskID, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update applies the given fields and returns the refreshed row. Reports
// gorm.ErrRecordNotFound when the row vanished between the ownership
// check and the write.
func (r *TaskRepository) Update(ctx context.Context, taskID uint, fields map[string]interface{}) (*model.Task, error) {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.Task{}).Where("id = ?", taskID).Updates(fields)
	if res.Error != nil {
		return nil, fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var task model.Task
	if err := db.First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, taskID)
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Task{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}
