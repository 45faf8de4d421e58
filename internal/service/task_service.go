package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"todo-api/internal/model"
	"todo-api/internal/repository"
)

// TaskInput represents data required to create a task.
type TaskInput struct {
	ListID      uint
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// TaskUpdate represents a full update of an existing task.
type TaskUpdate struct {
	Title       string
	Description string
	Status      string
	Priority    string
	DueDate     *time.Time
}

// TaskService wraps task-related business logic. Ownership always runs
// through the parent list, so a task is reachable only by the user who
// owns the list it sits in.
type TaskService struct {
	tasks *repository.TaskRepository
	lists *repository.ListRepository
}

func NewTaskService(tasks *repository.TaskRepository, lists *repository.ListRepository) *TaskService {
	return &TaskService{tasks: tasks, lists: lists}
}

// ListByList returns the tasks of a list the user owns, newest first.
func (s *TaskService) ListByList(ctx context.Context, userID, listID uint) ([]model.Task, error) {
	if _, err := s.lists.FindByID(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return s.tasks.ListByList(ctx, listID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	task, err := s.tasks.FindByIDOwned(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Create adds a task to a list the user owns. An unknown priority value
// silently becomes the default rather than failing the request.
func (s *TaskService) Create(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if input.ListID == 0 || input.Title == "" {
		return nil, ErrListAndTitleRequired
	}

	if _, err := s.lists.FindByID(ctx, userID, input.ListID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	priority := input.Priority
	if !model.ValidPriority(priority) {
		priority = model.PriorityMedium
	}

	task := model.Task{
		ListID:      input.ListID,
		Title:       input.Title,
		Description: input.Description,
		Status:      model.StatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
	}
	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Update rewrites a task. Unknown status or priority values keep the
// task's current value instead of failing — note the contrast with
// Create, which falls back to a fixed default, and UpdateStatus, which
// rejects outright.
func (s *TaskService) Update(ctx context.Context, userID, taskID uint, input TaskUpdate) (*model.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	current, err := s.tasks.FindByIDOwned(ctx, userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	status := input.Status
	if !model.ValidStatus(status) {
		status = current.Status
	}
	priority := input.Priority
	if !model.ValidPriority(priority) {
		priority = current.Priority
	}

	task, err := s.tasks.Update(ctx, taskID, map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
		"status":      status,
		"priority":    priority,
		"due_date":    input.DueDate,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID uint) error {
	if _, err := s.tasks.FindByIDOwned(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}

// UpdateStatus changes only the status. Unlike Update it has no
// fallback: a missing or unknown status fails the request.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID uint, status string) (*model.Task, error) {
	if status == "" {
		return nil, ErrStatusRequired
	}
	if !model.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.tasks.FindByIDOwned(ctx, userID, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	task, err := s.tasks.Update(ctx, taskID, map[string]interface{}{"status": status})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}
