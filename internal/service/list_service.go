package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"todo-api/internal/model"
	"todo-api/internal/repository"
)

// ListService wraps list-related business logic. Every operation is
// scoped to the calling user; lists owned by others look absent.
type ListService struct {
	lists *repository.ListRepository
}

func NewListService(lists *repository.ListRepository) *ListService {
	return &ListService{lists: lists}
}

func (s *ListService) ListAll(ctx context.Context, userID uint) ([]model.List, error) {
	return s.lists.ListByUser(ctx, userID)
}

func (s *ListService) Get(ctx context.Context, userID, listID uint) (*model.List, error) {
	list, err := s.lists.FindByID(ctx, userID, listID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return list, nil
}

func (s *ListService) Create(ctx context.Context, userID uint, title, description string) (*model.List, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	list := model.List{
		UserID:      userID,
		Title:       title,
		Description: description,
	}
	if err := s.lists.Create(ctx, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (s *ListService) Update(ctx context.Context, userID, listID uint, title, description string) (*model.List, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	if _, err := s.lists.FindByID(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}

	list, err := s.lists.Update(ctx, userID, listID, title, description)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return list, nil
}

// Delete removes a list and all of its tasks.
func (s *ListService) Delete(ctx context.Context, userID, listID uint) error {
	if _, err := s.lists.FindByID(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return err
	}

	if err := s.lists.Delete(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrListNotFound
		}
		return err
	}
	return nil
}
