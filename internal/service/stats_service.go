package service

import (
	"context"
	"log"

	"todo-api/internal/repository"
)

// StatsService reports row counts for operational logging.
type StatsService struct {
	users *repository.UserRepository
	lists *repository.ListRepository
	tasks *repository.TaskRepository
}

func NewStatsService(users *repository.UserRepository, lists *repository.ListRepository, tasks *repository.TaskRepository) *StatsService {
	return &StatsService{users: users, lists: lists, tasks: tasks}
}

// Report logs current storage totals.
func (s *StatsService) Report(ctx context.Context) error {
	users, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	lists, err := s.lists.Count(ctx)
	if err != nil {
		return err
	}
	tasks, err := s.tasks.Count(ctx)
	if err != nil {
		return err
	}

	log.Printf("[info] storage stats: users=%d lists=%d tasks=%d", users, lists, tasks)
	return nil
}
