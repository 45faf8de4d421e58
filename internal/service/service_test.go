package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"todo-api/internal/auth"
	"todo-api/internal/model"
	"todo-api/internal/repository"
)

type testEnv struct {
	auth  *AuthService
	lists *ListService
	tasks *TaskService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	tokens := auth.NewTokenService("test-secret")

	return &testEnv{
		auth:  NewAuthService(userRepo, tokens),
		lists: NewListService(listRepo),
		tasks: NewTaskService(taskRepo, listRepo),
	}
}

func (env *testEnv) registerUser(t *testing.T, username string) *model.User {
	t.Helper()
	user, _, err := env.auth.Register(context.Background(), username, username+"@example.com", "secret1")
	require.NoError(t, err)
	return user
}

func (env *testEnv) createList(t *testing.T, userID uint, title string) *model.List {
	t.Helper()
	list, err := env.lists.Create(context.Background(), userID, title, "")
	require.NoError(t, err)
	return list
}

func (env *testEnv) createTask(t *testing.T, userID uint, input TaskInput) *model.Task {
	t.Helper()
	task, err := env.tasks.Create(context.Background(), userID, input)
	require.NoError(t, err)
	return task
}
