package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"todo-api/internal/auth"
	"todo-api/internal/model"
	"todo-api/internal/service"
)

type createTaskRequest struct {
	ListID      uint       `json:"listId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

type updateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

type taskStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) listTasks(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	listID, ok := paramID(c, "listId")
	if !ok {
		return s.serviceError(c, service.ErrListNotFound, "")
	}

	tasks, err := s.taskSvc.ListByList(c.Request().Context(), claims.UserID, listID)
	if err != nil {
		return s.serviceError(c, err, "Error fetching tasks")
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return dataJSON(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

func (s *Server) getTask(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrTaskNotFound, "")
	}

	task, err := s.taskSvc.Get(c.Request().Context(), claims.UserID, taskID)
	if err != nil {
		return s.serviceError(c, err, "Error fetching task")
	}

	return dataJSON(c, http.StatusOK, "Task retrieved successfully", task)
}

func (s *Server) createTask(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	task, err := s.taskSvc.Create(c.Request().Context(), claims.UserID, service.TaskInput{
		ListID:      req.ListID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return s.serviceError(c, err, "Error creating task")
	}

	return dataJSON(c, http.StatusCreated, "Task created successfully", task)
}

func (s *Server) updateTask(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrTaskNotFound, "")
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	task, err := s.taskSvc.Update(c.Request().Context(), claims.UserID, taskID, service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return s.serviceError(c, err, "Error updating task")
	}

	return dataJSON(c, http.StatusOK, "Task updated successfully", task)
}

func (s *Server) deleteTask(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrTaskNotFound, "")
	}

	if err := s.taskSvc.Delete(c.Request().Context(), claims.UserID, taskID); err != nil {
		return s.serviceError(c, err, "Error deleting task")
	}

	return dataJSON(c, http.StatusOK, "Task deleted successfully", echo.Map{"id": taskID})
}

func (s *Server) updateTaskStatus(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrTaskNotFound, "")
	}

	var req taskStatusRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	task, err := s.taskSvc.UpdateStatus(c.Request().Context(), claims.UserID, taskID, req.Status)
	if err != nil {
		return s.serviceError(c, err, "Error updating task status")
	}

	return dataJSON(c, http.StatusOK, "Task status updated successfully", task)
}
