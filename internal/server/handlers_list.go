package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todo-api/internal/auth"
	"todo-api/internal/model"
	"todo-api/internal/service"
)

type listRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// paramID parses a numeric path parameter. A malformed id behaves like a
// row that does not exist, so callers report NotFound rather than a
// separate bad-request shape.
func paramID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func (s *Server) listLists(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}

	lists, err := s.listSvc.ListAll(c.Request().Context(), claims.UserID)
	if err != nil {
		return s.serviceError(c, err, "Error fetching lists")
	}
	if lists == nil {
		lists = []model.List{}
	}

	return dataJSON(c, http.StatusOK, "Lists retrieved successfully", lists)
}

func (s *Server) getList(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	listID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrListNotFound, "")
	}

	list, err := s.listSvc.Get(c.Request().Context(), claims.UserID, listID)
	if err != nil {
		return s.serviceError(c, err, "Error fetching list")
	}

	return dataJSON(c, http.StatusOK, "List retrieved successfully", list)
}

func (s *Server) createList(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	list, err := s.listSvc.Create(c.Request().Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		return s.serviceError(c, err, "Error creating list")
	}

	return dataJSON(c, http.StatusCreated, "List created successfully", list)
}

func (s *Server) updateList(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	listID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrListNotFound, "")
	}

	var req listRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	list, err := s.listSvc.Update(c.Request().Context(), claims.UserID, listID, req.Title, req.Description)
	if err != nil {
		return s.serviceError(c, err, "Error updating list")
	}

	return dataJSON(c, http.StatusOK, "List updated successfully", list)
}

func (s *Server) deleteList(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}
	listID, ok := paramID(c, "id")
	if !ok {
		return s.serviceError(c, service.ErrListNotFound, "")
	}

	if err := s.listSvc.Delete(c.Request().Context(), claims.UserID, listID); err != nil {
		return s.serviceError(c, err, "Error deleting list")
	}

	return dataJSON(c, http.StatusOK, "List deleted successfully", echo.Map{"id": listID})
}
