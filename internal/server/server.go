package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/service"
)

// Server wires the HTTP layer: routing, middleware and handlers.
type Server struct {
	echo    *echo.Echo
	cfg     config.Config
	authSvc *service.AuthService
	listSvc *service.ListService
	taskSvc *service.TaskService
	started time.Time
}

func New(cfg config.Config, gate *auth.Gate, authSvc *service.AuthService, listSvc *service.ListService, taskSvc *service.TaskService) *Server {
	s := &Server{
		echo:    echo.New(),
		cfg:     cfg,
		authSvc: authSvc,
		listSvc: listSvc,
		taskSvc: taskSvc,
		started: time.Now(),
	}

	e := s.echo
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.Secure())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     corsOrigins(cfg),
		AllowCredentials: true,
	}))
	e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStore(rate.Limit(100)),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, echo.Map{
				"error":   "Too many requests",
				"message": "Too many requests from this IP, please try again later.",
			})
		},
	}))

	e.GET("/health", s.health)

	api := e.Group("/api")
	api.GET("", s.apiIndex)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.GET("/profile", s.profile, gate.Required)

	lists := api.Group("/lists", gate.Required)
	lists.GET("", s.listLists)
	lists.GET("/:id", s.getList)
	lists.POST("", s.createList)
	lists.PUT("/:id", s.updateList)
	lists.DELETE("/:id", s.deleteList)

	tasks := api.Group("/tasks", gate.Required)
	tasks.GET("/list/:listId", s.listTasks)
	tasks.GET("/:id", s.getTask)
	tasks.POST("", s.createTask)
	tasks.PUT("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)
	tasks.PATCH("/:id/status", s.updateTaskStatus)

	e.RouteNotFound("/*", s.notFound)

	return s
}

// Handler exposes the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func corsOrigins(cfg config.Config) []string {
	if cfg.Production() {
		return []string{"https://yourdomain.com"}
	}
	return []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:5173"}
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "OK",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"uptime":      time.Since(s.started).Seconds(),
		"environment": s.cfg.Env,
	})
}

func (s *Server) apiIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Todo List API",
		"version": "1.0.0",
		"endpoints": echo.Map{
			"auth": echo.Map{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
				"profile":  "GET /api/auth/profile",
			},
			"lists": echo.Map{
				"getAll": "GET /api/lists",
				"getOne": "GET /api/lists/:id",
				"create": "POST /api/lists",
				"update": "PUT /api/lists/:id",
				"delete": "DELETE /api/lists/:id",
			},
			"tasks": echo.Map{
				"getByList":    "GET /api/tasks/list/:listId",
				"getOne":       "GET /api/tasks/:id",
				"create":       "POST /api/tasks",
				"update":       "PUT /api/tasks/:id",
				"delete":       "DELETE /api/tasks/:id",
				"updateStatus": "PATCH /api/tasks/:id/status",
			},
		},
		"authentication": "Bearer Token required for all endpoints except /api/auth/*",
	})
}

func (s *Server) notFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"error":              "Not Found",
		"message":            "Route " + c.Request().URL.Path + " not found",
		"availableEndpoints": "/api",
	})
}
