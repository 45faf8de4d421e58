package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/repository"
	"todo-api/internal/server"
	"todo-api/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokenSvc := auth.NewTokenService(cfg.JWTSecret)
	gate := auth.NewGate(tokenSvc)

	authSvc := service.NewAuthService(userRepo, tokenSvc)
	listSvc := service.NewListService(listRepo)
	taskSvc := service.NewTaskService(taskRepo, listRepo)
	statsSvc := service.NewStatsService(userRepo, listRepo, taskRepo)

	srv := server.New(cfg, gate, authSvc, listSvc, taskSvc)

	scheduler := service.NewSchedulerService(time.Local)
	if cfg.StatsInterval > 0 {
		if _, err := scheduler.ScheduleInterval(cfg.StatsInterval, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := statsSvc.Report(jobCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("stats: %v", err)
			}
		}); err != nil {
			log.Fatalf("schedule stats: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	go func() {
		if err := srv.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server stopped with error: %v", err)
		}
	}()
	log.Printf("[info] todo API listening on :%s (%s)", cfg.Port, cfg.Env)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
