package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sunlighthq/tasks-service/internal/api"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/auth"
	"github.com/sunlighthq/tasks-service/internal/infrastructure/client"
	"github.com/sunlighthq/tasks-service/internal/repository"
	"github.com/sunlighthq/tasks-service/internal/usecase"
	"github.com/sunlighthq/tasks-service/internal/worker"
)

func main() {
	var wg sync.WaitGroup

	pgCfg := client.Config{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "postgres"),
		Password: getenv("DB_PASSWORD", "postgres"),
		DBName:   getenv("DB_NAME", "sunlight_tasks"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}

	rabbitMQURL := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		getenv("RABBITMQ_USER", "guest"),
		getenv("RABBITMQ_PASSWORD", "guest"),
		getenv("RABBITMQ_HOST", "localhost"),
		getenv("RABBITMQ_PORT", "5672"))

	httpPort := getenv("HTTP_PORT", "8080")

	if err := runMigrations(pgCfg.URL()); err != nil {
		log.Fatal("❌ migrations failed: ", err)
	}

	db, err := client.NewPostgresClient(pgCfg)
	if err != nil {
		log.Fatal("❌ postgres connection failed: ", err)
	}
	defer db.Close()
	log.Println("✅ connected to postgres")

	rabbitMQ, err := client.NewRabbitMQClient(rabbitMQURL)
	if err != nil {
		log.Fatal("❌ rabbitmq connection failed: ", err)
	}
	defer rabbitMQ.Close()
	log.Println("✅ connected to rabbitmq")

	userRepo := repository.NewUserRepository(db.Pool)
	taskRepo := repository.NewTaskRepository(db.Pool)
	taskAuditRepo := repository.NewTaskAuditRepository(db.Pool)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db.Pool)

	jwtManager := auth.NewJWTManager()
	passwordManager := auth.NewPasswordManager()

	taskService := usecase.NewTaskService(taskRepo, rabbitMQ)
	authService := usecase.NewAuthService(userRepo, refreshTokenRepo, passwordManager, jwtManager)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	auditWorker := worker.NewAuditWorker(rabbitMQURL, taskAuditRepo)
	wg.Add(1)
	go func() {
		defer wg.Done()
		auditWorker.Start(workerCtx)
	}()

	router := api.NewRouter(taskService, authService, jwtManager, userRepo)
	server := &http.Server{
		Addr:    ":" + httpPort,
		Handler: router,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("✅ Sunlight Tasks API listening on :%s", httpPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("❌ http server error: %v", err)
		}
	}()

	waitForShutdown(server, workerCancel)
	wg.Wait()
	log.Println("✅ shut down cleanly")
}

func waitForShutdown(server *http.Server, workerCancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ http shutdown error: %v", err)
	}

	workerCancel()
}

func runMigrations(dbURL string) error {
	m, err := migrate.New("file://migrations", dbURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Println("✅ migrations applied")
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
