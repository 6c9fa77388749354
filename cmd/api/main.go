package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	natsbroker "github.com/Automan1218/gamevault-cloud2/internal/adapters/eventbroker/nats"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi"
	filehandler "github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi/v1/file"
	uploadhandler "github.com/Automan1218/gamevault-cloud2/internal/adapters/handlers/http/chi/v1/upload"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/repository/postgres"
	"github.com/Automan1218/gamevault-cloud2/internal/adapters/storage/minio"
	"github.com/Automan1218/gamevault-cloud2/internal/config"
	"github.com/Automan1218/gamevault-cloud2/internal/core/port"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/cleanup"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/file"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/storeevent"
	"github.com/Automan1218/gamevault-cloud2/internal/core/service/upload"
)

func main() {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			logger.Error("failed to close database", "error", err)
			os.Exit(1)
		}
	}(db)
	logger.Info("db connection established")

	//storage
	minioAdapter, err := minio.NewAdapter(ctx, cfg.Minio, logger)
	if err != nil {
		logger.Error("failed to init minio", "error", err)
		os.Exit(1)
	}

	//repositories
	unitOfWork := postgres.NewUnitOfWork(db)

	//services
	uploadService := upload.NewUploadService(unitOfWork, minioAdapter, cfg.Upload, logger)
	fileService := file.NewFileService(unitOfWork, minioAdapter, cfg.Upload, logger)
	cleanupService := cleanup.NewCleanupService(unitOfWork, minioAdapter, logger)
	storeEventService := storeevent.NewStoreEventService(unitOfWork, logger)

	//event broker
	consumer, err := natsbroker.NewNATSConsumer(cfg.NATS, logger)
	if err != nil {
		logger.Error("failed to init nats consumer", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			logger.Error("failed to close nats consumer", "error", err)
		}
	}()

	if err := consumer.Subscribe(ctx, storeEventService); err != nil {
		logger.Error("failed to subscribe to store events", "error", err)
		os.Exit(1)
	}

	//http
	uploadHandler := uploadhandler.NewUploadHandlerV1(uploadService, logger)
	fileHandler := filehandler.NewFileHandlerV1(fileService, logger)

	router := chi.NewRouter(logger, uploadHandler, fileHandler, cfg.Env.Env)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	// init cleanup task
	wg.Add(1)
	go func() {
		defer wg.Done()
		initCleanupTask(ctx, cleanupService, cfg.Upload.CleanupEvery, logger)
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down app")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("app shutdown complete")

}

func initDB(cfg config.DatabaseConfig) (*sql.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenCons)
	db.SetMaxIdleConns(cfg.MaxIdleCons)
	db.SetConnMaxLifetime(cfg.ConMaxLifeTime)

	return db, nil
}

func initCleanupTask(ctx context.Context, service port.CleanupService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("cleanup task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			logger.Info("cleanup task starting")
			err := service.CleanupExpiredTasks(ctx, time.Now())
			if err != nil {
				logger.Error("failed to cleanup expired tasks", "error", err)
			} else {
				logger.Info("cleanup task completed successfully")
			}
		case <-ctx.Done():
			logger.Info("cleanup task stopped")
			return
		}
	}

}
