package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/bookblog/server/configs"
	"github.com/bookblog/server/internal/application/services"
	"github.com/bookblog/server/internal/core/domain/book"
	"github.com/bookblog/server/internal/core/domain/category"
	"github.com/bookblog/server/internal/core/domain/logexport"
	"github.com/bookblog/server/internal/core/domain/response"
	"github.com/bookblog/server/internal/core/domain/user"
	"github.com/bookblog/server/internal/core/ports"
	"github.com/bookblog/server/internal/infrastructure/db"
	"github.com/bookblog/server/internal/infrastructure/health"
	"github.com/bookblog/server/internal/infrastructure/httpserver"
	"github.com/bookblog/server/internal/infrastructure/memcache"
	"github.com/bookblog/server/internal/infrastructure/redis"
	"github.com/bookblog/server/internal/infrastructure/repositories"
	"github.com/bookblog/server/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, closeLog := newLogger(cfg.Log)
	defer closeLog()
	logger.Info("Starting book blog server...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()
	logger.Info("Connected to database successfully")

	if err := database.Migrate("./migrations"); err != nil {
		logger.Fatal("Failed to run migrations:", err)
	}

	// Redis only backs the rate limiter
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis successfully")

	// In-process read caches, all sized from the same config
	cacheCfg := memcache.Config{MaxSize: cfg.Cache.MaxSize, TTL: cfg.Cache.TTL}
	bookByID := mustCache[int64, *book.Book]("books", cacheCfg, logger)
	bookLists := mustCache[string, []*book.Book]("book_lists", cacheCfg, logger)
	caches := &services.Caches{
		CategoryViews:  mustCache[int64, *category.CategoryWithUsers]("category_views", cacheCfg, logger),
		CategorySearch: mustCache[string, []*category.CategoryWithUsers]("category_search", cacheCfg, logger),
		UserProfiles:   mustCache[int64, *user.Profile]("user_profiles", cacheCfg, logger),
		UserResponses:  mustCache[int64, []*response.Response]("user_responses", cacheCfg, logger),
		BookLists:      bookLists,
	}
	logger.WithFields(logrus.Fields{"max_size": cfg.Cache.MaxSize, "ttl": cfg.Cache.TTL}).Info("In-process caches initialized")

	// Repositories
	bookRepo := repositories.NewCachingBookRepository(repositories.NewBookRepository(database, logger), bookByID, bookLists)
	categoryRepo := repositories.NewCategoryRepository(database, logger)
	userRepo := repositories.NewUserRepository(database, logger)
	responseRepo := repositories.NewResponseRepository(database, logger)
	visitRepo := repositories.NewVisitRepository(database, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// Services
	bookService := services.NewBookService(bookRepo, categoryRepo, caches, logger)
	categoryService := services.NewCategoryService(categoryRepo, caches, logger)
	userService := services.NewUserService(userRepo, categoryRepo, responseRepo, caches, logger)
	responseService := services.NewResponseService(responseRepo, userRepo, bookRepo, caches, logger)
	visitService := services.NewVisitService(visitRepo, utils.NewStripedMutex(cfg.Cache.VisitLockStripes), logger)
	authService := services.NewAuthService(userRepo, &cfg.JWT, logger)

	exportTasks := mustCache[string, *logexport.Task]("log_export_tasks",
		memcache.Config{MaxSize: cfg.LogExport.MaxTasks, TTL: cfg.LogExport.TaskTTL}, logger)
	logExportService := services.NewLogExportService(services.LogExportConfig{
		SourcePath: cfg.Log.File,
		OutputDir:  cfg.LogExport.Dir,
		Workers:    cfg.LogExport.Workers,
		QueueSize:  cfg.LogExport.QueueSize,
		Delay:      cfg.LogExport.Delay,
	}, exportTasks, logger)

	rateLimiterConfig := &services.RateLimiterConfig{
		DefaultRequestsPerMinute: cfg.RateLimit.DefaultRequestsPerMinute,
		BurstMultiplier:          cfg.RateLimit.BurstMultiplier,
		Window:                   cfg.RateLimit.Window,
		KeyPrefix:                cfg.RateLimit.KeyPrefix,
	}
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, rateLimiterConfig, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	serverConfig := &httpserver.ServerConfig{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		TLSCertFile:    cfg.Server.TLSCertFile,
		TLSKeyFile:     cfg.Server.TLSKeyFile,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Environment:    cfg.Server.Environment,
	}

	deps := httpserver.ServerDeps{
		BookService:        bookService,
		CategoryService:    categoryService,
		UserService:        userService,
		ResponseService:    responseService,
		VisitService:       visitService,
		AuthService:        authService,
		RateLimiterService: rateLimiterService,
		LogExportService:   logExportService,
		HealthCheckers:     hcSlice,
	}
	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}
	if err := logExportService.Close(); err != nil {
		logger.WithError(err).Warn("Log export workers did not stop cleanly")
	}

	logger.Info("Server exited")
}

// newLogger builds the process logger. With cfg.File set, lines also go to that file,
// which is the source of log exports.
func newLogger(cfg config.LogConfig) (*logrus.Logger, func()) {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		return logger, func() {}
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		logger.WithError(err).Warn("Log file directory unavailable, logging to stdout only")
		return logger, func() {}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.WithError(err).Warn("Log file unavailable, logging to stdout only")
		return logger, func() {}
	}
	logger.SetOutput(io.MultiWriter(os.Stderr, f))
	return logger, func() { _ = f.Close() }
}

func mustCache[K comparable, V any](name string, cfg memcache.Config, logger *logrus.Logger) *memcache.Cache[K, V] {
	c, err := memcache.New[K, V](name, cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create %s cache: %v", name, err)
	}
	return c
}
