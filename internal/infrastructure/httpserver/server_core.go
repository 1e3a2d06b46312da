package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookblog/server/internal/core/ports"
	customMiddleware "github.com/bookblog/server/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	BookService        ports.BookService
	CategoryService    ports.CategoryService
	UserService        ports.UserService
	ResponseService    ports.ResponseService
	VisitService       ports.VisitService
	AuthService        ports.AuthService
	RateLimiterService ports.RateLimiterService
	LogExportService   ports.LogExportService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	bookService     ports.BookService
	categoryService ports.CategoryService
	userService     ports.UserService
	responseService ports.ResponseService
	visitService    ports.VisitService
	logExports      ports.LogExportService
	authSvc         ports.AuthService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		bookService:     deps.BookService,
		categoryService: deps.CategoryService,
		userService:     deps.UserService,
		responseService: deps.ResponseService,
		visitService:    deps.VisitService,
		logExports:      deps.LogExportService,
		authSvc:         deps.AuthService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.AuthService,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
