package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	handlers "github.com/GriffinCanCode/WebDesk/backend/internal/api/http"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/WebDesk/backend/internal/api/ws"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/service"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/WebDesk/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/auth"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/browser"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/editor"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/files"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/filesystem"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/settings"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/system"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router    *gin.Engine
	http      *http.Server
	registry  *service.Registry
	fs        *vfs.FileSystem
	editor    *editor.Editor
	terminals *terminal.Manager
	auth      *auth.Authenticator
	tracer    *tracing.Tracer
	logger    *logging.Logger
	config    *config.Config
	metrics   *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return New(cfg, logger)
}

// New builds the server around an existing logger.
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing Ubuntu Web Desktop",
		zap.String("port", cfg.Server.Port),
		zap.String("user", cfg.Desktop.User),
		zap.String("hostname", cfg.Desktop.Hostname),
	)

	metrics := monitoring.NewMetrics()
	tracer := tracing.New("webdesk", logger.Logger)

	home := cfg.Desktop.Home()
	fs := vfs.New(loadSeed(cfg.Desktop, logger.Logger), logger.Logger).WithRecorder(metrics)
	seededFiles, seededDirs := fs.Counts()
	logger.Info("Filesystem seeded",
		zap.Int("files", seededFiles),
		zap.Int("directories", seededDirs),
	)

	authenticator, err := auth.NewAuthenticator(cfg.Desktop.User, cfg.Auth.Password, auth.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}
	authenticator.WithRecorder(metrics)

	textEditor := editor.New(fs, home, logger.Logger)
	fileManager := files.NewManager(fs, home, textEditor, logger.Logger).WithGauge(metrics)
	terminals := terminal.NewManager(fs, shell.Config{
		User:     cfg.Desktop.User,
		Host:     cfg.Desktop.Hostname,
		Home:     home,
		Editor:   textEditor,
		Logger:   logger.Named("shell"),
		Recorder: metrics,
	}, logger.Logger)
	terminals.SetGauge(metrics)
	store := settings.NewStore(logger.Logger).WithFilesystem(fs, settings.DefaultPath)

	registry := service.NewRegistry(logger.Logger)
	registry.SetRecorder(metrics)
	providers := []service.Provider{
		filesystem.NewProvider(fs, home),
		terminal.NewProvider(terminals),
		editor.NewProvider(textEditor),
		files.NewProvider(fileManager),
		browser.New(),
		settings.NewProvider(store),
		auth.NewProvider(authenticator),
		system.NewProvider(fs),
	}
	for _, p := range providers {
		if err := registry.Register(p); err != nil {
			return nil, fmt.Errorf("failed to register provider: %w", err)
		}
	}

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		limits := middleware.DefaultRateLimitConfig()
		limits.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		limits.Burst = cfg.RateLimit.Burst
		router.Use(middleware.RateLimit(limits))
	}
	if cfg.Auth.Required {
		logger.Info("Login required for API access")
		router.Use(middleware.RequireLogin(authenticator, "/", "/health", "/auth/login", "/metrics"))
	}

	h := handlers.NewHandlers(registry, authenticator, fs, handlers.NewHandlerMetrics(metrics), logger.Logger)
	wsHandler := ws.NewHandler(fs, terminals, registry, metrics, logger.Named("ws")).
		WithOrigins(cfg.Server.AllowOrigins...)

	router.GET("/", h.Root)
	router.GET("/health", h.Health)

	router.GET("/services", h.ListServices)
	router.POST("/services/discover", h.DiscoverServices)
	router.POST("/services/execute", h.ExecuteService)

	router.POST("/auth/login", h.Login)
	router.POST("/auth/logout", h.Logout)

	router.POST("/logs", h.StreamLogs)
	router.GET("/logs", h.GetLogs)

	router.GET("/stream", wsHandler.HandleConnection)

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", h.Stats)

	logger.Info("Server initialized successfully", zap.Int("services", len(providers)))

	return &Server{
		router:    router,
		registry:  registry,
		fs:        fs,
		editor:    textEditor,
		terminals: terminals,
		auth:      authenticator,
		tracer:    tracer,
		logger:    logger,
		config:    cfg,
		metrics:   metrics,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the service registry.
func (s *Server) Registry() *service.Registry {
	return s.registry
}

// FileSystem returns the shared filesystem.
func (s *Server) FileSystem() *vfs.FileSystem {
	return s.fs
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Addr()
	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and releases background resources.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var err error
	if s.http != nil {
		if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
			s.logger.Error("Failed to shut down HTTP server", zap.Error(shutdownErr))
			err = fmt.Errorf("failed to shut down http server: %w", shutdownErr)
		}
	}
	s.Close()
	return err
}

// Close releases background resources without touching the listener.
func (s *Server) Close() {
	s.editor.Close()
	s.tracer.Close()
	_ = s.logger.Sync()
}

func newLogger(cfg config.LogConfig) (*logging.Logger, error) {
	logCfg := logging.DefaultConfig()
	if cfg.Development {
		logCfg = logging.DevelopmentConfig()
	}
	if cfg.Level != "" {
		logCfg.Level = cfg.Level
	}
	return logging.New(logCfg)
}

// loadSeed builds the initial tree. Broken external sources are logged and
// skipped so the desktop still boots with the stock tree.
func loadSeed(cfg config.DesktopConfig, logger *zap.Logger) *vfs.Seed {
	seed := vfs.DefaultSeed()

	if cfg.SeedFile != "" {
		extra, err := vfs.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			logger.Warn("Failed to load seed file", zap.String("path", cfg.SeedFile), zap.Error(err))
		} else {
			seed.Merge(extra)
		}
	}

	if cfg.SeedDir != "" {
		extra, err := vfs.LoadSeedDir(cfg.SeedDir, cfg.SeedMount)
		if err != nil {
			logger.Warn("Failed to import seed directory", zap.String("path", cfg.SeedDir), zap.Error(err))
		} else {
			seed.Merge(extra)
		}
	}

	return seed
}
