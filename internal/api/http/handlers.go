package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/api/middleware"
	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/service"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/auth"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Version is reported by the root handler.
const Version = "1.0.0"

// DefaultDiscoverLimit caps discovery results when the request names no limit.
const DefaultDiscoverLimit = 5

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *service.Registry
	auth     *auth.Authenticator
	fs       *vfs.FileSystem
	metrics  *HandlerMetrics
	logger   *zap.Logger
}

// NewHandlers creates a new handler set. authenticator and metrics may be nil.
func NewHandlers(
	registry *service.Registry,
	authenticator *auth.Authenticator,
	fs *vfs.FileSystem,
	metrics *HandlerMetrics,
	logger *zap.Logger,
) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		registry: registry,
		auth:     authenticator,
		fs:       fs,
		metrics:  metrics,
		logger:   logger.Named("http"),
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "Ubuntu Web Desktop (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	files, dirs := h.fs.Counts()

	c.JSON(http.StatusOK, gin.H{
		"status":           "healthy",
		"service_registry": h.registry.Stats(),
		"filesystem":       gin.H{"files": files, "directories": dirs},
		"auth":             gin.H{"enabled": h.auth != nil},
	})
}

// ListServices lists all available services
func (h *Handlers) ListServices(c *gin.Context) {
	defer h.metrics.Track(c, "list")()

	var category *types.Category
	if raw := c.Query("category"); raw != "" {
		cat := types.Category(raw)
		if !types.ValidCategory(cat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + raw})
			return
		}
		category = &cat
	}

	c.JSON(http.StatusOK, gin.H{
		"services": h.registry.List(category),
		"stats":    h.registry.Stats(),
	})
}

// DiscoverServices discovers relevant services for an intent
func (h *Handlers) DiscoverServices(c *gin.Context) {
	defer h.metrics.Track(c, "discover")()

	var req types.DiscoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Intent) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "intent cannot be empty"})
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultDiscoverLimit
	}

	c.JSON(http.StatusOK, gin.H{
		"intent":   req.Intent,
		"services": h.registry.Discover(req.Intent, limit),
	})
}

// ExecuteService executes a service tool
func (h *Handlers) ExecuteService(c *gin.Context) {
	defer h.metrics.Track(c, "execute")()

	var req types.ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !strings.Contains(req.ToolID, ".") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tool_id must be <service>.<tool>"})
		return
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	ctx := req.Context
	if user := c.GetString(middleware.ContextUserKey); user != "" {
		if ctx == nil {
			ctx = &types.Context{}
		}
		ctx.UserID = &user
	}

	result, err := h.registry.Execute(c.Request.Context(), req.ToolID, req.Params, ctx)
	if err != nil {
		h.logger.Error("service execution failed", zap.String("tool_id", req.ToolID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Login unlocks the desktop
func (h *Handlers) Login(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "login is not configured"})
		return
	}

	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Username != "" && req.Username != h.auth.Username() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrIncorrectPassword.Error()})
		return
	}

	session, err := h.auth.Login(req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, auth.LoginData(session))
}

// Logout revokes the caller's bearer token
func (h *Handlers) Logout(c *gin.Context) {
	if h.auth == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "login is not configured"})
		return
	}
	token := middleware.BearerToken(c)
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_out": h.auth.Logout(token)})
}
