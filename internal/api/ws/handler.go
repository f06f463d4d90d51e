package ws

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/domain/service"
	"github.com/GriffinCanCode/WebDesk/backend/internal/providers/terminal"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// WelcomeMessage is sent once per connection.
const WelcomeMessage = "Connected to Ubuntu Web Desktop (Go)"

const (
	watchBuffer = 128
	writeWait   = 10 * time.Second
)

// Recorder receives connection and message counts.
type Recorder interface {
	IncWSConnections()
	DecWSConnections()
	RecordWSMessage(direction, msgType string)
}

// Handler manages WebSocket connections
type Handler struct {
	fs        *vfs.FileSystem
	terminals *terminal.Manager
	registry  *service.Registry
	recorder  Recorder
	logger    *zap.Logger
	origins   []string
	upgrader  websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. registry and recorder may be nil.
func NewHandler(fs *vfs.FileSystem, terminals *terminal.Manager, registry *service.Registry, recorder Recorder, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		fs:        fs,
		terminals: terminals,
		registry:  registry,
		recorder:  recorder,
		logger:    logger,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// WithOrigins restricts upgrades to the listed origins. An empty list or "*"
// accepts any origin.
func (h *Handler) WithOrigins(origins ...string) *Handler {
	h.origins = origins
	return h
}

// checkOrigin matches the Origin header against the configured list. Requests
// without an Origin header come from non-browser clients and are accepted.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.origins) == 0 {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// conn serializes writes; gorilla allows one concurrent writer.
type conn struct {
	ws       *websocket.Conn
	mu       sync.Mutex
	recorder Recorder
}

func (c *conn) send(data map[string]interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(data); err != nil {
		return err
	}
	if c.recorder != nil {
		if t, ok := data["type"].(string); ok {
			c.recorder.RecordWSMessage("out", t)
		}
	}
	return nil
}

func (c *conn) sendError(message string) error {
	return c.send(map[string]interface{}{
		"type":      "error",
		"message":   message,
		"timestamp": time.Now().Unix(),
	})
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	if h.recorder != nil {
		h.recorder.IncWSConnections()
		defer h.recorder.DecWSConnections()
	}

	cn := &conn{ws: ws, recorder: h.recorder}
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Subscribe before the welcome so no change after it is missed.
	var events <-chan vfs.Event
	if h.fs != nil {
		events = h.fs.Watch(ctx, watchBuffer)
	}

	if err := cn.send(map[string]interface{}{
		"type":    "system",
		"message": WelcomeMessage,
	}); err != nil {
		return
	}

	if events != nil {
		go forwardEvents(ctx, cn, events)
	}

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		if h.recorder != nil {
			h.recorder.RecordWSMessage("in", msg.Type)
		}

		var sendErr error
		switch msg.Type {
		case "ping":
			sendErr = cn.send(map[string]interface{}{"type": "pong"})
		case "terminal_exec":
			sendErr = h.handleTerminal(cn, msg)
		case "execute":
			sendErr = h.handleExecute(ctx, cn, msg)
		default:
			sendErr = cn.sendError("unknown message type: " + msg.Type)
		}
		if sendErr != nil {
			h.logger.Debug("websocket write failed", zap.Error(sendErr))
			return
		}
	}
}

func forwardEvents(ctx context.Context, cn *conn, events <-chan vfs.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			err := cn.send(map[string]interface{}{
				"type": "fs_changed",
				"data": ev,
			})
			if err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleTerminal(cn *conn, msg types.WSMessage) error {
	if h.terminals == nil {
		return cn.sendError("terminal unavailable")
	}
	if msg.SessionID == "" {
		return cn.sendError("session_id required")
	}

	lines, err := h.terminals.Execute(msg.SessionID, msg.Input)
	if err != nil {
		return cn.sendError(err.Error())
	}
	info, err := h.terminals.GetSession(msg.SessionID)
	if err != nil {
		return cn.sendError(err.Error())
	}

	return cn.send(map[string]interface{}{
		"type":       "terminal_output",
		"session_id": msg.SessionID,
		"lines":      lines,
		"prompt":     info.Prompt,
		"cwd":        info.Cwd,
	})
}

func (h *Handler) handleExecute(ctx context.Context, cn *conn, msg types.WSMessage) error {
	if h.registry == nil {
		return cn.sendError("services unavailable")
	}
	toolID, _ := msg.Data["tool_id"].(string)
	if toolID == "" {
		return cn.sendError("tool_id required")
	}
	params, _ := msg.Data["params"].(map[string]interface{})
	if params == nil {
		params = map[string]interface{}{}
	}

	var appCtx *types.Context
	if msg.SessionID != "" {
		sessionID := msg.SessionID
		appCtx = &types.Context{SessionID: &sessionID}
	}

	result, err := h.registry.Execute(ctx, toolID, params, appCtx)
	if err != nil && result == nil {
		return cn.sendError(err.Error())
	}
	return cn.send(map[string]interface{}{
		"type":    "result",
		"tool_id": toolID,
		"result":  result,
	})
}
