package system

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Device facts shown in Settings and system.info.
const (
	DeviceName  = "ubuntu-web"
	OSVersion   = "Ubuntu Web Desktop 22.04"
	SyslogPath  = "/var/log/syslog"
	DefaultTail = 20
)

var levels = map[string]struct{}{"debug": {}, "info": {}, "warn": {}, "error": {}}

// Provider implements system information and logging
type Provider struct {
	fs        *vfs.FileSystem
	startTime time.Time
	now       func() time.Time
	logs      *CircularLogBuffer
	appendMu  sync.Mutex
}

// NewProvider creates a system provider over fs
func NewProvider(fs *vfs.FileSystem) *Provider {
	return &Provider{
		fs:        fs,
		startTime: time.Now(),
		now:       time.Now,
		logs:      NewCircularLogBuffer(1000),
	}
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "system",
		Name:        "System Service",
		Description: "Device information, clock and the system log",
		Category:    types.CategorySystem,
		Capabilities: []string{
			"info",
			"logging",
		},
		Tools: []types.Tool{
			{ID: "system.info", Name: "System Info", Description: "Device name, OS version, uptime and runtime", Parameters: []types.Parameter{}, Returns: "object"},
			{ID: "system.time", Name: "Current Time", Description: "Get current server time", Parameters: []types.Parameter{}, Returns: "object"},
			{
				ID:          "system.log",
				Name:        "Log Message",
				Description: "Append a message to the system log",
				Parameters: []types.Parameter{
					{Name: "message", Type: "string", Description: "Log message", Required: true},
					{Name: "level", Type: "string", Description: "Log level (debug/info/warn/error)", Required: false},
				},
				Returns: "boolean",
			},
			{
				ID:          "system.logs",
				Name:        "Tail Syslog",
				Description: "Last lines of /var/log/syslog",
				Parameters: []types.Parameter{
					{Name: "lines", Type: "number", Description: "Number of lines (default 20)", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "system.getLogs",
				Name:        "Get Logs",
				Description: "Recent structured log entries, newest first",
				Parameters: []types.Parameter{
					{Name: "limit", Type: "number", Description: "Number of logs to retrieve", Required: false},
					{Name: "level", Type: "string", Description: "Filter by log level", Required: false},
				},
				Returns: "array",
			},
			{ID: "system.ping", Name: "Ping", Description: "Test service availability", Parameters: []types.Parameter{}, Returns: "object"},
		},
	}
}

// Execute runs a system operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "system.info":
		return s.info()
	case "system.time":
		return s.currentTime()
	case "system.log":
		return s.log(params, appCtx)
	case "system.logs":
		return s.tail(params)
	case "system.getLogs":
		return s.getLogs(params)
	case "system.ping":
		return types.Success(map[string]interface{}{"pong": true, "timestamp": s.now().Unix()})
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (s *Provider) info() (*types.Result, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	files, dirs := s.fs.Counts()

	uptime := s.now().Sub(s.startTime)
	return types.Success(map[string]interface{}{
		"device_name":    DeviceName,
		"os_version":     OSVersion,
		"processor":      fmt.Sprintf("Go %s simulated (%s/%s)", runtime.Version(), runtime.GOOS, runtime.GOARCH),
		"memory":         "Virtual",
		"go_version":     runtime.Version(),
		"cpus":           runtime.NumCPU(),
		"goroutines":     runtime.NumGoroutine(),
		"memory_alloc":   m.Alloc / 1024 / 1024, // MB
		"uptime_seconds": uptime.Seconds(),
		"uptime":         uptime.Truncate(time.Second).String(),
		"files":          files,
		"directories":    dirs,
	})
}

func (s *Provider) currentTime() (*types.Result, error) {
	now := s.now()
	return types.Success(map[string]interface{}{
		"timestamp": now.Unix(),
		"iso":       now.Format(time.RFC3339),
		"unix_ms":   now.UnixMilli(),
		"display":   now.Format(shell.DateLayout),
	})
}

func (s *Provider) log(params map[string]interface{}, ctx *types.Context) (*types.Result, error) {
	message, ok := params["message"].(string)
	message = strings.TrimSpace(message)
	if !ok || message == "" {
		return types.Failure("message required")
	}

	level := "info"
	if l, ok := params["level"].(string); ok && l != "" {
		level = strings.ToLower(l)
	}
	if _, known := levels[level]; !known {
		return types.Failure(fmt.Sprintf("unknown level: %s", level))
	}

	entry := &LogEntry{Timestamp: s.now(), Level: level, Message: message}
	if ctx != nil && ctx.WindowID != nil {
		entry.WindowID = *ctx.WindowID
	}
	s.logs.Add(entry)

	if err := s.appendSyslog(entry); err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"logged": true, "path": SyslogPath})
}

// appendSyslog serializes read-modify-write of the syslog file.
func (s *Provider) appendSyslog(entry *LogEntry) error {
	line := fmt.Sprintf("%s %s %s: %s", entry.Timestamp.Format(time.Stamp), DeviceName, strings.ToUpper(entry.Level), entry.Message)

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	existing := ""
	if s.fs.FileExists(SyslogPath, "/") {
		content, err := s.fs.ReadFile(SyslogPath, "/")
		if err != nil {
			return err
		}
		existing = content
	}
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		existing += "\n"
	}
	_, err := s.fs.WriteFile(SyslogPath, "/", existing+line)
	return err
}

func (s *Provider) tail(params map[string]interface{}) (*types.Result, error) {
	n := DefaultTail
	if l, ok := params["lines"].(float64); ok && l > 0 {
		n = int(l)
	}

	content, err := s.fs.ReadFile(SyslogPath, "/")
	if err != nil {
		return types.Failure(err.Error())
	}
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return types.Success(map[string]interface{}{"lines": lines, "count": len(lines), "path": SyslogPath})
}

func (s *Provider) getLogs(params map[string]interface{}) (*types.Result, error) {
	limit := 100
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}
	levelFilter, _ := params["level"].(string)

	logs := s.logs.GetRecent(limit, levelFilter)
	return types.Success(map[string]interface{}{
		"logs":  logs,
		"count": len(logs),
	})
}
