package terminal

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shell"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// ErrSessionNotFound is returned for unknown or killed session ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionGauge tracks the number of live sessions.
type SessionGauge interface {
	SetSessionsActive(count int)
}

// Session is one terminal: an interpreter plus its output buffer.
type Session struct {
	ID        string
	StartedAt time.Time

	mu         sync.Mutex
	interp     *shell.Interpreter
	output     *Buffer
	lastActive time.Time
}

func (s *Session) info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SessionInfo{
		ID:         s.ID,
		Prompt:     s.interp.Prompt(),
		Cwd:        s.interp.Session().Cwd(),
		Commands:   len(s.interp.Session().History()),
		Buffered:   s.output.Len(),
		StartedAt:  s.StartedAt,
		LastActive: s.lastActive,
	}
}

// Manager manages terminal sessions
type Manager struct {
	fs          *vfs.FileSystem
	shellConfig shell.Config
	bufferLines int
	gauge       SessionGauge
	logger      *zap.Logger
	now         func() time.Time

	sessions sync.Map // map[string]*Session
	count    atomic.Int64
}

// NewManager creates a session manager. Every session gets an interpreter built from
// cfg over fs.
func NewManager(fs *vfs.FileSystem, cfg shell.Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &Manager{
		fs:          fs,
		shellConfig: cfg,
		bufferLines: DefaultBufferLines,
		logger:      logger.Named("terminal"),
		now:         now,
	}
}

// SetGauge attaches an active-session gauge.
func (m *Manager) SetGauge(g SessionGauge) {
	m.gauge = g
}

// CreateSession starts a session in the configured home directory
func (m *Manager) CreateSession() SessionInfo {
	now := m.now()
	session := &Session{
		ID:         id.NewSessionID().String(),
		StartedAt:  now,
		interp:     shell.New(m.fs, m.shellConfig),
		output:     NewBuffer(m.bufferLines),
		lastActive: now,
	}
	m.sessions.Store(session.ID, session)
	m.updateGauge(m.count.Add(1))

	m.logger.Debug("session created", zap.String("session_id", session.ID))
	return session.info()
}

// Execute runs one input line in a session and returns the rendered lines.
func (m *Manager) Execute(sessionID, input string) ([]shell.Line, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	lines := session.interp.Execute(input)
	session.output.Write(lines...)
	session.lastActive = m.now()

	m.logger.Debug("command executed",
		zap.String("session_id", sessionID),
		zap.String("input", input),
		zap.Int("lines", len(lines)),
	)
	return lines, nil
}

// Read drains buffered output from a session
func (m *Manager) Read(sessionID string) ([]shell.Line, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return nil, err
	}
	return session.output.Drain(), nil
}

// History returns the recorded input lines and the cursor.
func (m *Manager) History(sessionID string) ([]string, int, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return nil, 0, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.interp.Session().History(), session.interp.Session().Cursor(), nil
}

// HistoryPrev moves the history cursor back and returns the line to show.
func (m *Manager) HistoryPrev(sessionID string) (string, error) {
	return m.step(sessionID, (*shell.Session).Previous)
}

// HistoryNext moves the history cursor forward and returns the line to show.
func (m *Manager) HistoryNext(sessionID string) (string, error) {
	return m.step(sessionID, (*shell.Session).Next)
}

func (m *Manager) step(sessionID string, move func(*shell.Session) string) (string, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return "", err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return move(session.interp.Session()), nil
}

// Kill terminates a session
func (m *Manager) Kill(sessionID string) error {
	if _, loaded := m.sessions.LoadAndDelete(sessionID); !loaded {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	m.updateGauge(m.count.Add(-1))
	m.logger.Debug("session killed", zap.String("session_id", sessionID))
	return nil
}

// ListSessions returns all sessions, oldest first
func (m *Manager) ListSessions() []SessionInfo {
	sessions := []SessionInfo{}
	m.sessions.Range(func(_, value interface{}) bool {
		sessions = append(sessions, value.(*Session).info())
		return true
	})

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].StartedAt.Equal(sessions[j].StartedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})
	return sessions
}

// GetSession retrieves session info
func (m *Manager) GetSession(sessionID string) (SessionInfo, error) {
	session, err := m.get(sessionID)
	if err != nil {
		return SessionInfo{}, err
	}
	return session.info(), nil
}

func (m *Manager) get(sessionID string) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return value.(*Session), nil
}

func (m *Manager) updateGauge(count int64) {
	if m.gauge != nil {
		m.gauge.SetSessionsActive(int(count))
	}
}
