package terminal

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shell"
)

// DefaultBufferLines bounds the output kept for polling readers.
const DefaultBufferLines = 1000

// Buffer is a thread-safe ring of rendered lines. When full, the oldest line is
// dropped.
type Buffer struct {
	mu    sync.Mutex
	lines []shell.Line
	head  int
	count int
}

// NewBuffer creates a buffer holding at most size lines.
func NewBuffer(size int) *Buffer {
	if size <= 0 {
		size = DefaultBufferLines
	}
	return &Buffer{lines: make([]shell.Line, size)}
}

// Write appends lines. A clear line empties the buffer instead of being stored.
func (b *Buffer) Write(lines ...shell.Line) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, line := range lines {
		if line.Kind == shell.KindClear {
			b.head, b.count = 0, 0
			continue
		}
		tail := (b.head + b.count) % len(b.lines)
		b.lines[tail] = line
		if b.count == len(b.lines) {
			b.head = (b.head + 1) % len(b.lines)
		} else {
			b.count++
		}
	}
}

// Drain returns every buffered line in order and empties the buffer.
func (b *Buffer) Drain() []shell.Line {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]shell.Line, b.count)
	for i := range out {
		out[i] = b.lines[(b.head+i)%len(b.lines)]
	}
	b.head, b.count = 0, 0
	return out
}

// Len reports the number of buffered lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID         string    `json:"id"`
	Prompt     string    `json:"prompt"`
	Cwd        string    `json:"cwd"`
	Commands   int       `json:"commands"`
	Buffered   int       `json:"buffered"`
	StartedAt  time.Time `json:"started_at"`
	LastActive time.Time `json:"last_active"`
}
