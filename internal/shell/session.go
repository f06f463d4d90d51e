package shell

// Session is the per-terminal state: working directory, input history and the
// history cursor. The cursor ranges over [0, len(history)].
type Session struct {
	cwd     string
	history []string
	cursor  int
}

func newSession(cwd string) *Session {
	return &Session{cwd: cwd}
}

// Cwd returns the canonical working directory.
func (s *Session) Cwd() string { return s.cwd }

// History returns a copy of the recorded input lines.
func (s *Session) History() []string {
	out := make([]string, len(s.history))
	copy(out, s.history)
	return out
}

// Cursor returns the history cursor.
func (s *Session) Cursor() int { return s.cursor }

func (s *Session) record(line string) {
	s.history = append(s.history, line)
	s.cursor = len(s.history)
}

// Previous moves the cursor back one entry and returns the line to show. With no
// history it returns "" and leaves the cursor alone.
func (s *Session) Previous() string {
	if len(s.history) == 0 {
		return ""
	}
	if s.cursor > 0 {
		s.cursor--
	}
	return s.history[s.cursor]
}

// Next moves the cursor forward one entry. Reaching the end yields an empty line.
func (s *Session) Next() string {
	if len(s.history) == 0 {
		return ""
	}
	if s.cursor < len(s.history) {
		s.cursor++
	}
	if s.cursor == len(s.history) {
		return ""
	}
	return s.history[s.cursor]
}
