package shell

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// ErrCommandNotFound is reported, never returned to callers, when a verb is unknown.
var ErrCommandNotFound = errors.New("command not found")

// LineKind tells the consumer how to style a rendered line.
type LineKind string

const (
	KindCommand LineKind = "command"
	KindOutput  LineKind = "output"
	KindError   LineKind = "error"
	// KindClear asks the consumer to drop everything rendered so far.
	KindClear LineKind = "clear"
)

// Line is one rendered line of terminal output.
type Line struct {
	Kind LineKind `json:"kind"`
	Text string   `json:"text"`
}

// Editor is the text editor collaborator that open and nano hand files to.
type Editor interface {
	Open(path string) error
}

// CommandRecorder receives one call per executed verb.
type CommandRecorder interface {
	RecordCommand(command string, status string)
}

// Config carries the interpreter's environment. Zero values fall back to the stock
// desktop user.
type Config struct {
	User     string
	Host     string
	Home     string
	Editor   Editor
	Packages map[string]string
	Clock    func() time.Time
	Logger   *zap.Logger
	Recorder CommandRecorder
}

const (
	DefaultUser = "ubuntu"
	DefaultHost = "web"
	DefaultHome = "/home/ubuntu"
)

type handler func(args []string) ([]string, error)

// Interpreter runs command lines for one session. It is not safe for concurrent use;
// callers serialize access per session.
type Interpreter struct {
	fs       *vfs.FileSystem
	session  *Session
	user     string
	host     string
	home     string
	editor   Editor
	packages map[string]string
	now      func() time.Time
	logger   *zap.Logger
	recorder CommandRecorder
	commands map[string]handler
}

// New creates an interpreter whose session starts in the home directory.
func New(fs *vfs.FileSystem, cfg Config) *Interpreter {
	in := &Interpreter{
		fs:       fs,
		user:     cfg.User,
		host:     cfg.Host,
		home:     cfg.Home,
		editor:   cfg.Editor,
		packages: cfg.Packages,
		now:      cfg.Clock,
		logger:   cfg.Logger,
		recorder: cfg.Recorder,
	}
	if in.user == "" {
		in.user = DefaultUser
	}
	if in.host == "" {
		in.host = DefaultHost
	}
	if in.home == "" {
		in.home = DefaultHome
	}
	in.home = vfs.Resolve(in.home, "/")
	if in.packages == nil {
		in.packages = DefaultPackages()
	}
	if in.now == nil {
		in.now = time.Now
	}
	if in.logger == nil {
		in.logger = zap.NewNop()
	}

	in.session = newSession(in.home)
	in.commands = in.builtins()
	return in
}

// Session exposes the interpreter's session state.
func (in *Interpreter) Session() *Session { return in.session }

// Home returns the home directory used for "~" and bare cd.
func (in *Interpreter) Home() string { return in.home }

// Prompt renders user@host:dir$ for the current directory.
func (in *Interpreter) Prompt() string {
	return fmt.Sprintf("%s@%s:%s$", in.user, in.host, vfs.DisplayPath(in.session.cwd, in.home))
}

// Execute runs one input line and returns everything it rendered, starting with the
// command echo.
func (in *Interpreter) Execute(raw string) []Line {
	line := strings.TrimSpace(raw)
	in.session.record(line)

	lines := []Line{{Kind: KindCommand, Text: in.Prompt() + " " + line}}
	if line == "" {
		return lines
	}

	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return lines
	}
	verb, args := tokens[0], tokens[1:]

	run, ok := in.commands[verb]
	if !ok {
		in.record("unknown", "not_found")
		in.logger.Debug("unknown command", zap.String("command", verb), zap.Error(ErrCommandNotFound))
		return append(lines, Line{Kind: KindError, Text: "Command not found: " + verb})
	}

	output, err := in.invoke(verb, run, args)
	if err != nil {
		in.record(verb, "error")
		return append(lines, Line{Kind: KindError, Text: err.Error()})
	}

	in.record(verb, "success")
	for _, text := range output {
		lines = append(lines, Line{Kind: KindOutput, Text: text})
	}
	if verb == "clear" {
		lines = append(lines, Line{Kind: KindClear})
	}
	return lines
}

// invoke runs a handler, turning a panic into an ordinary command failure.
func (in *Interpreter) invoke(verb string, run handler, args []string) (output []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			in.logger.Error("command panicked",
				zap.String("command", verb),
				zap.Any("panic", r),
			)
			output, err = nil, fmt.Errorf("%s: internal error", verb)
		}
	}()

	in.logger.Debug("executing command",
		zap.String("command", verb),
		zap.Strings("args", args),
		zap.String("cwd", in.session.cwd),
	)
	return run(args)
}

func (in *Interpreter) record(command, status string) {
	if in.recorder != nil {
		in.recorder.RecordCommand(command, status)
	}
}
