package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// DateLayout renders the date command.
const DateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

var helpText = []string{
	"Available commands:",
	"  help               Show this help message",
	"  ls [path]          List directory contents",
	"  cd [path]          Change directory",
	"  pwd                Print working directory",
	"  cat <file>         Display text file contents",
	"  mkdir <dir>        Create directory",
	"  touch <file>       Create or update file timestamp",
	"  rm <file>          Remove file",
	"  history            Show command history",
	"  apt update|install Simulated APT commands",
	"  open <file>        Open text file in editor",
	"  nano <file>        Alias for open",
	"  date               Show current date",
	"  whoami             Display current user",
}

func (in *Interpreter) builtins() map[string]handler {
	return map[string]handler{
		"help":    in.help,
		"clear":   in.clear,
		"pwd":     in.pwd,
		"ls":      in.ls,
		"cd":      in.cd,
		"cat":     in.cat,
		"mkdir":   in.mkdir,
		"touch":   in.touch,
		"rm":      in.rm,
		"history": in.history,
		"apt":     in.apt,
		"open":    in.open,
		"nano":    in.open,
		"date":    in.date,
		"whoami":  in.whoami,
		"about":   in.about,
	}
}

// Commands lists the built-in verbs.
func (in *Interpreter) Commands() []string {
	names := make([]string, 0, len(in.commands))
	for name := range in.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (in *Interpreter) help([]string) ([]string, error) {
	out := make([]string, len(helpText))
	copy(out, helpText)
	return out, nil
}

func (in *Interpreter) clear([]string) ([]string, error) {
	return nil, nil
}

func (in *Interpreter) pwd([]string) ([]string, error) {
	return []string{in.session.cwd}, nil
}

func (in *Interpreter) whoami([]string) ([]string, error) {
	return []string{in.user}, nil
}

func (in *Interpreter) date([]string) ([]string, error) {
	return []string{in.now().Format(DateLayout)}, nil
}

func (in *Interpreter) about([]string) ([]string, error) {
	return []string{
		"Ubuntu Web Terminal",
		"A simulated shell backed by a shared virtual filesystem.",
	}, nil
}

// path expands "~" in a user-supplied argument.
func (in *Interpreter) path(arg string) string {
	return vfs.ExpandHome(arg, in.home)
}

func (in *Interpreter) ls(args []string) ([]string, error) {
	target := "."
	if len(args) > 0 {
		target = in.path(args[0])
	}

	entries, err := in.fs.List(target, in.session.cwd)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []string{""}, nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name+"/")
			continue
		}
		names = append(names, entry.Name)
	}
	return []string{strings.Join(names, "  ")}, nil
}

func (in *Interpreter) cd(args []string) ([]string, error) {
	target := in.home
	if len(args) > 0 {
		target = args[0]
	}

	resolved := in.fs.Resolve(in.path(target), in.session.cwd)
	if !in.fs.DirectoryExists(resolved, "/") {
		return nil, fmt.Errorf("cd: no such file or directory: %s", target)
	}
	in.session.cwd = resolved
	return nil, nil
}

func (in *Interpreter) cat(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("cat: missing file operand")
	}

	resolved := in.fs.Resolve(in.path(args[0]), in.session.cwd)
	if !in.fs.FileExists(resolved, "/") {
		return nil, fmt.Errorf("cat: %s: No such file", args[0])
	}
	if !vfs.IsText(resolved) {
		return nil, fmt.Errorf("cat: %s: Binary file contents hidden", args[0])
	}

	content, err := in.fs.ReadFile(resolved, "/")
	if err != nil {
		return nil, err
	}
	return strings.Split(content, "\n"), nil
}

func (in *Interpreter) mkdir(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("mkdir: missing operand")
	}
	for _, name := range args {
		if _, err := in.fs.MakeDir(in.path(name), in.session.cwd); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (in *Interpreter) touch(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("touch: missing file operand")
	}
	for _, name := range args {
		if _, err := in.fs.Touch(in.path(name), in.session.cwd); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (in *Interpreter) rm(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("rm: missing operand")
	}
	for _, name := range args {
		target := in.path(name)
		entry, ok := in.fs.Stat(target, in.session.cwd)
		if !ok {
			return nil, fmt.Errorf("rm: cannot remove '%s': No such file or directory", name)
		}
		if entry.IsDir() {
			return nil, fmt.Errorf("rm: cannot remove '%s': Is a directory", name)
		}
		if err := in.fs.Remove(target, in.session.cwd); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func (in *Interpreter) history([]string) ([]string, error) {
	out := make([]string, 0, len(in.session.history))
	for i, line := range in.session.history {
		out = append(out, strconv.Itoa(i+1)+"  "+line)
	}
	return out, nil
}

func (in *Interpreter) open(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("open: missing file operand")
	}

	resolved := in.fs.Resolve(in.path(args[0]), in.session.cwd)
	if !in.fs.FileExists(resolved, "/") {
		return nil, fmt.Errorf("open: cannot open '%s': No such file", args[0])
	}
	if !vfs.IsText(resolved) {
		return nil, fmt.Errorf("open: '%s' is not a supported text file", args[0])
	}

	if in.editor != nil {
		if err := in.editor.Open(resolved); err != nil {
			return nil, fmt.Errorf("open: %s: %w", args[0], err)
		}
	}
	return []string{fmt.Sprintf("Opening %s in Text Editor...", vfs.DisplayPath(resolved, in.home))}, nil
}
