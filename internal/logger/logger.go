package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the path to the session log, relative to the working directory.
const LogFilePath = "logs/winter.txt"

// Level is the severity of a log line.
type Level int

const (
	Info Level = iota
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger keeps every line in memory (the terminal shows them) and appends it to a file.
// Safe for use from loader goroutines.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
	now   func() time.Time
}

// New returns a Logger writing to LogFilePath and ensures the logs directory exists.
func New() *Logger {
	return NewAt(LogFilePath)
}

// NewAt returns a Logger writing to path. An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0), now: time.Now}
}

// Log records an info line. Kept for terminal echo, which has no severity.
func (l *Logger) Log(line string) {
	l.write(Info, line)
}

// Infof records a formatted info line.
func (l *Logger) Infof(format string, args ...any) {
	l.write(Info, fmt.Sprintf(format, args...))
}

// Warnf records a formatted warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.write(Warn, fmt.Sprintf(format, args...))
}

// Errorf records a formatted error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write(Error, fmt.Sprintf(format, args...))
}

// write prefixes the entry with [timestamp] and, above info, the level.
func (l *Logger) write(level Level, line string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line
	if level != Info {
		stamped = "[" + ts + "] " + level.String() + " " + line
	}

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
