// Package log provides category-tagged debug logging for txtreader.
// Output goes to a file opened through tea.LogToFile (stdout belongs to the
// TUI) and is enabled with --debug or TXTREADER_DEBUG. Recent entries are
// kept in memory and published for the in-app log overlay.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/azario0/prototypes-txt-reader/internal/pubsub"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Category groups related log messages.
type Category string

const (
	CatDoc      Category = "doc"      // file loading and decoding
	CatSearch   Category = "search"   // pattern compilation and match scans
	CatViewport Category = "viewport" // scroll/slider/gutter synchronisation
	CatUI       Category = "ui"       // component updates
	CatConfig   Category = "config"   // configuration loading/saving
	CatWatcher  Category = "watcher"  // file watcher events
	CatCache    Category = "cache"    // pattern cache
	CatTrace    Category = "trace"    // tracing provider
)

const defaultBufferSize = 500

// Logger writes formatted entries to w and keeps the most recent ones.
type Logger struct {
	mu       sync.Mutex
	w        io.Writer
	enabled  bool
	minLevel Level
	ring     []string
	next     int
	full     bool
	broker   *pubsub.Broker[string]
}

var (
	mu            sync.RWMutex
	defaultLogger *Logger
)

// New creates a logger that writes to w and remembers bufferSize entries.
func New(w io.Writer, bufferSize int) *Logger {
	if bufferSize < 1 {
		bufferSize = defaultBufferSize
	}
	return &Logger{
		w:        w,
		enabled:  true,
		minLevel: LevelDebug,
		ring:     make([]string, bufferSize),
		broker:   pubsub.NewBroker[string](),
	}
}

// Init opens path through tea.LogToFile and installs the global logger.
// The returned function closes the file.
func Init(path string) (func(), error) {
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("opening debug log: %w", err)
	}
	l := New(f, defaultBufferSize)
	SetDefault(l)
	return func() {
		l.broker.Close()
		_ = f.Close()
	}, nil
}

// SetDefault replaces the global logger. Passing nil disables logging.
func SetDefault(l *Logger) {
	mu.Lock()
	defaultLogger = l
	mu.Unlock()
}

func current() *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	current().log(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	current().log(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	current().log(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	current().log(LevelError, cat, msg, fields...)
}

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	current().log(LevelError, cat, msg, fields...)
}

func (l *Logger) log(level Level, cat Category, msg string, fields ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel {
		return
	}

	entry := Format(time.Now(), level, cat, msg, fields...)

	if l.w != nil {
		_, _ = io.WriteString(l.w, entry+"\n")
	}
	l.ring[l.next] = entry
	l.next = (l.next + 1) % len(l.ring)
	if l.next == 0 {
		l.full = true
	}
	l.broker.Publish(pubsub.AppendedEvent, entry)
}

// Format renders one entry:
// 2026-01-02T15:04:05 [ERROR] [search] message key=value key2=value2
func Format(ts time.Time, level Level, cat Category, msg string, fields ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] [%s] %s", ts.Format("2006-01-02T15:04:05"), level, cat, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	if len(fields)%2 != 0 {
		fmt.Fprintf(&b, " %v=<missing>", fields[len(fields)-1])
	}
	return b.String()
}

// Recent returns up to n buffered entries, oldest first.
func Recent(n int) []string {
	l := current()
	if l == nil {
		return nil
	}
	return l.Recent(n)
}

// Recent returns up to n buffered entries, oldest first.
func (l *Logger) Recent(n int) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var all []string
	if l.full {
		all = append(all, l.ring[l.next:]...)
	}
	all = append(all, l.ring[:l.next]...)
	if n >= 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	return all
}

// ClearBuffer drops the buffered entries of the global logger.
func ClearBuffer() {
	l := current()
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.ring)
	l.next = 0
	l.full = false
}

// EntryLevel parses the level tag back out of a formatted entry.
func EntryLevel(entry string) Level {
	switch {
	case strings.Contains(entry, "["+LevelError.String()+"]"):
		return LevelError
	case strings.Contains(entry, "["+LevelWarn.String()+"]"):
		return LevelWarn
	case strings.Contains(entry, "["+LevelInfo.String()+"]"):
		return LevelInfo
	default:
		return LevelDebug
	}
}

// Listener delivers log entries as they are written.
type Listener = pubsub.ContinuousListener[string]

// NewListener subscribes to the global logger. It returns nil when logging
// is not initialised.
func NewListener(ctx context.Context) *Listener {
	l := current()
	if l == nil {
		return nil
	}
	return pubsub.NewContinuousListener[string](ctx, l.broker)
}
