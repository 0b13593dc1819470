// Package logger provides namespaced debug logging controlled by the DEBUG
// environment variable.
//
// DEBUG holds a comma separated list of namespace patterns. A trailing `*`
// matches any suffix and a leading `-` excludes the pattern:
//
//	DEBUG=*                       every logger
//	DEBUG=session:*               every logger in the session namespace
//	DEBUG=session:*,-session:store
//
// Output goes to stderr as `<namespace> <message> +<delta>` where delta is the
// time since the previous line emitted by the same logger.
package logger

import (
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// EnvVar names the environment variable read by New.
const EnvVar = "DEBUG"

var (
	outputMu sync.Mutex
	output   io.Writer = os.Stderr

	palette = []color.Attribute{
		color.FgCyan,
		color.FgGreen,
		color.FgYellow,
		color.FgBlue,
		color.FgMagenta,
	}
)

// SetOutput redirects every logger. It returns the previous writer so tests
// can restore it.
func SetOutput(w io.Writer) io.Writer {
	outputMu.Lock()
	defer outputMu.Unlock()
	prev := output
	if w == nil {
		w = io.Discard
	}
	output = w
	return prev
}

// Logger writes debug lines for a single namespace.
type Logger struct {
	enabled bool
	label   string

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for namespace. Whether it is enabled is decided once,
// from the value of DEBUG at construction time.
func New(namespace string) *Logger {
	namespace = strings.TrimSpace(namespace)
	return &Logger{
		enabled: Match(os.Getenv(EnvVar), namespace),
		label:   color.New(pick(namespace), color.Bold).Sprint(namespace),
	}
}

// Enabled reports whether the logger emits output.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Printf formats like fmt.Printf.
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print concatenates its arguments like fmt.Sprint.
func (l *Logger) Print(args ...any) {
	if !l.Enabled() {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	now := time.Now()
	var delta time.Duration
	if !l.last.IsZero() {
		delta = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintf(output, "%s %s +%s\n", l.label, strings.TrimRight(msg, "\n"), formatDelta(delta))
}

// Match reports whether namespace is enabled by the DEBUG value. Exclusions win
// over inclusions regardless of their position in the list.
func Match(value, namespace string) bool {
	if strings.TrimSpace(value) == "" || namespace == "" {
		return false
	}
	included := false
	for _, raw := range strings.Split(value, ",") {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		if strings.HasPrefix(pattern, "-") {
			if matchPattern(pattern[1:], namespace) {
				return false
			}
			continue
		}
		if matchPattern(pattern, namespace) {
			included = true
		}
	}
	return included
}

func matchPattern(pattern, namespace string) bool {
	if pattern == "*" {
		return true
	}
	ok, err := path.Match(pattern, namespace)
	if err != nil {
		return false
	}
	return ok
}

func pick(namespace string) color.Attribute {
	h := fnv.New32a()
	_, _ = h.Write([]byte(namespace))
	return palette[h.Sum32()%uint32(len(palette))]
}

func formatDelta(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}
