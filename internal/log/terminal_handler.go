package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// palette holds the ANSI sequences used by TerminalHandler. The zero
// value prints plain text.
type palette struct {
	reset, dim, bold, red, green, yellow, cyan string
}

var ansiPalette = palette{
	reset:  "\033[0m",
	dim:    "\033[2m",
	bold:   "\033[1m",
	red:    "\033[31m",
	green:  "\033[32m",
	yellow: "\033[33m",
	cyan:   "\033[36m",
}

// TerminalHandler formats log records as human-readable lines, coloured
// when the destination is a terminal.
//
// Output format:
//
//	15:04:05.000 INF listed corpora root=/data corpora=12
type TerminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	colors palette
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	h := &TerminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
	if colorEnabled(w) {
		h.colors = ansiPalette
	}
	return h
}

// colorEnabled reports whether w is a character device and the user has
// not opted out through NO_COLOR or TERM=dumb.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// Enabled reports whether the handler handles records at the given level.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats a log record and writes it as a single line.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.Grow(256)
	c := h.colors

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(c.dim + ts.Format("15:04:05.000") + c.reset + " ")

	color, label := c.level(r.Level)
	buf.WriteString(color + label + c.reset + " ")
	buf.WriteString(c.bold + r.Message + c.reset)

	for _, a := range h.attrs {
		h.appendAttr(&buf, a, h.groups)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&buf, a, h.groups)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// WithAttrs returns a new handler whose attributes consist of both the
// existing attributes and attrs.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup returns a new handler with the given group name prepended to
// subsequent attribute keys.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

func (c palette) level(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return c.cyan, "DBG"
	case level < slog.LevelWarn:
		return c.green, "INF"
	case level < slog.LevelError:
		return c.yellow, "WRN"
	default:
		return c.red, "ERR"
	}
}

func (h *TerminalHandler) appendAttr(buf *bytes.Buffer, a slog.Attr, groups []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := groups
		if a.Key != "" {
			prefix = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(buf, ga, prefix)
		}
		return
	}

	buf.WriteByte(' ')
	buf.WriteString(h.colors.dim)
	for _, g := range groups {
		buf.WriteString(g)
		buf.WriteByte('.')
	}
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	buf.WriteString(h.colors.reset)
	buf.WriteString(formatAttrValue(a.Value))
}

func formatAttrValue(v slog.Value) string {
	if v.Kind() == slog.KindString {
		s := v.String()
		if s == "" || strings.ContainsAny(s, " \t\n\"\\") {
			return fmt.Sprintf("%q", s)
		}
		return s
	}
	return v.String()
}
