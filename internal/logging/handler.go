package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colours used by Handler. A nil palette prints plain text.
type palette struct {
	time  *color.Color
	trace *color.Color
	info  *color.Color
	warn  *color.Color
	error *color.Color
	key   *color.Color
}

func newPalette() *palette {
	return &palette{
		time:  color.New(color.FgHiBlack),
		trace: color.New(color.FgMagenta),
		info:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		error: color.New(color.FgRed, color.Bold),
		key:   color.New(color.FgCyan),
	}
}

func (p *palette) level(l slog.Level) *color.Color {
	switch {
	case l >= slog.LevelError:
		return p.error
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	default:
		return p.trace
	}
}

func paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

// Handler is a slog.Handler writing one compact line per record for a
// terminal, e.g. "3:04PM WARN  report written path=out.txt".
// Secrets are masked with RedactAttr.
type Handler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	colors *palette
	prefix string
	attrs  []slog.Attr
}

// NewHandler creates a Handler. Colour is used only when out supports it.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	h := &Handler{
		level: slog.LevelInfo,
		out:   out,
		mu:    &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	var c palette
	if h.colors != nil {
		c = *h.colors
	}

	if !r.Time.IsZero() {
		buf.WriteString(paint(c.time, r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}
	fmt.Fprintf(&buf, "%-5s ", paint(c.level(r.Level), levelName(r.Level)))
	buf.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&buf, c.key, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, c.key, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func levelName(l slog.Level) string {
	if l <= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

func (h *Handler) writeAttr(buf *bytes.Buffer, keyColor *color.Color, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	a = RedactAttr(nil, a)
	fmt.Fprintf(buf, " %s=%v", paint(keyColor, a.Key), a.Value.Any())
}

// WithAttrs implements slog.Handler. Attributes are stored with the
// current group prefix already applied.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.prefix + a.Key, Value: a.Value})
	}
	return &clone
}

// WithGroup implements slog.Handler. Groups render as dotted key prefixes.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + strings.TrimSuffix(name, ".") + "."
	return &clone
}
