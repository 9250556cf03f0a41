package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// layout selects how a pretty handler arranges the fields of a record.
type layout int

const (
	layoutLine  layout = iota // key=value pairs on one line
	layoutBlock               // one "key: value" per line inside braces
)

// palette holds the styles used to color log output. Styles are bound to a
// renderer for the handler's writer, so output that is not a terminal is
// written without escape sequences.
type palette struct {
	key, message, text, number, yes, no, duration, stamp, fault lipgloss.Style

	trace, debug, info, warn, err lipgloss.Style
}

func makePalette(w io.Writer) *palette {
	r := lipgloss.NewRenderer(w)

	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &palette{
		key:      color("8"),
		message:  r.NewStyle(),
		text:     color("6"),
		number:   color("3"),
		yes:      color("2"),
		no:       color("1"),
		duration: color("5"),
		stamp:    color("4"),
		fault:    color("9"),

		trace: color("8").Bold(true),
		debug: color("4").Bold(true),
		info:  color("2").Bold(true),
		warn:  color("3").Bold(true),
		err:   color("1").Bold(true),
	}
}

func (p *palette) level(l slog.Level) lipgloss.Style {
	switch {
	case l >= slog.LevelError:
		return p.err
	case l >= slog.LevelWarn:
		return p.warn
	case l >= slog.LevelInfo:
		return p.info
	case l >= slog.LevelDebug:
		return p.debug
	default:
		return p.trace
	}
}

// field is a rendered key/value pair.
type field struct {
	key, value string
}

// prettyHandler implements a colorized [slog.Handler].
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	style  *palette
	layout layout
	attrs  []field
	groups []string
}

func newPrettyTextHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, layoutLine)
}

func newPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return newPrettyHandler(w, opts, layoutBlock)
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	lay layout,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		style:  makePalette(w),
		layout: lay,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendBuiltin(fields, slog.Time(slog.TimeKey, r.Time), h.style.stamp)
	}

	fields = h.appendBuiltin(fields,
		slog.Any(slog.LevelKey, r.Level), h.style.level(r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.appendBuiltin(fields,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
				h.style.text)
		}
	}

	fields = h.appendBuiltin(fields,
		slog.String(slog.MessageKey, r.Message), h.style.message)

	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, h.groups, a)

		return true
	})

	buf := h.encode(fields)

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf)

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		c.attrs = c.appendAttr(c.attrs, c.groups, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &c
}

// appendBuiltin renders one of the record's own fields (time, level, source,
// message) through ReplaceAttr, styling string results with style.
func (h *prettyHandler) appendBuiltin(
	fields []field,
	a slog.Attr,
	style lipgloss.Style,
) []field {
	if h.opts.ReplaceAttr != nil {
		a = h.opts.ReplaceAttr(nil, a)
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	v := a.Value.Resolve()

	var rendered string

	switch v.Kind() {
	case slog.KindString:
		rendered = style.Render(v.String())
	case slog.KindAny:
		if l, ok := v.Any().(slog.Level); ok {
			rendered = style.Render(strings.ToUpper(Level(l).String()))
		} else {
			rendered = h.value(v)
		}
	default:
		rendered = h.value(v)
	}

	return append(fields, field{key: a.Key, value: rendered})
}

// appendAttr flattens a into fields, joining group names with ".".
func (h *prettyHandler) appendAttr(fields []field, groups []string, a slog.Attr) []field {
	a.Value = a.Value.Resolve()

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, ga := range a.Value.Group() {
			fields = h.appendAttr(fields, groups, ga)
		}

		return fields
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	return append(fields, field{key: key, value: h.value(a.Value)})
}

func (h *prettyHandler) value(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.text.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.number.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.duration.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.stamp.Render(v.Time().Format(time.RFC3339))

	case slog.KindAny:
		switch x := v.Any().(type) {
		case nil:
			return h.style.key.Render("null")
		case error:
			return h.style.fault.Render(x.Error())
		}
	}

	return h.style.text.Render(v.String())
}

func (h *prettyHandler) encode(fields []field) []byte {
	var buf bytes.Buffer

	switch h.layout {
	case layoutBlock:
		buf.WriteString("{\n")

		for i, f := range fields {
			buf.WriteString("  ")
			buf.WriteString(h.style.key.Render(f.key))
			buf.WriteString(": ")
			buf.WriteString(f.value)

			if i < len(fields)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		buf.WriteString("}\n")

	default:
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(' ')
			}

			buf.WriteString(h.style.key.Render(f.key))
			buf.WriteByte('=')
			buf.WriteString(f.value)
		}

		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
