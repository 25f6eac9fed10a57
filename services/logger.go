package services

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"log/slog"
	"sync"

	"github.com/fatih/color"
)

type PrettyHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PrettyHandler is a slog.Handler for development: one colored line per record
// with the attributes as indented JSON.
type PrettyHandler struct {
	slog.Handler
	mu *sync.Mutex
	l  *log.Logger

	attrs  []groupedAttr
	groups []string
}

// groupedAttr is an attribute with the groups open when it was added.
type groupedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewPrettyHandler(out io.Writer, opts PrettyHandlerOptions) *PrettyHandler {
	return &PrettyHandler{
		Handler: slog.NewJSONHandler(out, &opts.SlogOpts),
		mu:      &sync.Mutex{},
		l:       log.New(out, "", 0),
	}
}

func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	level := r.Level.String() + ":"
	switch {
	case r.Level >= slog.LevelError:
		level = color.RedString(level)
	case r.Level >= slog.LevelWarn:
		level = color.YellowString(level)
	case r.Level >= slog.LevelInfo:
		level = color.BlueString(level)
	default:
		level = color.MagentaString(level)
	}

	fields := make(map[string]any, r.NumAttrs()+len(h.attrs))
	for _, ga := range h.attrs {
		addField(fields, ga.groups, ga.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		addField(fields, h.groups, a)
		return true
	})

	line := []any{r.Time.Format("[15:04:05.000]"), level, color.CyanString(r.Message)}
	if len(fields) > 0 {
		b, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return err
		}
		line = append(line, color.WhiteString(string(b)))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.l.Println(line...)
	return nil
}

// addField nests a under groups.
func addField(fields map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	m := fields
	for _, g := range groups {
		sub, ok := m[g].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[g] = sub
		}
		m = sub
	}
	if a.Value.Kind() == slog.KindGroup {
		sub := map[string]any{}
		for _, ga := range a.Value.Group() {
			ga.Value = ga.Value.Resolve()
			sub[ga.Key] = ga.Value.Any()
		}
		m[a.Key] = sub
		return
	}
	if err, ok := a.Value.Any().(error); ok {
		m[a.Key] = err.Error()
		return
	}
	m[a.Key] = a.Value.Any()
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := *h
	out.Handler = h.Handler.WithAttrs(attrs)
	out.attrs = append([]groupedAttr(nil), h.attrs...)
	for _, a := range attrs {
		out.attrs = append(out.attrs, groupedAttr{groups: h.groups, attr: a})
	}
	return &out
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	out := *h
	out.Handler = h.Handler.WithGroup(name)
	out.groups = append(append([]string(nil), h.groups...), name)
	return &out
}

// NewLogger returns the logger used by the binaries: pretty debug output in dev
// mode, plain text at info level otherwise.
func NewLogger(out io.Writer, dev bool) *slog.Logger {
	if dev {
		return slog.New(NewPrettyHandler(out, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{
				Level: slog.LevelDebug,
			},
		}))
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
