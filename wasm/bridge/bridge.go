// Package bridge is the browser facing API of the design board. Everything
// crosses the JS boundary as JSON strings so the wasm entry point only has to
// wrap these methods with js.FuncOf.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/editor"
	"github.com/panyam/designboard/services"
	"github.com/panyam/designboard/viz"
)

type Bridge struct {
	Sessions *services.SessionManager
}

func New(opts editor.Options) *Bridge {
	return &Bridge{Sessions: services.NewSessionManager(opts, 0, opts.Logger)}
}

// Result is the envelope every call returns.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func encode(r Result) string {
	b, err := json.Marshal(r)
	if err != nil {
		b, _ = json.Marshal(Result{Error: err.Error()})
	}
	return string(b)
}

func ok(data any) string { return encode(Result{Success: true, Data: data}) }

func fail(err error) string { return encode(Result{Error: err.Error()}) }

type State struct {
	Graph    diagram.GraphJSON `json:"graph"`
	Panel    editor.Panel      `json:"panel"`
	Viewport editor.Viewport   `json:"viewport"`
	Editing  string            `json:"editing,omitempty"`
	Draft    string            `json:"draft,omitempty"`
}

func stateOf(s *editor.Session) State {
	st := State{Graph: s.View().JSON(), Panel: s.Panel(), Viewport: s.Viewport()}
	st.Editing, st.Draft, _ = s.LabelEdit()
	return st
}

// Create starts a session and returns its id.
func (b *Bridge) Create() string {
	id, err := b.Sessions.Create()
	if err != nil {
		return fail(err)
	}
	return ok(map[string]string{"id": id})
}

// Dispatch applies a JSON encoded editor.Event and returns whether the graph
// changed along with the new state.
func (b *Bridge) Dispatch(id, eventJSON string) string {
	var ev editor.Event
	if err := json.Unmarshal([]byte(eventJSON), &ev); err != nil {
		return fail(fmt.Errorf("invalid event: %w", err))
	}
	var out map[string]any
	err := b.Sessions.With(id, func(s *editor.Session) error {
		changed, err := s.Dispatch(ev)
		if err != nil {
			return err
		}
		out = map[string]any{"changed": changed, "state": stateOf(s)}
		return nil
	})
	if err != nil {
		return fail(err)
	}
	return ok(out)
}

func (b *Bridge) State(id string) string {
	var st State
	err := b.Sessions.With(id, func(s *editor.Session) error {
		st = stateOf(s)
		return nil
	})
	if err != nil {
		return fail(err)
	}
	return ok(st)
}

// Render draws the session in a viz format. An svg render with a size goes
// through the session viewport, as the live canvas does.
func (b *Bridge) Render(id, format string, width, height float64) string {
	gen, err := viz.GeneratorFor(format)
	if err != nil {
		return fail(err)
	}
	var out string
	err = b.Sessions.With(id, func(s *editor.Session) (err error) {
		if svg, isSvg := gen.(*viz.SvgRenderer); isSvg {
			out, err = svg.Render(s.Scene(width, height))
			return err
		}
		out, err = gen.Generate(s.View())
		return err
	})
	if err != nil {
		return fail(err)
	}
	return ok(map[string]string{"format": format, "contentType": viz.ContentType(format), "output": out})
}

func (b *Bridge) Delete(id string) string {
	if err := b.Sessions.Delete(id); err != nil {
		return fail(err)
	}
	return ok(nil)
}

func (b *Bridge) Palette() string   { return ok(diagram.Palette()) }
func (b *Bridge) Shortcuts() string { return ok(editor.Shortcuts()) }
