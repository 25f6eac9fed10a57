package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/editor"
	"github.com/panyam/designboard/services"
	"github.com/panyam/designboard/viz"
)

// Largest event body accepted.
const maxEventBytes = 64 << 10

// BoardAPI serves editor sessions over HTTP for the local preview page.
type BoardAPI struct {
	sessions *services.SessionManager
	logger   *slog.Logger
}

func NewBoardAPI(sessions *services.SessionManager, logger *slog.Logger) *BoardAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return &BoardAPI{sessions: sessions, logger: logger}
}

// RegisterRoutes registers all board routes
func (a *BoardAPI) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/palette", a.Palette).Methods("GET")
	router.HandleFunc("/api/shortcuts", a.Shortcuts).Methods("GET")

	router.HandleFunc("/api/sessions", a.ListSessions).Methods("GET")
	router.HandleFunc("/api/sessions", a.CreateSession).Methods("POST")
	router.HandleFunc("/api/sessions/{id}", a.GetSession).Methods("GET")
	router.HandleFunc("/api/sessions/{id}", a.DeleteSession).Methods("DELETE")
	router.HandleFunc("/api/sessions/{id}/events", a.PostEvent).Methods("POST")
	router.HandleFunc("/api/sessions/{id}/render/{format}", a.Render).Methods("GET")
}

// SessionState is the JSON view of a session.
type SessionState struct {
	ID       string            `json:"id"`
	Graph    diagram.GraphJSON `json:"graph"`
	Panel    editor.Panel      `json:"panel"`
	Viewport editor.Viewport   `json:"viewport"`
	History  HistoryState      `json:"history"`
}

type HistoryState struct {
	Index int `json:"index"`
	Len   int `json:"len"`
}

type EventResponse struct {
	Changed bool `json:"changed"`
}

func NewSessionState(id string, s *editor.Session) SessionState {
	idx, n := s.HistoryIndex()
	return SessionState{
		ID:       id,
		Graph:    s.View().JSON(),
		Panel:    s.Panel(),
		Viewport: s.Viewport(),
		History:  HistoryState{Index: idx, Len: n},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// sessionError maps session manager errors to HTTP statuses.
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNoSuchSession):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrTooManySessions):
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	case errors.Is(err, editor.ErrInvalidEvent), errors.Is(err, editor.ErrUnknownEvent):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (a *BoardAPI) Palette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, diagram.Palette())
}

func (a *BoardAPI) Shortcuts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, editor.Shortcuts())
}

func (a *BoardAPI) ListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.sessions.List())
}

func (a *BoardAPI) CreateSession(w http.ResponseWriter, r *http.Request) {
	var state SessionState
	_, err := a.sessions.CreateWith(func(id string, s *editor.Session) error {
		state = NewSessionState(id, s)
		return nil
	})
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, state)
}

func (a *BoardAPI) GetSession(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	err := a.sessions.With(id, func(s *editor.Session) error {
		writeJSON(w, http.StatusOK, NewSessionState(id, s))
		return nil
	})
	if err != nil {
		sessionError(w, err)
	}
}

func (a *BoardAPI) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Delete(mux.Vars(r)["id"]); err != nil {
		sessionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostEvent applies one JSON encoded editor.Event to a session.
func (a *BoardAPI) PostEvent(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ev, err := DecodeEvent(body)
	if err != nil {
		a.logger.Debug("rejected event", "session", id, "err", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var changed bool
	err = a.sessions.With(id, func(s *editor.Session) (err error) {
		changed, err = s.Dispatch(ev)
		return err
	})
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EventResponse{Changed: changed})
}

// Render returns the board in one of the viz formats. For svg the optional
// width and height query parameters render through the session viewport.
func (a *BoardAPI) Render(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, format := vars["id"], vars["format"]
	gen, err := viz.GeneratorFor(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var out string
	err = a.sessions.With(id, func(s *editor.Session) (err error) {
		if svg, ok := gen.(*viz.SvgRenderer); ok {
			width, height := floatParam(r, "width"), floatParam(r, "height")
			out, err = svg.Render(s.Scene(width, height))
			return err
		}
		out, err = gen.Generate(s.View())
		return err
	})
	if err != nil {
		sessionError(w, err)
		return
	}
	w.Header().Set("Content-Type", viz.ContentType(format))
	io.WriteString(w, out)
}
