package web

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panyam/designboard/diagram"
	"github.com/panyam/designboard/editor"
	"github.com/panyam/designboard/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	sessions := services.NewSessionManager(editor.Options{Viewport: editor.Viewport{Zoom: 1}}, 0, logger)
	srv := httptest.NewServer(NewRouter(sessions, logger))
	t.Cleanup(srv.Close)
	return srv
}

func createSession(t *testing.T, srv *httptest.Server) SessionState {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var state SessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func postEvent(t *testing.T, srv *httptest.Server, id, body string) (int, EventResponse) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/api/sessions/"+id+"/events", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var out EventResponse
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func getState(t *testing.T, srv *httptest.Server, id string) SessionState {
	t.Helper()
	resp, err := http.Get(srv.URL + "/api/sessions/" + id)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state SessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))
	return state
}

func TestCreateSession(t *testing.T) {
	srv := newTestServer(t)
	state := createSession(t, srv)
	assert.NotEmpty(t, state.ID)
	require.Len(t, state.Graph.Nodes, 1)
	assert.Equal(t, "Client", state.Graph.Nodes[0].Label)
	assert.Empty(t, state.Graph.Edges)
	assert.Equal(t, HistoryState{Index: 0, Len: 1}, state.History)
	assert.Equal(t, editor.StyleTab, state.Panel.Tab)
}

func TestCreateSession_Full(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	sessions := services.NewSessionManager(editor.Options{}, 1, logger)
	srv := httptest.NewServer(NewRouter(sessions, logger))
	t.Cleanup(srv.Close)

	createSession(t, srv)
	resp, err := http.Post(srv.URL+"/api/sessions", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Len(t, sessions.List(), 1)
}

func TestPostEvents(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv).ID

	status, out := postEvent(t, srv, id, `{"type": "drop", "kind": "database", "at": {"x": 400, "y": 100}}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Changed)

	state := getState(t, srv, id)
	require.Len(t, state.Graph.Nodes, 2)
	db := state.Graph.Nodes[1]

	status, out = postEvent(t, srv, id, `{"type": "connect", "source": "1", "sourceAnchor": "right-source",
		"target": "`+db.ID+`", "targetAnchor": "left-target"}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Changed)

	status, _ = postEvent(t, srv, id, `{"type": "select", "edge": "`+diagram.Connection{
		Source: "1", SourceAnchor: diagram.Anchor{Side: diagram.Right, Type: diagram.SourceAnchor},
		Target: db.ID, TargetAnchor: diagram.Anchor{Side: diagram.Left, Type: diagram.TargetAnchor},
	}.EdgeID()+`"}`)
	require.Equal(t, http.StatusOK, status)

	status, out = postEvent(t, srv, id, `{"type": "color", "color": "#ef4444"}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Changed)

	state = getState(t, srv, id)
	require.Len(t, state.Graph.Edges, 1)
	assert.Equal(t, "#ef4444", state.Graph.Edges[0].Color)
	assert.Equal(t, editor.ConnectionTab, state.Panel.Tab)
	require.NotNil(t, state.Panel.SelectedEdge)
	assert.Equal(t, HistoryState{Index: 3, Len: 4}, state.History)

	status, out = postEvent(t, srv, id, `{"type": "keydown", "key": "z", "ctrl": true}`)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Changed)
	state = getState(t, srv, id)
	assert.Equal(t, "#3b82f6", state.Graph.Edges[0].Color)
	assert.Nil(t, state.Panel.SelectedEdge, "Undo clears the selection")
}

func TestPostEvent_Rejected(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv).ID

	for _, body := range []string{
		`not json`,
		`{}`,
		`{"type": "teleport"}`,
		`{"type": "drop", "kind": "cache", "at": {"x": "left"}}`,
		`{"type": "color", "color": "red"}`,
		`{"type": "connect", "sourceAnchor": "middle"}`,
		`{"type": "drop", "kind": "cache", "bogus": 1}`,
		`{"type": "viewport", "viewport": {"zoom": 0}}`,
		// Passes the schema but has no position.
		`{"type": "pointerdown"}`,
	} {
		status, _ := postEvent(t, srv, id, body)
		assert.Equal(t, http.StatusBadRequest, status, body)
	}
	assert.Len(t, getState(t, srv, id).Graph.Nodes, 1)

	status, _ := postEvent(t, srv, "missing", `{"type": "undo"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv).ID

	for format, want := range map[string]string{
		"svg":        "<svg",
		"excalidraw": `"type": "excalidraw"`,
		"mermaid":    "flowchart",
		"dot":        "digraph",
	} {
		resp, err := http.Get(srv.URL + "/api/sessions/" + id + "/render/" + format)
		require.NoError(t, err)
		var buf bytes.Buffer
		buf.ReadFrom(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, format)
		assert.Contains(t, buf.String(), want, format)
	}

	resp, err := http.Get(srv.URL + "/api/sessions/" + id + "/render/svg?width=800&height=600")
	require.NoError(t, err)
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.Contains(t, buf.String(), `width="800" height="600"`)

	resp, err = http.Get(srv.URL + "/api/sessions/" + id + "/render/pdf")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv).ID

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/sessions/"+id, nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/api/sessions/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStaticLists(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/palette")
	require.NoError(t, err)
	var palette []diagram.KindInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&palette))
	resp.Body.Close()
	require.Len(t, palette, 12)
	assert.Equal(t, diagram.Client, palette[0].Kind)

	resp, err = http.Get(srv.URL + "/api/shortcuts")
	require.NoError(t, err)
	var shortcuts []editor.Shortcut
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&shortcuts))
	resp.Body.Close()
	assert.Len(t, shortcuts, 13)
}

func TestLogRequests(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := LogRequests(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTeapot)
	}), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/brew", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Contains(t, buf.String(), "path=/brew")
	assert.Contains(t, buf.String(), "status=418")
}
