package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/dmitrijs2005/notekeeper/internal/server/shared/db"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

// newTestServer builds a server over the in-memory repositories, the same
// wiring main uses with Postgres.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		EndpointAddr:          ":0",
		SecretKey:             testSecret,
		TokenValidityDuration: time.Hour,
	}

	repos := db.NewInMemoryRepositoryManager()
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))

	userService := services.NewUserService(repos.Users(), cfg)
	noteService := services.NewNoteService(repos.Notes())

	return NewServer(cfg, logger, userService, noteService)
}

// doJSON performs a request against the server and returns the recorder.
func doJSON(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the response envelope.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	body := map[string]any{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

// register creates an account and returns its access token.
func register(t *testing.T, s *Server, fullName, email, password string) string {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/create-account", "", map[string]any{
		"fullName": fullName,
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	body := decode(t, rec)
	if body["error"] != false {
		t.Fatalf("register failed: %s", rec.Body.String())
	}

	token, _ := body["accessToken"].(string)
	if token == "" {
		t.Fatalf("register returned no access token")
	}
	return token
}

// addNote creates a note and returns its id.
func addNote(t *testing.T, s *Server, token string, body map[string]any) string {
	t.Helper()

	rec := doJSON(t, s, http.MethodPost, "/add-note", token, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("add-note returned %d: %s", rec.Code, rec.Body.String())
	}

	note, ok := decode(t, rec)["note"].(map[string]any)
	if !ok {
		t.Fatalf("add-note response has no note payload: %s", rec.Body.String())
	}
	id, _ := note["id"].(string)
	if id == "" {
		t.Fatalf("created note has no id")
	}
	return id
}
