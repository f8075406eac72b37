package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/adapters/rest/handlers"
	"github.com/ezgierrdogan/planning-forever-clean/services/store/core"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := core.NewService(newFakeDB())
	tokens := rest.NewTokenIssuer("test-secret", time.Hour)

	mux := http.NewServeMux()
	handlers.Register(mux, log, svc, tokens, 5*time.Second)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerTestUser(t *testing.T, server *httptest.Server, email string) string {
	t.Helper()

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/register", "", map[string]string{
		"email":    email,
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	registerTestUser(t, server, "a@example.com")

	resp, body := doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "a@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, body["token"])

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/auth/login", "", map[string]string{
		"email":    "a@example.com",
		"password": "wrong password",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTasks_RequireAuth(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)

	resp, _ := doJSON(t, http.MethodGet, server.URL+"/api/tasks", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/tasks", "not-a-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTasks_CreatePatchDelete(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	token := registerTestUser(t, server, "a@example.com")

	resp, created := doJSON(t, http.MethodPost, server.URL+"/api/tasks", token, map[string]any{
		"title":       "Pay rent",
		"description": "Monthly",
		"category":    "personal",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	require.Equal(t, "personal", created["category"])

	resp, patched := doJSON(t, http.MethodPatch, server.URL+"/api/tasks/"+id, token, map[string]any{
		"completed": true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, true, patched["completed"])
	require.Equal(t, "Pay rent", patched["title"])

	resp, _ = doJSON(t, http.MethodDelete, server.URL+"/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/tasks/"+id, token, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTasks_ValidationErrors(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	token := registerTestUser(t, server, "a@example.com")

	resp, _ := doJSON(t, http.MethodPost, server.URL+"/api/tasks", token, map[string]any{
		"title":       "",
		"description": "Monthly",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, server.URL+"/api/tasks", token, map[string]any{
		"title":       "task",
		"description": "desc",
		"category":    "groceries",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPatch, server.URL+"/api/tasks/some-id", token, map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTasks_OwnerScoping(t *testing.T) {
	t.Parallel()

	server := newTestServer(t)
	aliceToken := registerTestUser(t, server, "alice@example.com")
	bobToken := registerTestUser(t, server, "bob@example.com")

	resp, created := doJSON(t, http.MethodPost, server.URL+"/api/tasks", aliceToken, map[string]any{
		"title":       "secret",
		"description": "only alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := created["id"].(string)

	resp, _ = doJSON(t, http.MethodGet, server.URL+"/api/tasks/"+id, bobToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, listed := doJSON(t, http.MethodGet, server.URL+"/api/tasks", bobToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks, _ := listed["tasks"].([]any)
	require.Empty(t, tasks)
}
