package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/mergington/activities/registry"
	"github.com/mergington/activities/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := New(config.Default())
	require.NoError(t, err)
	return srv
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func do(t *testing.T, handler http.Handler, method, activity, action, email string) *httptest.ResponseRecorder {
	t.Helper()
	target := "/activities/" + url.PathEscape(activity) + "/" + action
	if email != "" {
		target += "?email=" + url.QueryEscape(email)
	}
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func listActivities(t *testing.T, handler http.Handler) map[string]registry.Activity {
	t.Helper()
	w := get(t, handler, "/activities")
	require.Equal(t, http.StatusOK, w.Code)

	var acts map[string]registry.Activity
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &acts))
	return acts
}

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
Robotics Club:
  description: Build and program robots
  schedule: Saturdays, 10:00 AM - 12:00 PM
  max_participants: 8
  participants: []
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestRootRedirectsToStatic(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := get(t, handler, "/")

	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/static/index.html", w.Header().Get("Location"))
}

func TestStaticIndexServed(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := get(t, handler, "/static/index.html")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mergington High School")
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := get(t, handler, "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestGetActivities(t *testing.T) {
	handler := newTestServer(t).Handler()

	acts := listActivities(t, handler)
	require.NotEmpty(t, acts)

	assert.Contains(t, acts, "Chess Club")
	assert.Contains(t, acts, "Soccer Team")
	assert.Contains(t, acts, "Programming Class")

	for name, act := range acts {
		assert.NotEmpty(t, act.Description, "activity %s", name)
		assert.NotEmpty(t, act.Schedule, "activity %s", name)
		assert.Positive(t, act.MaxParticipants, "activity %s", name)
		assert.NotNil(t, act.Participants, "activity %s", name)
	}
}

func TestSignupFlow(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodPost, "Chess Club", "signup", "test@mergington.edu")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "test@mergington.edu")
	assert.Contains(t, resp.Message, "Chess Club")

	acts := listActivities(t, handler)
	assert.Contains(t, acts["Chess Club"].Participants, "test@mergington.edu")
}

func TestSignup_NonexistentActivity(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodPost, "Nonexistent Club", "signup", "test@mergington.edu")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestSignup_Duplicate(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodPost, "Chess Club", "signup", "duplicate@mergington.edu")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, "Chess Club", "signup", "duplicate@mergington.edu")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already signed up")
}

func TestSignup_MissingEmail(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodPost, "Chess Club", "signup", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestUnregisterFlow(t *testing.T) {
	handler := newTestServer(t).Handler()
	email := "unregister@mergington.edu"

	w := do(t, handler, http.MethodPost, "Chess Club", "signup", email)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodDelete, "Chess Club", "unregister", email)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "Unregistered")
	assert.Contains(t, resp.Message, email)

	acts := listActivities(t, handler)
	assert.NotContains(t, acts["Chess Club"].Participants, email)
}

func TestUnregister_NonexistentActivity(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodDelete, "Nonexistent Club", "unregister", "test@mergington.edu")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestUnregister_NotSignedUp(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodDelete, "Chess Club", "unregister", "notregistered@mergington.edu")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not signed up")
}

func TestUnregister_MissingEmail(t *testing.T) {
	handler := newTestServer(t).Handler()

	w := do(t, handler, http.MethodDelete, "Chess Club", "unregister", "")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSignupAndUnregister_RestoresCount(t *testing.T) {
	handler := newTestServer(t).Handler()
	email := "integration@mergington.edu"
	activity := "Soccer Team"

	before := len(listActivities(t, handler)[activity].Participants)

	w := do(t, handler, http.MethodPost, activity, "signup", email)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, listActivities(t, handler)[activity].Participants, before+1)

	w = do(t, handler, http.MethodDelete, activity, "unregister", email)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listActivities(t, handler)[activity].Participants, before)
}

func TestMultipleSignups_OrderPreserved(t *testing.T) {
	handler := newTestServer(t).Handler()
	emails := []string{
		"participant1@mergington.edu",
		"participant2@mergington.edu",
		"participant3@mergington.edu",
	}

	seeded := listActivities(t, handler)["Art Studio"].Participants

	for _, email := range emails {
		w := do(t, handler, http.MethodPost, "Art Studio", "signup", email)
		require.Equal(t, http.StatusOK, w.Code)
	}

	got := listActivities(t, handler)["Art Studio"].Participants
	assert.Equal(t, append(seeded, emails...), got)
}

func TestMetricsEndpoint(t *testing.T) {
	handler := newTestServer(t).Handler()

	// Generate one signup so the counter exists.
	w := do(t, handler, http.MethodPost, "Chess Club", "signup", "metrics@mergington.edu")
	require.Equal(t, http.StatusOK, w.Code)

	w = get(t, handler, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signups_total")
}

func TestNew_SeedFileOverride(t *testing.T) {
	// Covered via config: an explicit seed file replaces the built-in roster.
	cfg := config.Default()
	cfg.SeedPath = writeSeedFile(t)

	srv, err := New(cfg)
	require.NoError(t, err)

	acts := listActivities(t, srv.Handler())
	require.Len(t, acts, 1)
	assert.Contains(t, acts, "Robotics Club")
}

func TestNew_InvalidStatsSchedule(t *testing.T) {
	cfg := config.Default()
	cfg.Stats.Schedule = "not a schedule"

	_, err := New(cfg)
	assert.Error(t, err)
}
