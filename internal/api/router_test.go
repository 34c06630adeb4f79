package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimacar/exercise-tracker/internal/api"
	"github.com/selimacar/exercise-tracker/internal/config"
	"github.com/selimacar/exercise-tracker/internal/models"
	"github.com/selimacar/exercise-tracker/internal/repository/memory"
	"github.com/selimacar/exercise-tracker/internal/services"
	"github.com/selimacar/exercise-tracker/internal/worker"
)

type testServer struct {
	handler http.Handler
	audit   *memory.AuditStore
	wp      *worker.Pool
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	users := memory.NewUsers()
	audit := memory.NewAuditLogs()
	wp := worker.NewPool(2)
	us := services.NewUserService(users, audit, wp)
	ls := services.NewLogService(users, audit, wp)
	cfg := config.Config{Env: "test", HTTPPort: "0"}
	return &testServer{handler: api.NewRouter(cfg, us, ls), audit: audit, wp: wp}
}

func (ts *testServer) get(path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) postJSON(path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) createUser(t *testing.T, username string) models.UserRef {
	t.Helper()
	rec := ts.postForm("/api/exercise/new-user", url.Values{"username": {username}})
	require.Equal(t, http.StatusCreated, rec.Code)
	var u models.UserRef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &u))
	return u
}

func TestNewUser(t *testing.T) {
	ts := newTestServer(t)

	u := ts.createUser(t, "alice")
	assert.Regexp(t, `^[A-Za-z0-9]{9}$`, u.ID)
	assert.Equal(t, "alice", u.Username)

	// same username echoes the existing user
	again := ts.createUser(t, "alice")
	assert.Equal(t, u.ID, again.ID)
}

func TestNewUserMissingUsername(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/api/exercise/new-user", url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Path `username` is required", rec.Body.String())
}

func TestUsersEmpty(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/exercise/users")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "No users yet in the database.", rec.Body.String())
}

func TestUsersList(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice")
	ts.createUser(t, "bob")

	rec := ts.get("/api/exercise/users")
	require.Equal(t, http.StatusCreated, rec.Code)

	var users []models.UserRef
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, "bob", users[1].Username)
	assert.Len(t, users[0].ID, 9)
}

func TestAddAndLogScenario(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")

	rec := ts.postForm("/api/exercise/add", url.Values{
		"userId":      {u.ID},
		"description": {"run"},
		"duration":    {"30"},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var added models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, u.ID, added.ID)
	assert.Equal(t, 1, added.Count)
	require.Len(t, added.Log, 1)
	assert.Equal(t, "Run", added.Log[0].Description)
	assert.Equal(t, float64(30), added.Log[0].Duration)
	assert.Equal(t, time.Now().Format("Mon Jan 02 2006"), added.Log[0].Date)

	rec = ts.get("/api/exercise/log?userId=" + u.ID)
	require.Equal(t, http.StatusCreated, rec.Code)

	var res models.LogResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Log, 1)
	assert.Equal(t, "Run", res.Log[0].Description)
	assert.Empty(t, res.From)
	assert.Empty(t, res.To)
}

func TestAddAcceptsJSON(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")

	rec := ts.postJSON("/api/exercise/add",
		`{"userId":"`+u.ID+`","description":"running hard","duration":30,"date":"2024-01-10"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var added models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	require.Len(t, added.Log, 1)
	assert.Equal(t, "Running Hard", added.Log[0].Description)
	assert.Equal(t, "Wed Jan 10 2024", added.Log[0].Date)
}

func TestAddMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.postForm("/api/exercise/add", url.Values{"userId": {"abc"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please fill in required fields", rec.Body.String())
}

func TestAddNonNumericDuration(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")

	rec := ts.postForm("/api/exercise/add", url.Values{
		"userId":      {u.ID},
		"description": {"run"},
		"duration":    {"half an hour"},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Duration must be a number", rec.Body.String())
}

func TestAddUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "alice")

	rec := ts.postForm("/api/exercise/add", url.Values{
		"userId":      {"doesnotexi"},
		"description": {"run"},
		"duration":    {"30"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Unknown UserId", rec.Body.String())
}

func TestLogMissingUserID(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/exercise/log")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "UserId Required", rec.Body.String())
}

func TestLogUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/exercise/log?userId=doesnotexi")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Unknown UserId", rec.Body.String())
}

func TestLogFilterAndLimit(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")
	for _, d := range []string{"2024-01-01", "2024-01-10", "2024-01-20"} {
		rec := ts.postForm("/api/exercise/add", url.Values{
			"userId":      {u.ID},
			"description": {"run"},
			"duration":    {"30"},
			"date":        {d},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := ts.get("/api/exercise/log?userId=" + u.ID + "&from=2024-01-05&to=2024-01-15")
	require.Equal(t, http.StatusCreated, rec.Code)
	var res models.LogResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Count)
	require.Len(t, res.Log, 1)
	assert.Equal(t, "Wed Jan 10 2024", res.Log[0].Date)
	assert.Equal(t, "Fri Jan 05 2024", res.From)
	assert.Equal(t, "Mon Jan 15 2024", res.To)

	rec = ts.get("/api/exercise/log?userId=" + u.ID + "&limit=2")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Count)
	require.Len(t, res.Log, 2)
	assert.Equal(t, "Sat Jan 20 2024", res.Log[0].Date)
}

func TestLogInvalidBound(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")

	rec := ts.get("/api/exercise/log?userId=" + u.ID + "&from=whenever")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Date", rec.Body.String())
}

func TestUnmatchedRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/api/exercise/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", rec.Body.String())
}

func TestLandingAndHealth(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.get("/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Exercise Tracker")

	rec = ts.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestAuditTrail(t *testing.T) {
	ts := newTestServer(t)
	u := ts.createUser(t, "alice")
	rec := ts.postForm("/api/exercise/add", url.Values{
		"userId":      {u.ID},
		"description": {"run"},
		"duration":    {"30"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	ts.wp.Stop()

	require.Len(t, ts.audit.Entries, 2)
	actions := []string{ts.audit.Entries[0].Action, ts.audit.Entries[1].Action}
	assert.Contains(t, actions, "user_created")
	assert.Contains(t, actions, "exercise_added")
}
