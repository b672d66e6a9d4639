package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	recs map[string]*Record
}

func newMemStore() *memStore {
	return &memStore{recs: map[string]*Record{}}
}

func (s *memStore) Get(_ context.Context, id string) (*Record, error) {
	return s.recs[id], nil
}

func (s *memStore) Set(_ context.Context, id string, rec *Record, _ time.Duration) error {
	s.recs[id] = rec
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	delete(s.recs, id)
	return nil
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestManager_SetUserThenUser(t *testing.T) {
	store := newMemStore()
	mgr := NewManager(store, "taskmanager_session", time.Hour)
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)
	require.NoError(t, mgr.SetUser(c, "alice"))

	cookie := sessionCookie(t, rec, "taskmanager_session")
	assert.True(t, cookie.HttpOnly)
	require.Len(t, store.recs, 1)
	assert.Equal(t, "alice", store.recs[cookie.Value].User)

	// A follow-up request carrying the cookie resolves to the user.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	c2 := e.NewContext(req, httptest.NewRecorder())
	username, err := mgr.User(c2)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestManager_UserWithoutCookie(t *testing.T) {
	mgr := NewManager(newMemStore(), "taskmanager_session", time.Hour)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	username, err := mgr.User(c)
	require.NoError(t, err)
	assert.Empty(t, username)
}

func TestManager_ClearDeletesRecordAndExpiresCookie(t *testing.T) {
	store := newMemStore()
	store.recs["sid-1"] = &Record{User: "alice"}
	mgr := NewManager(store, "taskmanager_session", time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "taskmanager_session", Value: "sid-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, mgr.Clear(c))

	assert.Empty(t, store.recs)
	cookie := sessionCookie(t, rec, "taskmanager_session")
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestManager_FreshIDPerLogin(t *testing.T) {
	store := newMemStore()
	mgr := NewManager(store, "taskmanager_session", time.Hour)
	e := echo.New()

	rec1 := httptest.NewRecorder()
	require.NoError(t, mgr.SetUser(e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec1), "alice"))
	rec2 := httptest.NewRecorder()
	require.NoError(t, mgr.SetUser(e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec2), "alice"))

	first := sessionCookie(t, rec1, "taskmanager_session")
	second := sessionCookie(t, rec2, "taskmanager_session")
	assert.NotEqual(t, first.Value, second.Value)
}
