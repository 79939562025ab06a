package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/storecatalog/pkg/logger"
)

// newTestStore returns a gorilla CookieStore (no Redis required) for unit tests.
// In production the RedisStore is used; the sessions.Store interface is identical.
func newTestStore() sessions.Store {
	return sessions.NewCookieStore(
		[]byte("test-auth-key-must-be-32-bytes!!"),
		[]byte("test-enc-key-must-be-32-bytes!!!"),
	)
}

// requestWithSession builds a request carrying a session cookie for username.
func requestWithSession(t *testing.T, store sessions.Store, username string) *http.Request {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/api/items/x", nil)

	session, err := store.Get(r, sessionName)
	require.NoError(t, err)
	session.Values[sessionUsernameKey] = username
	require.NoError(t, session.Save(r, w))

	req := httptest.NewRequest(http.MethodDelete, "/api/items/x", nil)
	for _, c := range w.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func capture(t *testing.T, got *Principal) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := PrincipalFromCtx(r.Context())
		require.NoError(t, err)
		*got = p
		w.WriteHeader(http.StatusOK)
	})
}

func mustNotRun(t *testing.T) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler should not be called")
	})
}

func TestRequireAuth_ValidSession(t *testing.T) {
	store := newTestStore()
	dir := newTestDirectory(t)

	var got Principal
	w := httptest.NewRecorder()
	RequireAuth(store, dir, logger.Nop())(capture(t, &got)).ServeHTTP(w, requestWithSession(t, store, "admin"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Principal{Username: "admin", Role: RoleAdmin}, got)
}

func TestRequireAuth_SessionUnknownUser(t *testing.T) {
	store := newTestStore()
	dir := newTestDirectory(t)

	w := httptest.NewRecorder()
	RequireAuth(store, dir, logger.Nop())(mustNotRun(t)).ServeHTTP(w, requestWithSession(t, store, "ghost"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BasicAuth(t *testing.T) {
	dir := newTestDirectory(t)

	var got Principal
	r := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	r.SetBasicAuth("user", "user-pass")
	w := httptest.NewRecorder()
	RequireAuth(newTestStore(), dir, logger.Nop())(capture(t, &got)).ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RoleUser, got.Role)
}

func TestRequireAuth_BasicAuthWrongPassword(t *testing.T) {
	dir := newTestDirectory(t)

	r := httptest.NewRequest(http.MethodGet, "/api/items", nil)
	r.SetBasicAuth("admin", "wrong")
	w := httptest.NewRecorder()
	RequireAuth(newTestStore(), dir, logger.Nop())(mustNotRun(t)).ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, basicRealm, w.Header().Get("WWW-Authenticate"))
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	w := httptest.NewRecorder()
	RequireAuth(newTestStore(), newTestDirectory(t), logger.Nop())(mustNotRun(t)).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/items", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLogout(t *testing.T) {
	store := newTestStore()
	dir := newTestDirectory(t)
	log := logger.Nop()

	body := strings.NewReader(`{"username":"admin","password":"admin-pass"}`)
	w := httptest.NewRecorder()
	LoginHandler(store, dir, log).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/login", body))
	require.Equal(t, http.StatusNoContent, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	var got Principal
	r := httptest.NewRequest(http.MethodDelete, "/api/items/x", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w = httptest.NewRecorder()
	RequireAuth(store, dir, log)(capture(t, &got)).ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, RoleAdmin, got.Role)

	w = httptest.NewRecorder()
	LogoutHandler(store, log).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestLoginHandler_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"wrong password", `{"username":"admin","password":"x"}`, http.StatusUnauthorized},
		{"missing password", `{"username":"admin"}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			LoginHandler(newTestStore(), newTestDirectory(t), logger.Nop()).ServeHTTP(w, r)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
