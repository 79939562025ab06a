package auth

import (
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storecatalog/pkg/httpx"
	"github.com/ghuser/storecatalog/pkg/logger"
)

const (
	sessionName        = "storecatalog_session"
	sessionUsernameKey = "username"
	basicRealm         = `Basic realm="storecatalog"`
)

// RequireAuth is a chi middleware that resolves the caller from a session
// cookie or, failing that, HTTP Basic credentials. The resolved Principal is
// injected into the request context. Returns 401 when neither is valid.
//
// After this middleware, handlers can safely call auth.PrincipalFromCtx(r.Context()).
func RequireAuth(store sessions.Store, dir *Directory, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p, ok := principalFromSession(r, store, dir, log); ok {
				next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
				return
			}

			if username, password, ok := r.BasicAuth(); ok {
				p, err := dir.Authenticate(username, password)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
					return
				}
				log.WarnContext(r.Context(), "basic auth rejected", "username", username)
			}

			w.Header().Set("WWW-Authenticate", basicRealm)
			httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		})
	}
}

func principalFromSession(r *http.Request, store sessions.Store, dir *Directory, log logger.Logger) (Principal, bool) {
	if store == nil {
		return Principal{}, false
	}
	session, err := store.Get(r, sessionName)
	if err != nil {
		log.WarnContext(r.Context(), "invalid session cookie", "error", err)
		return Principal{}, false
	}
	username, ok := session.Values[sessionUsernameKey].(string)
	if !ok || username == "" {
		return Principal{}, false
	}
	// Roles come from the directory so a changed configuration applies to live sessions.
	p, ok := dir.Lookup(username)
	if !ok {
		log.WarnContext(r.Context(), "session references unknown user", "username", username)
		return Principal{}, false
	}
	return p, true
}
