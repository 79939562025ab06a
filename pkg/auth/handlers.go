package auth

import (
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/storecatalog/pkg/httpx"
	"github.com/ghuser/storecatalog/pkg/logger"
	"github.com/ghuser/storecatalog/pkg/validator"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginHandler verifies credentials and starts a session.
//
//	@Summary	Log in
//	@Tags		auth
//	@Accept		json
//	@Param		body	body	LoginRequest	true	"Credentials"
//	@Success	204
//	@Failure	400	{object}	map[string]string
//	@Failure	401	{object}	map[string]string
//	@Router		/auth/login [post]
func LoginHandler(store sessions.Store, dir *Directory, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := validator.ValidateRequest[LoginRequest](w, r)
		if !ok {
			return
		}

		p, err := dir.Authenticate(req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				log.WarnContext(r.Context(), "login rejected", "username", req.Username)
				httpx.JSONError(w, http.StatusUnauthorized, err.Error())
				return
			}
			httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		session, err := store.Get(r, sessionName)
		if err != nil {
			log.WarnContext(r.Context(), "discarding unreadable session", "error", err)
		}
		session.Values[sessionUsernameKey] = p.Username
		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "save session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}

		log.InfoContext(r.Context(), "user logged in", "username", p.Username, "role", p.Role)
		w.WriteHeader(http.StatusNoContent)
	}
}

// LogoutHandler ends the current session. It succeeds even without one.
//
//	@Summary	Log out
//	@Tags		auth
//	@Success	204
//	@Router		/auth/logout [post]
func LogoutHandler(store sessions.Store, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := store.Get(r, sessionName)
		if err != nil {
			log.WarnContext(r.Context(), "discarding unreadable session", "error", err)
		}
		session.Options.MaxAge = -1
		if err := session.Save(r, w); err != nil {
			log.ErrorContext(r.Context(), "expire session", "error", err)
			httpx.JSONError(w, http.StatusInternalServerError, "An unexpected error occurred")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
