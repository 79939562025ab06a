package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/storecatalog/pkg/auth"
	catalogdomain "github.com/ghuser/storecatalog/services/catalog/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", catalogdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrItemAlreadyExists", catalogdomain.ErrItemAlreadyExists, http.StatusConflict},
		{"ErrUnauthorized", catalogdomain.ErrUnauthorized, http.StatusForbidden},
		{"ErrUnauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized},
		{"ErrInvalidField", catalogdomain.ErrInvalidField, http.StatusBadRequest},
		{"ErrInvalidValue", catalogdomain.ErrInvalidValue, http.StatusBadRequest},
		{"ErrInvalidInput", catalogdomain.ErrInvalidInput, http.StatusBadRequest},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", catalogdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrInvalidValue", fmt.Errorf("%w: price: not numeric", catalogdomain.ErrInvalidValue), http.StatusBadRequest},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_BodyMessages(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), fmt.Errorf("find item: %w", catalogdomain.ErrItemNotFound))

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body["error"], "item not found") {
		t.Errorf("expected sentinel text in message, got %q", body["error"])
	}
}

func TestWriteError_InternalDetailNotLeaked(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody), errors.New("pq: password authentication failed for user catalog"))

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != InternalErrorMessage {
		t.Errorf("expected generic message, got %q", body["error"])
	}
	if w.Header().Get("Content-Type") != "application/json; charset=utf-8" {
		t.Errorf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
}
