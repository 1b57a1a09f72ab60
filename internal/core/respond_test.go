package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleErrorHidesCause(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"plain error", errors.New("disk on fire"), http.StatusInternalServerError, MsgInternal},
		{"not found", NewNotFoundError("Article not found", errors.New("no rows")), http.StatusNotFound, "Article not found"},
		{"validation", NewValidationError("title is required", nil), http.StatusBadRequest, "title is required"},
		{"credentials", NewInvalidCredentialsError(errors.New("wrong password")), http.StatusUnauthorized, MsgInvalidCredentials},
		{"duplicate", NewDuplicateError("User already exists", nil), http.StatusBadRequest, "User already exists"},
		{"upload", NewUploadError("Upload failed", errors.New("AccessDenied")), http.StatusInternalServerError, "Upload failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)

			HandleError(rec, req, NewDiscardLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": tt.wantBody}, body)
		})
	}
}

func TestAsAppErrorUnwrapsWrapped(t *testing.T) {
	inner := NewNotFoundError("Article not found", nil)
	wrapped := errors.Join(errors.New("context"), inner)

	assert.Same(t, inner, AsAppError(wrapped))
}

func TestWriteJSONStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)

	WriteJSON(rec, req, http.StatusCreated, map[string]int{"n": 1})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
}
