package core

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrorResponse is the flat error payload of every JSON endpoint
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON renders v as JSON with the given status
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// WriteErrorResponse writes the error's client message with the given status
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, err *AppError) {
	WriteJSON(w, r, statusCode, ErrorResponse{Error: err.Message})
}

// HandleError logs err and writes the matching status and generic message.
func HandleError(w http.ResponseWriter, r *http.Request, logger *Logger, err error) {
	appErr := AsAppError(err)
	statusCode := GetHTTPStatusCode(appErr)

	log := logger.WithContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "code", appErr.Code, "error", appErr.Err)
	} else {
		log.Debug("Request rejected", "method", r.Method, "path", r.URL.Path, "code", appErr.Code, "error", appErr.Err)
	}

	WriteErrorResponse(w, r, statusCode, appErr)
}
