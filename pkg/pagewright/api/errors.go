package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/pagewright/pagewright/pkg/pagewright"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an error detail in the response envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeError maps a service error onto an HTTP status and error code and
// renders the JSON envelope. Unmapped errors become opaque 500s so upstream
// failure detail never leaks to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	message := "An internal error occurred"

	switch {
	case errors.Is(err, pagewright.ErrNotAuthenticated):
		status = http.StatusUnauthorized
		code = "NOT_AUTHENTICATED"
		message = "Authentication required"
	case errors.Is(err, pagewright.ErrMissingWebsite):
		status = http.StatusBadRequest
		code = "MISSING_WEBSITE_ID"
		message = "No website selected"
	case errors.Is(err, pagewright.ErrForbiddenPath):
		status = http.StatusForbidden
		code = "FORBIDDEN_PATH"
		message = "Path is outside the allowed roots"
	case errors.Is(err, pagewright.ErrProviderNotAllowed):
		status = http.StatusForbidden
		code = "PROVIDER_NOT_ALLOWED"
		message = "Folder is not a registered library provider"
	case errors.Is(err, pagewright.ErrInvalidFolderName):
		status = http.StatusBadRequest
		code = "INVALID_FOLDER_NAME"
		message = "Folder name is not valid"
	case errors.Is(err, pagewright.ErrFolderExists):
		status = http.StatusConflict
		code = "FOLDER_EXISTS"
		message = "A folder with that name already exists"
	case errors.Is(err, pagewright.ErrFolderNotEmpty):
		status = http.StatusBadRequest
		code = "FOLDER_NOT_EMPTY"
		message = "Folder is not empty"
	case errors.Is(err, pagewright.ErrBlobExists):
		status = http.StatusConflict
		code = "BLOB_EXISTS"
		message = "An object with that name already exists"
	case errors.Is(err, pagewright.ErrBlobNotFound):
		status = http.StatusNotFound
		code = "BLOB_NOT_FOUND"
		message = "Object not found"
	case errors.Is(err, pagewright.ErrPageNotFound):
		status = http.StatusNotFound
		code = "PAGE_NOT_FOUND"
		message = "Page not found"
	case errors.Is(err, pagewright.ErrTemplateNotFound):
		status = http.StatusNotFound
		code = "TEMPLATE_NOT_FOUND"
		message = "Page template not found"
	case errors.Is(err, pagewright.ErrContentTemplateNotFound):
		status = http.StatusNotFound
		code = "CONTENT_TEMPLATE_NOT_FOUND"
		message = "Content template not found"
	case errors.Is(err, pagewright.ErrSharedContentNotFound):
		status = http.StatusNotFound
		code = "SHARED_CONTENT_NOT_FOUND"
		message = "Shared content not found"
	case errors.Is(err, pagewright.ErrSharedContentExists):
		status = http.StatusConflict
		code = "SHARED_CONTENT_EXISTS"
		message = "Shared content with that name already exists"
	case errors.Is(err, pagewright.ErrNotificationNotFound):
		status = http.StatusNotFound
		code = "NOTIFICATION_NOT_FOUND"
		message = "Notification not found"
	}

	if status == http.StatusInternalServerError {
		slog.Error("request failed", "path", r.URL.Path, "error", err)
	}

	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// writeValidationError renders a 400 with a caller-supplied message.
func writeValidationError(w http.ResponseWriter, r *http.Request, message string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{Error: ErrorDetail{Code: "VALIDATION_ERROR", Message: message}})
}
