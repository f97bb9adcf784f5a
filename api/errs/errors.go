package errs

import (
	"errors"
	"net/http"
)

var (
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingField       = errors.New("missing required field")
	ErrInvalidCategory    = errors.New("invalid note category")
	ErrInvalidStatus      = errors.New("invalid project status")
	ErrProjectNotFound    = errors.New("project not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrAPIKeyMissing      = errors.New("openai api key not configured")
	ErrReadmeInProgress   = errors.New("readme generation already in progress")
)

var ErrStatusMap = map[error]int{
	ErrNotAuthenticated:   http.StatusUnauthorized,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrMissingField:       http.StatusUnprocessableEntity,
	ErrInvalidCategory:    http.StatusUnprocessableEntity,
	ErrInvalidStatus:      http.StatusUnprocessableEntity,
	ErrProjectNotFound:    http.StatusNotFound,
	ErrNoteNotFound:       http.StatusNotFound,
	ErrAPIKeyMissing:      http.StatusServiceUnavailable,
	ErrReadmeInProgress:   http.StatusConflict,
}
