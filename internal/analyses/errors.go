package analyses

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("analysis not found")
	ErrDuplicate      = errors.New("analysis already exists")
	ErrInvalidRequest = errors.New("invalid analysis request")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
