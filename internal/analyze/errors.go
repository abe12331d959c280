package analyze

import (
	"errors"
	"net/http"

	"github.com/veridict/veridict/internal/extract"
	"github.com/veridict/veridict/internal/probe"
)

var (
	ErrNoFile          = errors.New("no file provided")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrUnsupportedType = errors.New("unsupported file type")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoFile):
		return http.StatusBadRequest
	case errors.Is(err, ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, extract.ErrNotAPackage):
		return http.StatusBadRequest
	case errors.Is(err, extract.ErrUnknownPackageKind):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, probe.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, probe.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, probe.ErrProbeFailed):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
