package api

import (
	"errors"
	"net/http"

	"github.com/rongwang/txvault/internal/service"
)

// statusForError is the single place mapping domain errors to HTTP codes.
// Business-rule rejections are reported as 500, the same as store faults.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusInternalServerError
	case errors.Is(err, service.ErrRecordNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
