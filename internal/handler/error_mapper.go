package handler

import (
	"errors"
	"log/slog"

	"github.com/forgo/circle/api/internal/model"
	"github.com/forgo/circle/api/internal/service"
)

// MapServiceError converts an error from a mutating service call into a
// ProblemDetails response. Every tagged service error is a client error (400)
// whose detail is the service message; anything else is logged and reported
// as an internal error.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	svcErr, ok := service.AsError(err)
	if !ok {
		slog.Error("unexpected service error", slog.String("error", err.Error()))
		return model.NewInternalError("")
	}

	switch {
	case errors.Is(svcErr, service.ErrNotFound):
		return model.NewClientError(svcErr.Error(), model.ErrCodeNotFound)
	case errors.Is(svcErr, service.ErrAlreadyExists):
		return model.NewClientError(svcErr.Error(), model.ErrCodeAlreadyExists)
	case errors.Is(svcErr, service.ErrInvalidReference):
		return model.NewClientError(svcErr.Error(), model.ErrCodeInvalidReference)
	case errors.Is(svcErr, service.ErrNotSubscribed):
		return model.NewClientError(svcErr.Error(), model.ErrCodeNotSubscribed)
	default:
		return model.NewClientError(svcErr.Error(), model.ErrCodeInvalidInput)
	}
}

// MapLookupError converts an error from a single-record read. A missing
// record is a 404 rather than the 400 used by mutating calls.
func MapLookupError(err error) *model.ProblemDetails {
	if svcErr, ok := service.AsError(err); ok && errors.Is(svcErr, service.ErrNotFound) {
		return model.NewNotFoundError(string(svcErr.Entity))
	}
	return MapServiceError(err)
}
