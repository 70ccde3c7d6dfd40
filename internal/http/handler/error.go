package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"imageapi/internal/http/middleware"
	"imageapi/internal/service"
)

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apiError is a client-safe failure: a status plus a stable machine code.
type apiError struct {
	status  int
	code    string
	message string
}

var (
	errBadRequest       = apiError{fiber.StatusBadRequest, "BAD_REQUEST", "bad request"}
	errFileRequired     = apiError{fiber.StatusBadRequest, "FILE_REQUIRED", "file not provided"}
	errFileOpen         = apiError{fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file"}
	errInvalidFormat    = apiError{fiber.StatusBadRequest, "INVALID_FORMAT", "invalid format, an image is required"}
	errNotFound         = apiError{fiber.StatusNotFound, "NOT_FOUND", "file not found"}
	errRouteNotFound    = apiError{fiber.StatusNotFound, "NOT_FOUND", "resource not found"}
	errMethodNotAllowed = apiError{fiber.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed"}
	errTooLarge         = apiError{fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "upload exceeds the size limit"}
	errBlobMissing      = apiError{fiber.StatusInternalServerError, "BLOB_MISSING", "file content unavailable"}
	errInternal         = apiError{fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"}
	errUnavailable      = apiError{fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable"}
)

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	s, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return s
}

// respond writes e in the standard envelope. Internal error text never reaches it.
func respond(c *fiber.Ctx, e apiError) error {
	return c.Status(e.status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: e.code, Message: e.message},
	})
}

// fromService maps a service failure; ok is false for unexpected errors.
func fromService(err error) (apiError, bool) {
	switch {
	case errors.Is(err, service.ErrFileRequired):
		return errFileRequired, true
	case errors.Is(err, service.ErrNotImage):
		return errInvalidFormat, true
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrIDRequired):
		return errNotFound, true
	case errors.Is(err, service.ErrBlobMissing):
		return errBlobMissing, true
	default:
		return errInternal, false
	}
}

// ErrorHandler renders errors returned by handlers and by fiber itself.
func ErrorHandler() fiber.ErrorHandler {
	byStatus := map[int]apiError{
		fiber.StatusBadRequest:            errBadRequest,
		fiber.StatusNotFound:              errRouteNotFound,
		fiber.StatusMethodNotAllowed:      errMethodNotAllowed,
		fiber.StatusRequestEntityTooLarge: errTooLarge,
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if e, ok := byStatus[fe.Code]; ok {
				return respond(c, e)
			}
		}
		return respond(c, errInternal)
	}
}
