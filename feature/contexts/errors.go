package contexts

import (
	"errors"

	"asset-bridge/core/bridge"

	"github.com/gofiber/fiber/v2"
)

// ErrBadRequest marks malformed input.
var ErrBadRequest = errors.New("bad request")

// statusFor maps bridge errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest):
		return fiber.StatusBadRequest
	case errors.Is(err, bridge.ErrInvalidHandle):
		return fiber.StatusNotFound
	case errors.Is(err, bridge.ErrNoActiveScene):
		return fiber.StatusConflict
	case errors.Is(err, bridge.ErrAllocationFailure):
		return fiber.StatusInsufficientStorage
	case errors.Is(err, bridge.ErrImportFailure):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrHistoryDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
