package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/middleware"
	"github.com/noah-isme/edu-records-api/internal/repository"
	"github.com/noah-isme/edu-records-api/internal/service"
	"github.com/noah-isme/edu-records-api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(parsed), nil
}

// parseQueryUint returns nil when the query parameter is absent.
func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return nil, fmt.Errorf("invalid %s", key)
	}
	id := uint(parsed)
	return &id, nil
}

func withRequestContext(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if ctx == nil {
		ctx = context.Background()
	}
	return middleware.ContextWithCorrelation(ctx, middleware.GetCorrelationID(c))
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// respondError maps a service failure to its HTTP status. Unclassified errors are
// logged and reported as a generic 500.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error, action string) error {
	if kind, ok := service.KindOf(err); ok {
		return utils.SendError(c, statusForKind(kind), err.Error())
	}

	var enrollmentErr *repository.BulkEnrollmentError
	if errors.As(err, &enrollmentErr) {
		return utils.SendError(c, fiber.StatusBadRequest, enrollmentErr.Error())
	}

	requestLogger(logger, c).Error().Err(err).Msg(action)
	return utils.SendError(c, fiber.StatusInternalServerError, "Internal server error")
}

func statusForKind(kind service.ErrorKind) int {
	switch kind {
	case service.KindInvalid, service.KindRelationship:
		return fiber.StatusBadRequest
	case service.KindNotFound:
		return fiber.StatusNotFound
	case service.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func invalidBody(c *fiber.Ctx) error {
	return utils.SendError(c, fiber.StatusBadRequest, "Invalid JSON payload")
}

func withLimiter(limiter fiber.Handler, next fiber.Handler) []fiber.Handler {
	if limiter == nil {
		return []fiber.Handler{next}
	}
	return []fiber.Handler{limiter, next}
}
