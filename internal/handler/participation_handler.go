package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/service"
	"github.com/noah-isme/edu-records-api/internal/utils"
)

// ParticipationHandler handles participation endpoints.
type ParticipationHandler struct {
	service     service.ParticipationService
	bulkLimiter fiber.Handler
	logger      zerolog.Logger
}

// NewParticipationHandler constructs the handler. bulkLimiter guards the bulk route
// and may be nil.
func NewParticipationHandler(service service.ParticipationService, bulkLimiter fiber.Handler, logger zerolog.Logger) *ParticipationHandler {
	return &ParticipationHandler{
		service:     service,
		bulkLimiter: bulkLimiter,
		logger:      logger.With().Str("component", "participation_handler").Logger(),
	}
}

// Register wires routes for participation.
func (h *ParticipationHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Post("/bulk", withLimiter(h.bulkLimiter, h.bulkCreate)...)
	router.Get("", h.list)
	router.Get("/student/:studentId", h.listForStudent)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ParticipationHandler) create(c *fiber.Ctx) error {
	var payload dto.ParticipationCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	record, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to record participation")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "participation recorded", record)
}

func (h *ParticipationHandler) bulkCreate(c *fiber.Ctx) error {
	var payload dto.ParticipationBulkRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	result, err := h.service.BulkCreate(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to record participation batch")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "participation batch recorded", result)
}

func (h *ParticipationHandler) list(c *fiber.Ctx) error {
	query, err := participationListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	items, err := h.service.List(withRequestContext(c), query)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list participation")
	}
	return utils.SendSuccess(c, "participation retrieved", items)
}

func (h *ParticipationHandler) listForStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	query, err := participationListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	items, err := h.service.ListForStudent(withRequestContext(c), studentID, query)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list student participation")
	}
	return utils.SendSuccess(c, "participation retrieved", items)
}

func (h *ParticipationHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := h.service.Get(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load participation")
	}
	return utils.SendSuccess(c, "participation retrieved", record)
}

func (h *ParticipationHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ParticipationUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	record, err := h.service.Update(withRequestContext(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update participation")
	}
	return utils.SendSuccess(c, "participation updated", record)
}

func (h *ParticipationHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "failed to delete participation")
	}
	return utils.SendSuccess(c, "participation deleted", fiber.Map{"id": id})
}

func participationListQuery(c *fiber.Ctx) (dto.ParticipationListRequest, error) {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return dto.ParticipationListRequest{}, err
	}
	courseID, err := parseQueryUint(c, "course_id")
	if err != nil {
		return dto.ParticipationListRequest{}, err
	}
	return dto.ParticipationListRequest{
		StudentID: studentID,
		CourseID:  courseID,
		Metric:    c.Query("metric"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}, nil
}
