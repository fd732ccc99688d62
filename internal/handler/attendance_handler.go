package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/service"
	"github.com/noah-isme/edu-records-api/internal/utils"
)

// AttendanceHandler handles attendance endpoints.
type AttendanceHandler struct {
	service     service.AttendanceService
	bulkLimiter fiber.Handler
	logger      zerolog.Logger
}

// NewAttendanceHandler constructs the handler. bulkLimiter guards the bulk route
// and may be nil.
func NewAttendanceHandler(service service.AttendanceService, bulkLimiter fiber.Handler, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		service:     service,
		bulkLimiter: bulkLimiter,
		logger:      logger.With().Str("component", "attendance_handler").Logger(),
	}
}

// Register wires routes for attendance.
func (h *AttendanceHandler) Register(router fiber.Router) {
	router.Post("", h.create)
	router.Post("/bulk", withLimiter(h.bulkLimiter, h.bulkCreate)...)
	router.Get("", h.list)
	router.Get("/student/:studentId", h.listForStudent)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *AttendanceHandler) create(c *fiber.Ctx) error {
	var payload dto.AttendanceCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	record, err := h.service.Create(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to record attendance")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance recorded", record)
}

func (h *AttendanceHandler) bulkCreate(c *fiber.Ctx) error {
	var payload dto.AttendanceBulkRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	result, err := h.service.BulkCreate(withRequestContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to record attendance batch")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "attendance batch recorded", result)
}

func (h *AttendanceHandler) list(c *fiber.Ctx) error {
	query, err := attendanceListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	items, err := h.service.List(withRequestContext(c), query)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", items)
}

func (h *AttendanceHandler) listForStudent(c *fiber.Ctx) error {
	studentID, err := parseUintParam(c, "studentId")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	query, err := attendanceListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	items, err := h.service.ListForStudent(withRequestContext(c), studentID, query)
	if err != nil {
		return respondError(c, h.logger, err, "failed to list student attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", items)
}

func (h *AttendanceHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	record, err := h.service.Get(withRequestContext(c), id)
	if err != nil {
		return respondError(c, h.logger, err, "failed to load attendance")
	}
	return utils.SendSuccess(c, "attendance retrieved", record)
}

func (h *AttendanceHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AttendanceUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return invalidBody(c)
	}

	record, err := h.service.Update(withRequestContext(c), id, payload)
	if err != nil {
		return respondError(c, h.logger, err, "failed to update attendance")
	}
	return utils.SendSuccess(c, "attendance updated", record)
}

func (h *AttendanceHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(withRequestContext(c), id); err != nil {
		return respondError(c, h.logger, err, "failed to delete attendance")
	}
	return utils.SendSuccess(c, "attendance deleted", fiber.Map{"id": id})
}

func attendanceListQuery(c *fiber.Ctx) (dto.AttendanceListRequest, error) {
	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return dto.AttendanceListRequest{}, err
	}
	courseID, err := parseQueryUint(c, "course_id")
	if err != nil {
		return dto.AttendanceListRequest{}, err
	}
	return dto.AttendanceListRequest{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    c.Query("status"),
		From:      c.Query("from"),
		To:        c.Query("to"),
	}, nil
}
