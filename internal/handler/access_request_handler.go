package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/middleware"
	"accessdesk/internal/repository"
	"accessdesk/internal/service/accessrequest"
)

type AccessRequestHandler struct {
	requestService accessrequest.Service
}

func NewAccessRequestHandler(requestService accessrequest.Service) *AccessRequestHandler {
	return &AccessRequestHandler{requestService: requestService}
}

func (h *AccessRequestHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAccessRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Create(middleware.RequestContext(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(req)
}

func (h *AccessRequestHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	var filter repository.AccessRequestFilter
	if status := c.Query("status"); status != "" {
		st := domain.RequestStatus(status)
		if !st.IsValid() {
			return middleware.BadRequest("Invalid status filter")
		}
		filter.Status = &st
	}
	if employeeID := c.Query("employee_id"); employeeID != "" {
		id, err := uuid.Parse(employeeID)
		if err != nil {
			return middleware.BadRequest("Invalid employee ID filter")
		}
		filter.EmployeeID = &id
	}
	if systemID := c.Query("system_id"); systemID != "" {
		id, err := uuid.Parse(systemID)
		if err != nil {
			return middleware.BadRequest("Invalid system ID filter")
		}
		filter.SystemID = &id
	}

	result, err := h.requestService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AccessRequestHandler) Get(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	req, err := h.requestService.GetByID(c.Context(), requestID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AccessRequestHandler) Update(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.UpdateAccessRequestInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.Update(middleware.RequestContext(c), requestID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AccessRequestHandler) Delete(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	if err := h.requestService.Delete(middleware.RequestContext(c), requestID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Access request deleted"})
}

func (h *AccessRequestHandler) SupervisorDecide(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.SupervisorDecisionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.SupervisorDecide(middleware.RequestContext(c), requestID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}

func (h *AccessRequestHandler) ITDecide(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("requestId"))
	if err != nil {
		return middleware.BadRequest("Invalid request ID")
	}

	var input domain.ITDecisionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	req, err := h.requestService.ITDecide(middleware.RequestContext(c), requestID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(req)
}
