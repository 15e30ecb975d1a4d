package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/middleware"
	"accessdesk/internal/service/accesstype"
)

type AccessTypeHandler struct {
	accessTypeService accesstype.Service
}

func NewAccessTypeHandler(accessTypeService accesstype.Service) *AccessTypeHandler {
	return &AccessTypeHandler{accessTypeService: accessTypeService}
}

func (h *AccessTypeHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateAccessTypeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	at, err := h.accessTypeService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(at)
}

func (h *AccessTypeHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)
	activeOnly := c.QueryBool("active_only", false)

	result, err := h.accessTypeService.List(c.Context(), activeOnly, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *AccessTypeHandler) Get(c *fiber.Ctx) error {
	accessTypeID, err := uuid.Parse(c.Params("accessTypeId"))
	if err != nil {
		return middleware.BadRequest("Invalid access type ID")
	}

	at, err := h.accessTypeService.GetByID(c.Context(), accessTypeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(at)
}

func (h *AccessTypeHandler) Update(c *fiber.Ctx) error {
	accessTypeID, err := uuid.Parse(c.Params("accessTypeId"))
	if err != nil {
		return middleware.BadRequest("Invalid access type ID")
	}

	var input domain.UpdateAccessTypeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	at, err := h.accessTypeService.Update(c.Context(), accessTypeID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(at)
}

func (h *AccessTypeHandler) Delete(c *fiber.Ctx) error {
	accessTypeID, err := uuid.Parse(c.Params("accessTypeId"))
	if err != nil {
		return middleware.BadRequest("Invalid access type ID")
	}

	if err := h.accessTypeService.Delete(c.Context(), accessTypeID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Access type deleted"})
}
