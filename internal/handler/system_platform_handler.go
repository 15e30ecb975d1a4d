package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/middleware"
	"accessdesk/internal/service/systemplatform"
)

type SystemPlatformHandler struct {
	systemService systemplatform.Service
}

func NewSystemPlatformHandler(systemService systemplatform.Service) *SystemPlatformHandler {
	return &SystemPlatformHandler{systemService: systemService}
}

func (h *SystemPlatformHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateSystemPlatformInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sys, err := h.systemService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(sys)
}

func (h *SystemPlatformHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.systemService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *SystemPlatformHandler) Get(c *fiber.Ctx) error {
	systemID, err := uuid.Parse(c.Params("systemId"))
	if err != nil {
		return middleware.BadRequest("Invalid system ID")
	}

	sys, err := h.systemService.GetByID(c.Context(), systemID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(sys)
}

func (h *SystemPlatformHandler) Update(c *fiber.Ctx) error {
	systemID, err := uuid.Parse(c.Params("systemId"))
	if err != nil {
		return middleware.BadRequest("Invalid system ID")
	}

	var input domain.UpdateSystemPlatformInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	sys, err := h.systemService.Update(c.Context(), systemID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(sys)
}

func (h *SystemPlatformHandler) Delete(c *fiber.Ctx) error {
	systemID, err := uuid.Parse(c.Params("systemId"))
	if err != nil {
		return middleware.BadRequest("Invalid system ID")
	}

	if err := h.systemService.Delete(c.Context(), systemID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "System platform deleted"})
}
