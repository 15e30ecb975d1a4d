package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"accessdesk/internal/domain"
	"accessdesk/internal/middleware"
	"accessdesk/internal/service/employee"
	"accessdesk/internal/service/media"
)

type EmployeeHandler struct {
	employeeService employee.Service
	mediaService    media.Service
}

func NewEmployeeHandler(employeeService employee.Service, mediaService media.Service) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		mediaService:    mediaService,
	}
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	emp, err := h.employeeService.Create(c.Context(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(emp)
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := getPaginationParams(c)

	result, err := h.employeeService.List(c.Context(), params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return middleware.BadRequest("Invalid employee ID")
	}

	emp, err := h.employeeService.GetByID(c.Context(), employeeID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(emp)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return middleware.BadRequest("Invalid employee ID")
	}

	var input domain.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	emp, err := h.employeeService.Update(c.Context(), employeeID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(emp)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return middleware.BadRequest("Invalid employee ID")
	}

	if err := h.employeeService.Delete(c.Context(), employeeID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Employee deleted"})
}

func (h *EmployeeHandler) UploadProfileImage(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return middleware.BadRequest("Invalid employee ID")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("Missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return middleware.BadRequest("Unable to read file upload")
	}
	defer file.Close()

	url, err := h.mediaService.UploadProfileImage(c.Context(), employeeID,
		fileHeader.Filename, fileHeader.Size, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"profile_image": url})
}

func (h *EmployeeHandler) RemoveProfileImage(c *fiber.Ctx) error {
	employeeID, err := uuid.Parse(c.Params("employeeId"))
	if err != nil {
		return middleware.BadRequest("Invalid employee ID")
	}

	if err := h.mediaService.RemoveProfileImage(c.Context(), employeeID); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Profile image removed"})
}
