package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/service/application"
	"sertifikat-identitas/internal/service/requirement"
)

type ApplicationHandler struct {
	appService application.Service
}

func NewApplicationHandler(appService application.Service) *ApplicationHandler {
	return &ApplicationHandler{appService: appService}
}

func (h *ApplicationHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	app, err := h.appService.Create(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, application.ErrInvalidServiceType) {
			return middleware.BadRequest("Unknown service type")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.appService.ListByUser(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	app, err := h.appService.GetByID(c.Context(), userID, applicationID)
	if err != nil {
		if errors.Is(err, application.ErrApplicationNotFound) {
			return middleware.NotFound("Application not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	app, err := h.appService.Submit(c.Context(), userID, applicationID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrApplicationNotFound):
			return middleware.NotFound("Application not found")
		case errors.Is(err, application.ErrNotDraft):
			return middleware.Conflict("Application has already been submitted")
		case errors.Is(err, application.ErrMissingDocuments):
			return middleware.BadRequest(err.Error())
		case errors.Is(err, requirement.ErrCatalogUnavailable):
			return middleware.ServiceUnavailable("Requirement catalog is temporarily unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
