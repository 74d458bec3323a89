package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/service/reapplication"
	"sertifikat-identitas/internal/service/requirement"
)

type ReapplicationHandler struct {
	reappService reapplication.Service
}

func NewReapplicationHandler(reappService reapplication.Service) *ReapplicationHandler {
	return &ReapplicationHandler{reappService: reappService}
}

func (h *ReapplicationHandler) ListEligible(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	eligible, err := h.reappService.ListEligible(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"applications": eligible,
	})
}

func (h *ReapplicationHandler) Preview(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	plan, err := h.reappService.PreviewPlan(c.Context(), userID, applicationID)
	if err != nil {
		return mapReapplicationError(err)
	}

	return c.Status(fiber.StatusOK).JSON(plan)
}

func (h *ReapplicationHandler) Commit(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	var input domain.CommitReapplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.SourceUpdatedAt.IsZero() {
		return middleware.BadRequest("source_updated_at is required")
	}

	meta := &reapplication.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	newApp, record, err := h.reappService.Commit(c.Context(), userID, applicationID, input, meta)
	if err != nil {
		return mapReapplicationError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"application":   newApp,
		"reapplication": record,
	})
}

func (h *ReapplicationHandler) ListRecords(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)

	result, err := h.reappService.ListRecords(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func mapReapplicationError(err error) error {
	switch {
	case errors.Is(err, reapplication.ErrApplicationNotFound):
		return middleware.NotFound("Application not found")
	case errors.Is(err, reapplication.ErrNotEligible):
		return middleware.Conflict("Application is not eligible for re-application")
	case errors.Is(err, reapplication.ErrStalePlan):
		return middleware.Conflict("Application changed since the plan was generated, request a new preview")
	case errors.Is(err, reapplication.ErrCommitConflict):
		return middleware.Conflict("Another re-application is in progress for this application")
	case errors.Is(err, requirement.ErrCatalogUnavailable):
		return middleware.ServiceUnavailable("Requirement catalog is temporarily unavailable")
	}
	return err
}
