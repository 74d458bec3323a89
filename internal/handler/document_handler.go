package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/service/document"
	"sertifikat-identitas/internal/service/requirement"
)

const maxDocumentSize = 10 * 1024 * 1024

type DocumentHandler struct {
	docService document.Service
}

func NewDocumentHandler(docService document.Service) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	if file.Size > maxDocumentSize {
		return middleware.BadRequest("File size must be less than 10MB")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	requirementID, err := uuid.Parse(c.FormValue("requirement_id"))
	if err != nil {
		return middleware.BadRequest("Invalid requirement ID")
	}

	input := domain.UploadDocumentInput{RequirementID: requirementID}
	if expires := c.FormValue("expires_at"); expires != "" {
		expiresAt, err := time.Parse(time.RFC3339, expires)
		if err != nil {
			return middleware.BadRequest("expires_at must be RFC3339")
		}
		input.ExpiresAt = &expiresAt
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	doc, err := h.docService.Upload(c.Context(), userID, applicationID, input, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		switch {
		case errors.Is(err, document.ErrApplicationNotFound):
			return middleware.NotFound("Application not found")
		case errors.Is(err, document.ErrApplicationLocked):
			return middleware.Conflict("Application can no longer receive documents")
		case errors.Is(err, document.ErrUnknownRequirement):
			return middleware.BadRequest("Requirement does not belong to this service type")
		case errors.Is(err, requirement.ErrCatalogUnavailable):
			return middleware.ServiceUnavailable("Requirement catalog is temporarily unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	doc, err := h.docService.GetByID(c.Context(), userID, documentID)
	if err != nil {
		if errors.Is(err, document.ErrDocumentNotFound) {
			return middleware.NotFound("Document not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

func (h *DocumentHandler) ListByApplication(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	includeSuperseded := c.Query("include_superseded") == "true"

	docs, err := h.docService.ListByApplication(c.Context(), userID, applicationID, includeSuperseded)
	if err != nil {
		if errors.Is(err, document.ErrApplicationNotFound) {
			return middleware.NotFound("Application not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"documents": docs,
	})
}
