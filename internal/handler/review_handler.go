package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/service/review"
)

type ReviewHandler struct {
	reviewService review.Service
}

func NewReviewHandler(reviewService review.Service) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (h *ReviewHandler) ReviewApplication(c *fiber.Ctx) error {
	reviewerID := middleware.GetCurrentUserID(c)

	applicationID, err := uuid.Parse(c.Params("applicationId"))
	if err != nil {
		return middleware.BadRequest("Invalid application ID")
	}

	var input domain.ReviewApplicationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	meta := &review.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	app, err := h.reviewService.ReviewApplication(c.Context(), reviewerID, applicationID, input, meta)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrApplicationNotFound):
			return middleware.NotFound("Application not found")
		case errors.Is(err, review.ErrInvalidStatus):
			return middleware.BadRequest("Invalid review status")
		case errors.Is(err, review.ErrNotReviewable):
			return middleware.Conflict("Application has not been submitted")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(app)
}

func (h *ReviewHandler) ReviewDocument(c *fiber.Ctx) error {
	reviewerID := middleware.GetCurrentUserID(c)

	documentID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return middleware.BadRequest("Invalid document ID")
	}

	var input domain.ReviewDocumentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	meta := &review.RequestMeta{
		IPAddress: middleware.GetIPAddress(c),
		UserAgent: middleware.GetUserAgent(c),
	}

	doc, err := h.reviewService.ReviewDocument(c.Context(), reviewerID, documentID, input, meta)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrDocumentNotFound):
			return middleware.NotFound("Document not found")
		case errors.Is(err, review.ErrApplicationNotFound):
			return middleware.NotFound("Application not found")
		case errors.Is(err, review.ErrInvalidStatus):
			return middleware.BadRequest("Invalid review status")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}
