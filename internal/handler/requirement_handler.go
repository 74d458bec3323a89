package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"sertifikat-identitas/internal/domain"
	"sertifikat-identitas/internal/middleware"
	"sertifikat-identitas/internal/service/requirement"
)

type RequirementHandler struct {
	reqService requirement.Service
}

func NewRequirementHandler(reqService requirement.Service) *RequirementHandler {
	return &RequirementHandler{reqService: reqService}
}

func (h *RequirementHandler) ListActive(c *fiber.Ctx) error {
	serviceType := domain.ServiceType(c.Query("service_type", string(domain.ServiceIdentityCertificate)))
	if !serviceType.IsValid() {
		return middleware.BadRequest("Unknown service type")
	}

	reqs, err := h.reqService.ListActive(c.Context(), serviceType)
	if err != nil {
		if errors.Is(err, requirement.ErrCatalogUnavailable) {
			return middleware.ServiceUnavailable("Requirement catalog is temporarily unavailable")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"requirements": reqs,
	})
}
