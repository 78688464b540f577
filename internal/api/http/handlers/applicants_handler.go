package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admission-service/internal/api/dto"
	"github.com/spec-kit/admission-service/internal/repository"
	"github.com/spec-kit/admission-service/internal/service"
	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

// MsgApplicantAccepted acknowledges a stored admission form.
const MsgApplicantAccepted = "Pendaftaran berhasil diterima"

// ApplicantsHandler exposes the admission form endpoints.
type ApplicantsHandler struct {
	applicants *service.ApplicantService
}

// NewApplicantsHandler constructs handler.
func NewApplicantsHandler(applicantService *service.ApplicantService) *ApplicantsHandler {
	return &ApplicantsHandler{applicants: applicantService}
}

// Submit handles POST /api/applicants.
func (h *ApplicantsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ApplicantRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	applicant, err := h.applicants.Submit(c.UserContext(), req.ToDomain())
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.ApplicantCreatedResponse{ID: applicant.ID, Message: MsgApplicantAccepted},
	})
}

// AdminList handles GET /admin/applicants.
func (h *ApplicantsHandler) AdminList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", repository.DefaultApplicantLimit)

	applicants, err := h.applicants.List(c.UserContext(), limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.NewApplicantResponses(applicants),
	})
}
