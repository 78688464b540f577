package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/domain"
	"github.com/spec-kit/admission-service/internal/events"
	"github.com/spec-kit/admission-service/internal/observability"
	"github.com/spec-kit/admission-service/internal/repository"
	apperrors "github.com/spec-kit/admission-service/pkg/util/errorutil"
)

// ApplicantService stores and lists admission forms.
type ApplicantService struct {
	applicants repository.ApplicantRepository
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// ApplicantDependencies encapsulates requirements for the applicant service.
type ApplicantDependencies struct {
	Applicants repository.ApplicantRepository
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// NewApplicantService builds the service.
func NewApplicantService(deps ApplicantDependencies) (*ApplicantService, error) {
	if deps.Applicants == nil {
		return nil, errors.New("applicant service requires a repository")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher(logger)
	}
	return &ApplicantService{
		applicants: deps.Applicants,
		dispatcher: dispatcher,
		metrics:    deps.Metrics,
		logger:     logger,
	}, nil
}

// Submit stores a validated admission form.
func (s *ApplicantService) Submit(ctx context.Context, applicant *domain.Applicant) (*domain.Applicant, error) {
	applicant.Email = domain.NormalizeEmail(applicant.Email)
	if err := s.applicants.Create(ctx, applicant); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.metrics.RecordApplicant()
	s.logger.Info("applicant submitted", zap.String("applicant_id", applicant.ID))
	s.dispatcher.Publish(ctx, events.NewEvent(events.EventApplicantSubmitted, applicant.ID, events.ApplicantSubmittedPayload{
		FullName:     applicant.FullName,
		Email:        applicant.Email,
		StudyProgram: applicant.StudyProgram,
		StudyDegree:  applicant.StudyDegree,
		Intake:       applicant.Intake,
	}))
	return applicant, nil
}

// List returns the newest applicants first; limit is clamped to the
// repository bounds.
func (s *ApplicantService) List(ctx context.Context, limit int) ([]domain.Applicant, error) {
	applicants, err := s.applicants.List(ctx, repository.ClampLimit(limit))
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return applicants, nil
}
