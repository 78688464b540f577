package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/admission-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered  EventType = "account_registered"
	EventApplicantSubmitted EventType = "applicant_submitted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// NewEvent stamps an event with a fresh id and the current UTC time.
func NewEvent(eventType EventType, resourceID string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Timestamp:  time.Now().UTC(),
		Payload:    payload,
	}
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// ApplicantSubmittedPayload payload.
type ApplicantSubmittedPayload struct {
	FullName     string             `json:"full_name"`
	Email        string             `json:"email"`
	StudyProgram string             `json:"study_program"`
	StudyDegree  domain.StudyDegree `json:"study_degree"`
	Intake       domain.Intake      `json:"intake"`
}
