package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/config"
	"github.com/spec-kit/admission-service/internal/events"
)

// NotificationService turns domain events into outbound notifications. It is
// driven by the notification worker, never by the request path.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger, cfg: cfg}
}

// NotifiedEvents lists the event types Handle reacts to.
var NotifiedEvents = []events.EventType{
	events.EventAccountRegistered,
	events.EventApplicantSubmitted,
}

// Handle routes an event to its notification handler.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventAccountRegistered:
		return n.handleAccountRegistered(ctx, event)
	case events.EventApplicantSubmitted:
		return n.handleApplicantSubmitted(ctx, event)
	default:
		return nil
	}
}

func (n *NotificationService) handleAccountRegistered(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.AccountRegisteredPayload)
	n.logger.Info("AccountRegistered", zap.String("account_id", event.ResourceID), zap.String("role", string(payload.Role)))
	n.sendEmailNotificationStub(ctx, event, payload.Email)
	return nil
}

func (n *NotificationService) handleApplicantSubmitted(ctx context.Context, event events.Event) error {
	payload, _ := event.Payload.(events.ApplicantSubmittedPayload)
	n.logger.Info("ApplicantSubmitted",
		zap.String("applicant_id", event.ResourceID),
		zap.String("study_program", payload.StudyProgram),
		zap.String("intake", string(payload.Intake)))
	n.sendEmailNotificationStub(ctx, event, payload.Email)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || to == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("resource_id", event.ResourceID),
		zap.String("event_type", string(event.Type)))
}
