package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/admission-service/internal/config"
	"github.com/spec-kit/admission-service/internal/events"
	"github.com/spec-kit/admission-service/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newObservedNotifications() (*service.NotificationService, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := config.NotificationConfig{EmailFrom: "noreply@kampus.ac.id", WebhookURL: "http://hooks.local/admission"}
	return service.NewNotificationService(zap.New(core), cfg), logs
}

func TestNotificationWorker_DeliversQueuedEvents(t *testing.T) {
	notifications, logs := newObservedNotifications()
	dispatcher := events.NewInMemoryDispatcher(nil)
	w := NewNotificationWorker(notifications, nil, 8)
	w.Subscribe(dispatcher)
	w.Start(context.Background())

	dispatcher.Publish(context.Background(), events.NewEvent(events.EventApplicantSubmitted, "app-1",
		events.ApplicantSubmittedPayload{Email: "siti@x.com", StudyProgram: "Informatika"}))
	dispatcher.Publish(context.Background(), events.NewEvent(events.EventAccountRegistered, "acc-1",
		events.AccountRegisteredPayload{Email: "siti@x.com"}))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("ApplicantSubmitted").Len() == 1 &&
			logs.FilterMessage("AccountRegistered").Len() == 1
	}, time.Second, 10*time.Millisecond)

	w.Stop()
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNotificationWorker_StopDrainsQueue(t *testing.T) {
	notifications, logs := newObservedNotifications()
	w := NewNotificationWorker(notifications, nil, 8)

	for i := 0; i < 3; i++ {
		require.NoError(t, w.Enqueue(context.Background(), events.NewEvent(events.EventAccountRegistered, "acc", nil)))
	}
	w.Start(context.Background())
	w.Stop()

	assert.Equal(t, 3, logs.FilterMessage("AccountRegistered").Len())
}

func TestNotificationWorker_QueueFull(t *testing.T) {
	notifications, _ := newObservedNotifications()
	w := NewNotificationWorker(notifications, nil, 1)

	require.NoError(t, w.Enqueue(context.Background(), events.NewEvent(events.EventAccountRegistered, "a", nil)))
	assert.ErrorIs(t, w.Enqueue(context.Background(), events.NewEvent(events.EventAccountRegistered, "b", nil)), ErrQueueFull)
	w.Stop()
}
