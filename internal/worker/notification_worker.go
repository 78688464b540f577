package worker

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/admission-service/internal/events"
	"github.com/spec-kit/admission-service/internal/service"
)

// ErrQueueFull is returned when an event cannot be buffered.
var ErrQueueFull = errors.New("notification queue full")

const defaultQueueSize = 64

// NotificationWorker delivers notifications off the request path. Events are
// buffered and handed to the notification service by a single goroutine.
type NotificationWorker struct {
	notifications *service.NotificationService
	logger        *zap.Logger
	queue         chan events.Event

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewNotificationWorker creates a worker with the given buffer size.
func NewNotificationWorker(notifications *service.NotificationService, logger *zap.Logger, queueSize int) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &NotificationWorker{
		notifications: notifications,
		logger:        logger,
		queue:         make(chan events.Event, queueSize),
		done:          make(chan struct{}),
	}
}

// Subscribe registers the worker's enqueue handler on the dispatcher.
func (w *NotificationWorker) Subscribe(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	for _, eventType := range service.NotifiedEvents {
		dispatcher.Subscribe(eventType, w.Enqueue)
	}
}

// Enqueue buffers an event without blocking. A full queue drops the event
// and returns ErrQueueFull, which the dispatcher logs.
func (w *NotificationWorker) Enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Start launches the delivery goroutine. It runs until Stop or ctx is done.
func (w *NotificationWorker) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)
	go w.run(ctx)
}

// Stop cancels delivery and waits for the goroutine to exit. Events still
// queued are delivered first.
func (w *NotificationWorker) Stop() {
	w.stopOnce.Do(func() {
		if w.cancel == nil {
			close(w.done)
			return
		}
		w.cancel()
		<-w.done
	})
}

func (w *NotificationWorker) run(ctx context.Context) {
	defer close(w.done)
	for {
		select {
		case event := <-w.queue:
			w.deliver(event)
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

func (w *NotificationWorker) drain() {
	for {
		select {
		case event := <-w.queue:
			w.deliver(event)
		default:
			return
		}
	}
}

func (w *NotificationWorker) deliver(event events.Event) {
	if w.notifications == nil {
		return
	}
	if err := w.notifications.Handle(context.Background(), event); err != nil {
		w.logger.Warn("notification failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
