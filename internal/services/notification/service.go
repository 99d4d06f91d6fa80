package notification

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrClosed is returned by Close when the service was already closed
var ErrClosed = errors.New("notification service closed")

type service struct {
	sinks   []Sink
	timeout time.Duration
	logger  *slog.Logger

	queue  chan *NotifyInput
	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// New creates a notification service and starts its delivery worker
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &service{
		sinks:   cfg.Sinks,
		timeout: timeout,
		logger:  logger.With("component", "notification"),
		queue:   make(chan *NotifyInput, queueSize),
		done:    make(chan struct{}),
	}

	go s.run()

	return s, nil
}

// Notify queues the entry, dropping it if the queue is full or the service is closed
func (s *service) Notify(ctx context.Context, input *NotifyInput) {
	if input == nil || input.Entry == nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.logger.Warn("dropping notification after close",
			"session_id", input.SessionID,
			"entry_type", input.Entry.Type())
		return
	}

	select {
	case s.queue <- input:
	default:
		s.logger.Warn("notification queue full, dropping entry",
			"session_id", input.SessionID,
			"entry_type", input.Entry.Type())
	}
}

// Close drains the queue and stops the worker
func (s *service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
	return nil
}

func (s *service) run() {
	defer close(s.done)
	for input := range s.queue {
		s.deliver(input)
	}
}

// deliver sends to each sink in turn; one failing sink does not stop the others
func (s *service) deliver(input *NotifyInput) {
	for _, sink := range s.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		err := sink.Send(ctx, input)
		cancel()
		if err != nil {
			s.logger.Error("failed to deliver notification",
				"sink", sink.Name(),
				"session_id", input.SessionID,
				"entry_type", input.Entry.Type(),
				"error", err)
		}
	}
}
