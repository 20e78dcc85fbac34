package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/domain"
)

// View event names passed to Recorder.
const (
	EventRecorded = "recorded"
	EventDropped  = "dropped"
	EventFlushed  = "flushed"
	EventRequeued = "requeued"
)

// Service records profile views without blocking the caller and periodically
// moves the buffered counts into the record store.
type Service struct {
	counter  Counter
	sink     Sink
	recorder Recorder
	logger   *zap.Logger

	queue chan string
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once

	// mu orders Record sends against Stop closing done.
	mu      sync.RWMutex
	stopped bool
}

// New creates a Service with a queue of queueSize pending views.
func New(counter Counter, sink Sink, queueSize int, logger *zap.Logger) *Service {
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Service{
		counter: counter,
		sink:    sink,
		logger:  logger,
		queue:   make(chan string, queueSize),
		done:    make(chan struct{}),
	}
}

// WithRecorder attaches a view event observer.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Start launches the worker that moves queued views into the counter.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop drains the queue and waits for the worker, or until ctx expires.
func (s *Service) Stop(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		s.stopped = true
		close(s.done)
		s.mu.Unlock()
	})

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop views worker: %w", ctx.Err())
	}
}

// Record queues one view of a consultant profile.
// A full queue or a stopped service drops the view; neither is an error for the caller.
func (s *Service) Record(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("consultant id %q: %w", id, domain.ErrInvalidID)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		s.observe(EventDropped, 1)
		return nil
	}

	select {
	case s.queue <- id:
	default:
		s.observe(EventDropped, 1)
		s.logger.Debug("View queue full, dropping view", zap.String("consultant_id", id))
	}
	return nil
}

// Flush moves every buffered count into the record store and returns how many views
// were persisted. Counts the store rejects are put back for the next flush.
func (s *Service) Flush(ctx context.Context) (int64, error) {
	pending, drainErr := s.counter.Drain(ctx)

	var flushed int64
	var errs []error
	if drainErr != nil {
		errs = append(errs, drainErr)
	}
	for id, n := range pending {
		if err := s.sink.AddViews(ctx, id, n); err != nil {
			errs = append(errs, fmt.Errorf("persist views for %s: %w", id, err))
			s.requeue(ctx, id, n)
			continue
		}
		flushed += n
	}

	s.observe(EventFlushed, flushed)
	return flushed, errors.Join(errs...)
}

func (s *Service) requeue(ctx context.Context, id string, n int64) {
	if err := s.counter.Add(ctx, id, n); err != nil {
		s.logger.Error("Failed to requeue views, counts lost",
			zap.String("consultant_id", id),
			zap.Int64("views", n),
			zap.Error(err),
		)
		return
	}
	s.observe(EventRequeued, n)
}

func (s *Service) run() {
	defer s.wg.Done()
	for {
		select {
		case id := <-s.queue:
			s.add(id)
		case <-s.done:
			for {
				select {
				case id := <-s.queue:
					s.add(id)
				default:
					return
				}
			}
		}
	}
}

func (s *Service) add(id string) {
	if err := s.counter.Add(context.Background(), id, 1); err != nil {
		s.observe(EventDropped, 1)
		s.logger.Warn("Failed to buffer view", zap.String("consultant_id", id), zap.Error(err))
		return
	}
	s.observe(EventRecorded, 1)
}

func (s *Service) observe(event string, n int64) {
	if s.recorder != nil && n > 0 {
		s.recorder.ObserveViews(event, n)
	}
}
