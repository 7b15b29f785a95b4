package queue

import (
	"errors"
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"vicmar/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// InquiryQueue is an in-memory queue of submitted inquiries waiting to be
// delivered to notification handlers.
type InquiryQueue struct {
	items    chan models.Inquiry
	done     chan struct{}
	stopped  chan struct{}
	maxSize  int
	closed   bool
	started  bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(models.Inquiry) error
}

// NewInquiryQueue creates a new inquiry queue with the specified buffer size
func NewInquiryQueue(bufferSize int, logger *logrus.Logger) *InquiryQueue {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &InquiryQueue{
		items:    make(chan models.Inquiry, bufferSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(models.Inquiry) error, 0),
	}
}

// Push adds an inquiry to the queue without blocking
func (q *InquiryQueue) Push(inquiry models.Inquiry) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- inquiry:
		q.logger.WithField("inquiry_id", inquiry.ID).Debug("Pushed inquiry to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each inquiry
func (q *InquiryQueue) Subscribe(handler func(models.Inquiry) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *InquiryQueue) Start() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.started || q.closed {
		return
	}
	q.started = true
	go q.process()
}

func (q *InquiryQueue) process() {
	defer close(q.stopped)
	for {
		select {
		case <-q.done:
			// deliver what was accepted before Close
			for {
				select {
				case inquiry := <-q.items:
					q.dispatch(inquiry)
				default:
					return
				}
			}
		case inquiry := <-q.items:
			q.dispatch(inquiry)
		}
	}
}

// dispatch sends the inquiry to all subscribed handlers
func (q *InquiryQueue) dispatch(inquiry models.Inquiry) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(inquiry); err != nil {
			q.logger.WithError(err).WithField("inquiry_id", inquiry.ID).Error("Handler failed to process inquiry")
		}
	}
}

// Close stops accepting inquiries and waits for the queued ones to be handled
func (q *InquiryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	started := q.started
	close(q.done)
	q.mu.Unlock()

	if started {
		<-q.stopped
	}
	return nil
}

// Len returns the current number of inquiries in the queue
func (q *InquiryQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *InquiryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
