package inquiry

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"vicmar/server/internal/models"
	"vicmar/server/internal/store"
)

// Notifier accepts a stored inquiry for asynchronous delivery.
type Notifier interface {
	Push(models.Inquiry) error
}

type Service struct {
	inquiries *store.Store[models.Inquiry]
	notifier  Notifier
	logger    *logrus.Logger
}

func NewService(inquiries *store.Store[models.Inquiry], notifier Notifier, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Service{
		inquiries: inquiries,
		notifier:  notifier,
		logger:    logger,
	}
}

// NewInquiryStore binds a store to the inquiry collection.
func NewInquiryStore(kv store.KV, logger *logrus.Logger) *store.Store[models.Inquiry] {
	return store.New[models.Inquiry](kv, "inquiry", logger,
		store.WithValidator[models.Inquiry](validate))
}

func validate(i models.Inquiry) error {
	if i.Name == "" || i.Email == "" || i.Message == "" {
		return errors.New("name, email and message are required")
	}
	return nil
}

// Submit stores the inquiry and queues a notification for it. A failed
// notification never fails the submission.
func (s *Service) Submit(ctx context.Context, inquiry models.Inquiry) (models.Inquiry, error) {
	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return created, err
	}

	logger := s.logger.WithField("inquiry_id", created.ID)
	if s.notifier != nil {
		if err := s.notifier.Push(created); err != nil {
			logger.WithError(err).Warn("Failed to queue inquiry notification")
		}
	}
	logger.Info("Stored inquiry")
	return created, nil
}

// List returns inquiries newest first.
func (s *Service) List(ctx context.Context, limit int) ([]models.Inquiry, error) {
	return s.inquiries.List(ctx, "-created_date", limit)
}
