package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vicmar/server/internal/models"
	"vicmar/server/internal/store"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Push(inquiry models.Inquiry) error {
	args := m.Called(inquiry)
	return args.Error(0)
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	notifier := new(mockNotifier)
	notifier.On("Push", mock.MatchedBy(func(i models.Inquiry) bool {
		return i.ID != "" && i.Name == "Ana"
	})).Return(nil).Once()

	s := NewService(NewInquiryStore(store.NewMemoryKV(), quietLogger()), notifier, quietLogger())

	created, err := s.Submit(ctx, models.Inquiry{
		Name:       "Ana",
		Email:      "ana@example.com",
		Message:    "Schedule a tripping please",
		PropertyID: "triplex-center-unit",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedDate.IsZero())
	notifier.AssertExpectations(t)

	stored, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, created, stored[0])
}

func TestService_SubmitSurvivesNotifierFailure(t *testing.T) {
	notifier := new(mockNotifier)
	notifier.On("Push", mock.Anything).Return(errors.New("queue is full"))

	s := NewService(NewInquiryStore(store.NewMemoryKV(), quietLogger()), notifier, quietLogger())

	_, err := s.Submit(context.Background(), models.Inquiry{Name: "Ana", Email: "ana@example.com", Message: "Hi"})
	assert.NoError(t, err)
	notifier.AssertNumberOfCalls(t, "Push", 1)
}

func TestService_SubmitRejectsIncomplete(t *testing.T) {
	notifier := new(mockNotifier)
	s := NewService(NewInquiryStore(store.NewMemoryKV(), quietLogger()), notifier, quietLogger())

	_, err := s.Submit(context.Background(), models.Inquiry{Name: "Ana"})
	assert.ErrorIs(t, err, store.ErrInvalid)
	notifier.AssertNotCalled(t, "Push", mock.Anything)
}

func TestService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	inquiries := store.New[models.Inquiry](store.NewMemoryKV(), "inquiry", quietLogger(),
		store.WithClock[models.Inquiry](func() time.Time {
			clock = clock.Add(time.Minute)
			return clock
		}))
	s := NewService(inquiries, nil, quietLogger())

	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Submit(ctx, models.Inquiry{Name: name, Email: "x@example.com", Message: "Hi"})
		require.NoError(t, err)
	}

	latest, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "third", latest[0].Name)
	assert.Equal(t, "second", latest[1].Name)
}
