package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tapright/waitlist-api/pkg/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockStore) InsertSignup(ctx context.Context, record models.SignupRecord) error {
	return m.Called(ctx, record).Error(0)
}

func (m *MockStore) CountSignups(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, email models.Email) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, sub models.SignupSubmission, joinedAt time.Time) models.NotificationOutcomes {
	return m.Called(ctx, sub, joinedAt).Get(0).(models.NotificationOutcomes)
}

func toEmail(addr string) interface{} {
	return mock.MatchedBy(func(e models.Email) bool {
		return len(e.To) == 1 && e.To[0] == addr
	})
}
