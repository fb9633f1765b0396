package security_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/pkg/security"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockExecer struct {
	mock.Mock
}

func (m *MockExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	called := m.Called(ctx, sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), called.Error(0)
}

func TestPersistEvent(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("Should insert the event with severity and parsed IP", func(t *testing.T) {
		db := new(MockExecer)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		repo := security.NewSecurityEventRepository(db)
		err := repo.PersistEvent(context.Background(), security.SecurityEvent{
			Timestamp: at,
			Service:   "portfolio-backend",
			Level:     "warn",
			Event:     security.EventRateLimitTriggered,
			IP:        "203.0.113.7",
			Details:   map[string]interface{}{"endpoint": "/api/contact"},
		})
		require.NoError(t, err)

		args := db.Calls[0].Arguments.Get(2).([]any)
		require.Len(t, args, 12)
		assert.Equal(t, "rate_limit_triggered", args[0])
		assert.Equal(t, "WARN", args[1])
		require.NotNil(t, args[7])
		assert.Equal(t, "203.0.113.7", *args[7].(*string))
		assert.JSONEq(t, `{"endpoint":"/api/contact"}`, string(args[10].([]byte)))
		assert.Equal(t, at, args[11])
	})

	t.Run("Should store NULL for a missing IP and no details", func(t *testing.T) {
		db := new(MockExecer)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

		repo := security.NewSecurityEventRepository(db)
		require.NoError(t, repo.PersistEvent(context.Background(), security.SecurityEvent{Event: security.EventConfigMissing}))

		args := db.Calls[0].Arguments.Get(2).([]any)
		assert.Nil(t, args[7].(*string))
		assert.Nil(t, args[10].([]byte))
	})

	t.Run("Should wrap database errors", func(t *testing.T) {
		db := new(MockExecer)
		db.On("Exec", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("conn closed"))

		repo := security.NewSecurityEventRepository(db)
		err := repo.PersistEvent(context.Background(), security.SecurityEvent{Event: security.EventDeliveryFailed})
		assert.ErrorContains(t, err, "failed to persist security event")

		assert.ErrorContains(t, repo.EnsureSchema(context.Background()), "security_events")
	})
}
