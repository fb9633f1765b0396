package security_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/pkg/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func memoryCounter() security.CounterFunc {
	counts := map[string]int{}
	return func(_ context.Context, key string, _ time.Duration) (int, error) {
		counts[key]++
		return counts[key], nil
	}
}

func TestAbuseTrackerReportsOnceAtThreshold(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	sl := security.NewSecurityLogger(zap.New(core), "portfolio-backend", "test")
	tracker := security.NewAbuseTracker(security.AbuseTrackerConfig{Threshold: 3, Window: time.Minute}, sl, memoryCounter())

	var crossed []bool
	for i := 0; i < 5; i++ {
		hit, err := tracker.RecordRejected(context.Background(), "10.0.0.1", "req")
		require.NoError(t, err)
		crossed = append(crossed, hit)
	}
	assert.Equal(t, []bool{false, false, true, false, false}, crossed)

	hit, err := tracker.RecordRejected(context.Background(), "10.0.0.2", "req")
	require.NoError(t, err)
	assert.False(t, hit)

	entries := logs.FilterMessage(string(security.EventSuspiciousInput)).All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "10.0.0.1", entries[0].ContextMap()["ip"])
}

func TestAbuseTrackerFailsOpen(t *testing.T) {
	sl := security.NewSecurityLogger(zap.NewNop(), "portfolio-backend", "test")

	// shared Redis client is absent in tests
	tracker := security.NewAbuseTracker(security.DefaultAbuseTrackerConfig(), sl, nil)
	hit, err := tracker.RecordRejected(context.Background(), "10.0.0.1", "req")
	assert.NoError(t, err)
	assert.False(t, hit)

	var nilTracker *security.AbuseTracker
	hit, err = nilTracker.RecordRejected(context.Background(), "10.0.0.1", "req")
	assert.NoError(t, err)
	assert.False(t, hit)

	broken := security.NewAbuseTracker(security.DefaultAbuseTrackerConfig(), sl,
		func(context.Context, string, time.Duration) (int, error) { return 0, errors.New("READONLY") })
	_, err = broken.RecordRejected(context.Background(), "10.0.0.1", "req")
	assert.Error(t, err)
}
