package logger_test

import (
	"sync"
	"testing"

	"asset-bridge/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func countingBuilder(builds *int, mu *sync.Mutex) logger.Builder {
	return func() (*zap.Logger, error) {
		mu.Lock()
		*builds++
		mu.Unlock()
		return zap.NewNop(), nil
	}
}

func TestHub_Lifecycle(t *testing.T) {
	var builds int
	var mu sync.Mutex
	hub := logger.NewHub(countingBuilder(&builds, &mu), nil)

	assert.Equal(t, 0, hub.Refs())
	assert.False(t, hub.Active())

	l1, err := hub.Acquire()
	require.NoError(t, err)
	l2, err := hub.Acquire()
	require.NoError(t, err)

	assert.Same(t, l1, l2)
	assert.Equal(t, 2, hub.Refs())
	assert.True(t, hub.Active())
	assert.Equal(t, 1, builds)

	hub.Release()
	assert.True(t, hub.Active())
	hub.Release()
	assert.False(t, hub.Active())
	assert.Equal(t, 0, hub.Refs())

	// Releasing an idle hub must not go negative.
	hub.Release()
	assert.Equal(t, 0, hub.Refs())

	_, err = hub.Acquire()
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestHub_BuildFailure(t *testing.T) {
	hub := logger.NewHub(func() (*zap.Logger, error) {
		return nil, assert.AnError
	}, nil)

	_, err := hub.Acquire()
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, hub.Refs())
	assert.False(t, hub.Active())
}

func TestHub_FallbackWhenIdle(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hub := logger.NewHub(func() (*zap.Logger, error) { return zap.NewNop(), nil }, zap.New(core))

	hub.Logger().Error("idle")
	assert.Equal(t, 1, logs.Len())

	_, err := hub.Acquire()
	require.NoError(t, err)
	hub.Logger().Error("active")
	assert.Equal(t, 1, logs.Len())
}

func TestHub_ConcurrentRefs(t *testing.T) {
	var builds int
	var mu sync.Mutex
	hub := logger.NewHub(countingBuilder(&builds, &mu), nil)

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := hub.Acquire()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, 64, hub.Refs())
	assert.Equal(t, 1, builds)

	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Refs())
	assert.False(t, hub.Active())
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  logger.Config
	}{
		{"ProductionJSON", logger.Config{Level: "info", Format: "json"}},
		{"DebugConsole", logger.Config{Level: "debug", Format: "console"}},
		{"WarnLevel", logger.Config{Level: "warn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := logger.New(&tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, l)
		})
	}
}
