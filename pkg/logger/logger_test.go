package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndLevelString(t *testing.T) {
	defer Init("info")

	Init("debug")
	require.Equal(t, "debug", LevelString())
	Init("WARN")
	require.Equal(t, "warn", LevelString())
	Init("Error")
	require.Equal(t, "error", LevelString())
	Init("nonsense")
	require.Equal(t, "info", LevelString(), "unknown input falls back to info")
}

func TestLevelFiltering(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	orig := current()
	SetCore(core)
	defer func() {
		mu.Lock()
		sugar = orig
		mu.Unlock()
		Init("info")
	}()

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg")
	Errorf("error-msg")

	require.Zero(t, logs.FilterMessage("debug-msg").Len(), "debug suppressed at warn level")
	require.Zero(t, logs.FilterMessage("info-msg").Len(), "info suppressed at warn level")
	require.Equal(t, 1, logs.FilterMessage("warn-msg").Len())
	require.Equal(t, 1, logs.FilterMessage("error-msg").Len())

	Init("info")
	Info("hello")
	require.Equal(t, 1, logs.FilterMessage("hello").Len())
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	orig := current()
	SetCore(core)
	defer func() {
		mu.Lock()
		sugar = orig
		mu.Unlock()
	}()

	With("user_id", 7).Info("bound")
	entries := logs.FilterMessage("bound").All()
	require.Len(t, entries, 1)
	require.Equal(t, int64(7), entries[0].ContextMap()["user_id"])
}
