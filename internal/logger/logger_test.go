package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New("prod", "warn")
	require.NoError(t, err)
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New("dev", "loud")
	require.NoError(t, err)
	assert.True(t, l.SugaredLogger.Desugar().Core().Enabled(zap.InfoLevel))
	assert.False(t, l.SugaredLogger.Desugar().Core().Enabled(zap.DebugLevel))
}

func TestWithAddsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := &Logger{SugaredLogger: zap.New(core).Sugar()}

	l.With("component", "quiz").Info("answer recorded", "word_id", 7)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "answer recorded", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "quiz", ctx["component"])
	assert.EqualValues(t, 7, ctx["word_id"])
}
