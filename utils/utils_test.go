package utils

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, 52.89, FormatFloat(0.5289*100, 2))
	assert.Equal(t, 0.647, FormatFloat(0.64651, 3))
	assert.Equal(t, 1.0, FormatFloat(0.96, 0))
	assert.True(t, math.IsNaN(FormatFloat(math.NaN(), 2)))
	assert.True(t, math.IsInf(FormatFloat(math.Inf(1), 2), 1))
}

func TestGetPanicInfo(t *testing.T) {
	assert.Contains(t, GetPanicInfo(), "TestGetPanicInfo")
}

func TestWithLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := WithLogger(context.Background(), zap.New(core).With(zap.String("suite", "complete")))

	GetLogger(ctx).Info("done")
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "complete", logs.All()[0].ContextMap()["suite"])

	assert.Same(t, zap.L(), GetLogger(context.Background()))
}
