package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliveland/market-aggregator/internal/logger"
)

func TestWithRequestFields(t *testing.T) {
	require.NoError(t, logger.Initialize(logger.Config{Debug: true}))

	ctx := logger.WithRequestFields(context.Background(), logger.RequestFields{RequestID: "req-1"})
	ctx = logger.WithRequestFields(ctx, logger.RequestFields{SessionID: "01HZX", Viewer: "0xabc"})

	fields := logger.RequestFieldsFromContext(ctx)
	assert.Equal(t, logger.RequestFields{RequestID: "req-1", SessionID: "01HZX", Viewer: "0xabc"}, fields)

	assert.NotNil(t, logger.FromContext(ctx))
	assert.Equal(t, logger.RequestFields{}, logger.RequestFieldsFromContext(context.Background()))
}

func TestInitialize_InvalidSentryDSN(t *testing.T) {
	err := logger.Initialize(logger.Config{SentryDSN: "not a dsn", Tags: map[string]string{"service": "test"}})
	assert.Error(t, err)

	require.NoError(t, logger.Initialize(logger.Config{Tags: map[string]string{"service": "test"}}))
	assert.NotNil(t, logger.FromContext(context.Background()))
}
