package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/ctwrap/pkg/logger"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

func TestRunUsesDefaults(t *testing.T) {
	var logs bytes.Buffer
	prev := logger.SetOutput(&logs)
	logger.SetNoColor(true)
	t.Cleanup(func() {
		logger.SetOutput(prev)
		logger.SetNoColor(false)
	})

	var out bytes.Buffer
	start := time.Now()
	require.NoError(t, run(context.Background(), &out))

	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)
	assert.Equal(t, "sleep\n0.2\n", out.String())
	assert.Contains(t, logs.String(), "sleeping for 0.2 seconds")
}

func TestRunReportsFailure(t *testing.T) {
	prev := logger.SetOutput(io.Discard)
	t.Cleanup(func() { logger.SetOutput(prev) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := run(ctx, &out)

	var eerr *simulation.ExecutionError
	require.True(t, errors.As(err, &eerr), "want *ExecutionError, got %v", err)
	assert.Empty(t, out.String())
}
