package tracer

import (
	"context"
	"testing"

	"notes-api/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestInitTracerDisabledIsNoop(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: false})
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracerEnabledShutsDown(t *testing.T) {
	// The exporter connects lazily, so no collector is needed to build one.
	shutdown := InitTracer(config.TracingConfig{Enabled: true, Endpoint: "127.0.0.1:4318", ServiceName: "notes-api-test"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
