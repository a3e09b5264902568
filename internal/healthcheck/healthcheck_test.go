package healthcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestLivenessCheck(t *testing.T) {
	h := NewHealthChecker(nil)

	result := h.LivenessCheck()
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "running", result.Checks["service"])
}

func TestReadinessCheck_BackendOK(t *testing.T) {
	h := NewHealthChecker(pingerFunc(func(ctx context.Context) error { return nil }))

	result := h.ReadinessCheck(context.Background())
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "ok", result.Checks["backend"])
}

func TestReadinessCheck_BackendDown(t *testing.T) {
	h := NewHealthChecker(pingerFunc(func(ctx context.Context) error {
		return errors.New("connection refused")
	}))

	result := h.ReadinessCheck(context.Background())
	assert.Equal(t, "error", result.Status)
	assert.Contains(t, result.Checks["backend"], "connection refused")
}

func TestReadinessCheck_NoBackendConfigured(t *testing.T) {
	h := NewHealthChecker(nil)

	result := h.ReadinessCheck(context.Background())
	assert.Equal(t, "ok", result.Status)
}
