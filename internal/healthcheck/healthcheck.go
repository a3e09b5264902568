package healthcheck

import (
	"context"
	"time"
)

// Pinger 后端连通性探测（生产环境是 client.Client）
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker 健康检查器
type HealthChecker struct {
	backend Pinger
}

// NewHealthChecker 创建健康检查器
func NewHealthChecker(backend Pinger) *HealthChecker {
	return &HealthChecker{backend: backend}
}

// CheckResult 健康检查结果
type CheckResult struct {
	Status  string            `json:"status"` // "ok" or "error"
	Checks  map[string]string `json:"checks"`
	Version string            `json:"version,omitempty"`
}

// LivenessCheck 存活检查（快速返回，不检查依赖）
func (h *HealthChecker) LivenessCheck() CheckResult {
	return CheckResult{
		Status: "ok",
		Checks: map[string]string{
			"service": "running",
		},
	}
}

// ReadinessCheck 就绪检查（检查研究助手后端可达性）
func (h *HealthChecker) ReadinessCheck(ctx context.Context) CheckResult {
	result := CheckResult{
		Checks: make(map[string]string),
	}

	if h.backend != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := h.backend.Ping(ctx); err != nil {
			result.Checks["backend"] = "error: " + err.Error()
			result.Status = "error"
		} else {
			result.Checks["backend"] = "ok"
		}
	}

	// 如果所有检查都通过
	if result.Status == "" {
		result.Status = "ok"
	}

	return result
}
