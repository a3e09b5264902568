package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 轮询终止原因
const (
	StopReasonTerminal     = "terminal"
	StopReasonNotFound     = "not_found"
	StopReasonNetworkError = "network_error"
)

var (
	// HTTP 请求指标
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resconsole_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resconsole_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 轮询指标
	PollTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resconsole_poll_ticks_total",
			Help: "Total number of task poll ticks issued",
		},
	)

	PollStopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resconsole_poll_stops_total",
			Help: "Total number of poll loops terminated, by reason",
		},
		[]string{"reason"},
	)

	ActivePolls = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "resconsole_active_polls",
			Help: "Number of active poll loops (0 or 1 per watcher)",
		},
	)

	// 后端代理指标
	BackendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resconsole_backend_requests_total",
			Help: "Total number of proxied backend requests",
		},
		[]string{"operation", "outcome"},
	)

	// 渲染指标
	MarkdownRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resconsole_markdown_render_duration_seconds",
			Help:    "Markdown render+sanitize duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)
)

// RecordHTTPRequest 记录 HTTP 请求
func RecordHTTPRequest(method, path string, status int, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordPollTick 记录一次轮询
func RecordPollTick() {
	PollTicksTotal.Inc()
}

// RecordPollStopped 记录轮询终止
func RecordPollStopped(reason string) {
	PollStopsTotal.WithLabelValues(reason).Inc()
}

// SetActivePolls 更新活跃轮询数
func SetActivePolls(n int) {
	ActivePolls.Set(float64(n))
}

// RecordBackendRequest 记录一次代理到后端的请求
func RecordBackendRequest(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	BackendRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveMarkdownRender 记录一次 Markdown 渲染耗时
func ObserveMarkdownRender(seconds float64) {
	MarkdownRenderDuration.Observe(seconds)
}

// statusClass 将 HTTP 状态码转为类别
func statusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 300 && status < 400:
		return "3xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
