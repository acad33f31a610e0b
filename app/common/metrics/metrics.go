// Package metrics 各服务共用的 Prometheus 指标
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "saas_validator"

var (
	// TrendsRequestsTotal 趋势请求次数，按后端与结果区分
	TrendsRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trends_requests_total",
			Help:      "Total number of trends requests",
		},
		[]string{"backend", "status"},
	)

	// ValidationsTotal 验证次数，按结果区分
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Total number of idea validations",
		},
		[]string{"status"},
	)

	// ValidationDuration 单次验证耗时
	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "validation_duration_seconds",
			Help:      "Duration of idea validations in seconds",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	// HandoffsTotal 展示服务的结果交接事件
	HandoffsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "handoffs_total",
			Help:      "Total number of result hand-off events",
		},
		[]string{"event"},
	)
)

// Status 根据错误返回指标标签
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordTrends 记录一次趋势请求
func RecordTrends(backend string, err error) {
	TrendsRequestsTotal.WithLabelValues(backend, Status(err)).Inc()
}

// RecordValidation 记录一次验证
func RecordValidation(success bool, seconds float64) {
	status := "ok"
	if !success {
		status = "error"
	}
	ValidationsTotal.WithLabelValues(status).Inc()
	ValidationDuration.Observe(seconds)
}

// RecordHandoff 记录交接事件：stored / consumed / missing
func RecordHandoff(event string) {
	HandoffsTotal.WithLabelValues(event).Inc()
}

// Handler /metrics 处理器
func Handler() http.Handler {
	return promhttp.Handler()
}
