// Package metrics 提供基于Prometheus的指标收集
//
// 核心概念：
// - **Counter（计数器）**：只增不减的累计值（HTTP请求总数、去重重定向次数）
// - **Gauge（仪表盘）**：可增可减的瞬时值（正在处理的请求数）
// - **Histogram（直方图）**：观测值的分布（请求耗时，自动计算P50/P90/P99）
//
// 使用示例：
//
//	// 1. 初始化指标
//	metrics.InitMetrics()
//
//	// 2. 在路由上暴露/metrics端点（promhttp.Handler()）
//
//	// 3. 在中间件/业务代码中记录
//	metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
//	    "method": "POST", "path": "/catalog/genre/create", "status": "302",
//	})
//
// 标签注意事项：避免高基数标签（不要把实体ID作为标签值，
// path标签使用路由模板而非实际路径）
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// initOnce 保证指标只注册一次（重复注册会触发prometheus panic）
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板）、status（HTTP状态码）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 业务指标

	// DuplicateRedirectsTotal 因自然键重复而重定向到已有记录的次数（Counter）
	// 标签：entity（genre/author/book）
	DuplicateRedirectsTotal *prometheus.CounterVec

	// DeletesBlockedTotal 因存在引用记录而被拒绝的删除次数（Counter）
	// 标签：entity（genre/author/book）
	DeletesBlockedTotal *prometheus.CounterVec
)

// InitMetrics 初始化所有指标（幂等，并发调用也只注册一次）
func InitMetrics() {
	initOnce.Do(initMetrics)
}

func initMetrics() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_http_request_duration_seconds",
			Help:    "HTTP请求耗时分布",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	DuplicateRedirectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_duplicate_redirects_total",
			Help: "因自然键重复而重定向到已有记录的次数",
		},
		[]string{"entity"},
	)

	DeletesBlockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_deletes_blocked_total",
			Help: "因存在引用记录而被拒绝的删除次数",
		},
		[]string{"entity"},
	)
}

// IncCounterVec 递增带标签的Counter
func IncCounterVec(vec *prometheus.CounterVec, labels map[string]string) {
	if vec == nil {
		return
	}
	vec.With(labels).Inc()
}

// ObserveHistogramVec 记录带标签的Histogram观测值
func ObserveHistogramVec(vec *prometheus.HistogramVec, labels map[string]string, value float64) {
	if vec == nil {
		return
	}
	vec.With(labels).Observe(value)
}

// IncGauge 递增Gauge
func IncGauge(g prometheus.Gauge) {
	if g != nil {
		g.Inc()
	}
}

// DecGauge 递减Gauge
func DecGauge(g prometheus.Gauge) {
	if g != nil {
		g.Dec()
	}
}
