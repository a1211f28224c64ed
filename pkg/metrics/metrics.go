// Package metrics 提供 Prometheus helper，包含常用 counter/gauge/histogram 模板
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/storefront/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// Redis 操作计数
	RedisOpsTotal prometheus.Counter

	// 业务指标
	OrdersTotal         prometheus.Counter
	CheckoutFailures    prometheus.Counter
	CartMutationsTotal  *prometheus.CounterVec
	ActiveSessionsGauge prometheus.Gauge
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		RedisOpsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "redis_ops_total",
			Help:      "Total Redis operations",
		}),
		OrdersTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "orders_total",
			Help:      "Total orders placed",
		}),
		CheckoutFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "checkout_failures_total",
			Help:      "Total failed checkout attempts",
		}),
		CartMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "cart_mutations_total",
			Help:      "Total cart mutations persisted",
		}, []string{"op"}),
		ActiveSessionsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "storefront",
			Subsystem: serviceName,
			Name:      "active_sessions",
			Help:      "Number of active auth sessions",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	collectors := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.RedisOpsTotal,
		m.OrdersTotal,
		m.CheckoutFailures,
		m.CartMutationsTotal,
		m.ActiveSessionsGauge,
	}

	for _, collector := range collectors {
		if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// Handler 返回 Prometheus HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}
