package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/pkg/metrics"
)

// GinMetricsMiddleware 记录请求计数与耗时
func GinMetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.HTTPRequestsTotal.Inc()
		m.HTTPRequestDuration.Observe(time.Since(start).Seconds())
	}
}
