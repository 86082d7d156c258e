package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takinabradley/mdn-local-library/pkg/metrics"
)

// Metrics 请求指标中间件
// 按方法/路由模板/状态码维度统计请求数与耗时
// 注意:标签使用c.FullPath()(路由模板,如/catalog/genre/:id),
// 不用原始URL,避免标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.IncGauge(metrics.HTTPRequestsInProgress)

		c.Next()

		metrics.DecGauge(metrics.HTTPRequestsInProgress)

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
