package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de requisições HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP em segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics coleta métricas HTTP para um serviço.
type HTTPMetrics struct {
	serviceName string
}

// NewHTTPMetrics registra os coletores e devolve o middleware/handler.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	prometheus.MustRegister(requestCounter, requestDuration)
	return &HTTPMetrics{serviceName: serviceName}
}

// Middleware conta e cronometra cada requisição, rotulada pela rota registrada
// (não pela URL crua, para não explodir a cardinalidade com ids).
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		path := c.Route().Path
		labels := []string{m.serviceName, c.Method(), path, strconv.Itoa(status)}
		requestCounter.WithLabelValues(labels...).Inc()
		requestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expõe /metrics no formato Prometheus.
func (m *HTTPMetrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
