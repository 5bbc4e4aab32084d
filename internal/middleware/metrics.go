package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "socialbase_redis_errors_total",
		Help: "Total number of Redis errors by command",
	}, []string{"command"})

	// VoteConflicts counts vote attempts rejected by the uniqueness constraint.
	VoteConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialbase_vote_conflicts_total",
		Help: "Total number of duplicate vote attempts",
	})

	// FollowConflicts counts follow attempts rejected by the uniqueness constraint.
	FollowConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "socialbase_follow_conflicts_total",
		Help: "Total number of duplicate follow attempts",
	})
)

var (
	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus middleware for the given service name.
// The underlying collectors register globally, so the instance is shared.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.New(serviceName)
	})
	return prom
}

// MetricsMiddleware returns the request-instrumentation handler of prom.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
