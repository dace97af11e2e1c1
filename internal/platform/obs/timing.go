package obs

import (
	"context"
	"designer-finder-service/internal/platform/logger"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var externalCallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "designer_finder",
		Name:      "operation_duration_seconds",
		Help:      "Duration of timed operations (geocoding, routing, store access)",
		Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"op", "outcome"},
)

// Time starts timing the named operation. The returned func logs the
// duration through the request logger and records it in the histogram;
// pass it the address of the operation's named error result.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	return func(errp *error) {
		dur := time.Since(start)
		log := logger.FromContext(ctx)

		if errp != nil && *errp != nil {
			externalCallDuration.WithLabelValues(name, "error").Observe(dur.Seconds())
			log.Debug("operation failed",
				zap.String("op", name),
				zap.Duration("dur", dur),
				zap.Error(*errp),
			)
			return
		}
		externalCallDuration.WithLabelValues(name, "ok").Observe(dur.Seconds())
		log.Debug("operation done", zap.String("op", name), zap.Duration("dur", dur))
	}
}
