package obs

import "github.com/prometheus/client_golang/prometheus"

var routeResults = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ranking_route_results_total",
		Help: "Per-designer route queries issued while ranking, by outcome",
	},
	[]string{"outcome"},
)

// Register adds the package collectors to the given registerer.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{externalCallDuration, routeResults} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RouteResult counts one per-designer route query as "ok" or "failed".
func RouteResult(ok bool) {
	if ok {
		routeResults.WithLabelValues("ok").Inc()
		return
	}
	routeResults.WithLabelValues("failed").Inc()
}
