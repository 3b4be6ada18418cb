package hooking

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsHook counts invocations per hook position in a Prometheus counter.
type MetricsHook struct {
	invocations *prometheus.CounterVec
}

// NewMetricsHook registers a counter named pdptw_<name> with a "pos" label.
func NewMetricsHook(
	reg prometheus.Registerer,
	name, help string,
) (*MetricsHook, error) {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pdptw",
		Name:      name,
		Help:      help,
	}, []string{"pos"})

	if err := reg.Register(c); err != nil {
		return nil, fmt.Errorf("registering %s: %w", name, err)
	}

	return &MetricsHook{invocations: c}, nil
}

// Func increments the counter of the position of ctx.
func (h *MetricsHook) Func(ctx HookCtx) {
	pos := "unknown"
	if ctx.Pos != nil {
		pos = ctx.Pos.Name
	}

	h.invocations.WithLabelValues(pos).Inc()
}
