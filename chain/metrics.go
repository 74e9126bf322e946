package chain

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "hashchain"

type metrics struct {
	appended prometheus.Counter
	rejected prometheus.Counter
	height   prometheus.Gauge
}

func newMetrics() *metrics {
	return &metrics{
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chain",
			Name:      "blocks_appended_total",
			Help:      "Number of blocks appended to the chain.",
		}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "chain",
			Name:      "appends_rejected_total",
			Help:      "Number of blocks rejected because they would break the chain.",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "chain",
			Name:      "height",
			Help:      "Number of blocks in the chain.",
		}),
	}
}

func (m *metrics) register(reg prometheus.Registerer) error {
	var errs []error
	for _, c := range []prometheus.Collector{m.appended, m.rejected, m.height} {
		if err := reg.Register(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
