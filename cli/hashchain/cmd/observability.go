package cmd

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

/*
newObservability sets up metrics collection according to the "metrics"
exporter name. Empty name disables metrics.
*/
func newObservability(metrics string) (*observability, error) {
	o := &observability{exporter: metrics}
	switch metrics {
	case "":
	case "stdout":
		o.reg = prometheus.NewRegistry()
	default:
		return o, fmt.Errorf("unsupported exporter %q", metrics)
	}
	return o, nil
}

type observability struct {
	exporter string
	reg      *prometheus.Registry
}

// PrometheusRegisterer returns nil when metrics are disabled.
func (o *observability) PrometheusRegisterer() prometheus.Registerer {
	if o == nil || o.reg == nil {
		return nil
	}
	return o.reg
}

// Shutdown exports collected metrics.
func (o *observability) Shutdown() error {
	if o.reg == nil {
		return nil
	}
	mfs, err := o.reg.Gather()
	if err != nil {
		return fmt.Errorf("observability shutdown: gathering metrics: %w", err)
	}
	buf := &bytes.Buffer{}
	enc := expfmt.NewEncoder(buf, expfmt.FmtText)
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("observability shutdown: encoding metrics: %w", err)
		}
	}
	consoleWriter.Print(buf.String())
	return nil
}
