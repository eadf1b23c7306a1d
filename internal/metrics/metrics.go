package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAssignmentsTotal returns a Prometheus counter for completed rider assignments
func NewAssignmentsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rider_assignments_total",
		Help: "Total number of completed rider assignments",
	})
}

// NewPartialFailuresTotal returns a Prometheus counter for two-step writes that committed only their first step
func NewPartialFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "partial_failures_total",
		Help: "Total number of cross-entity writes left partially applied",
	})
}

// NewPaymentsRecordedTotal returns a Prometheus counter for recorded payments
func NewPaymentsRecordedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total number of recorded payments",
	})
}

// Domain bundles the domain counters so they can be injected as one value.
type Domain struct {
	AssignmentsTotal      prometheus.Counter
	PartialFailuresTotal  prometheus.Counter
	PaymentsRecordedTotal prometheus.Counter
}

// NewDomain creates the domain counters and registers them with the default
// registry.
func NewDomain() (*Domain, error) {
	d := &Domain{
		AssignmentsTotal:      NewAssignmentsTotal(),
		PartialFailuresTotal:  NewPartialFailuresTotal(),
		PaymentsRecordedTotal: NewPaymentsRecordedTotal(),
	}
	for _, c := range []prometheus.Counter{
		d.AssignmentsTotal, d.PartialFailuresTotal, d.PaymentsRecordedTotal,
	} {
		if err := prometheus.Register(c); err != nil {
			return nil, err
		}
	}
	return d, nil
}
