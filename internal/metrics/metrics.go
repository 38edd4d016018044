package metrics

import "github.com/prometheus/client_golang/prometheus"

const Namespace = "logkeeper"

type Counter interface {
	Inc(labels ...string)
	Add(value float64, labels ...string)
}

type Counters struct {
	// labels: result (accepted|rejected)
	RecordsIngested Counter
	// labels: method, status
	Requests Counter
}

type PrometheusCounter struct {
	counter *prometheus.CounterVec
}

func newCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      name,
		Help:      help,
	}, labels)
}

func NewPrometheusCounter(reg prometheus.Registerer, name, help string, labels []string) *PrometheusCounter {
	c := &PrometheusCounter{counter: newCounterVec(name, help, labels)}
	reg.MustRegister(c.counter)
	return c
}

func (p *PrometheusCounter) Inc(labels ...string) {
	p.counter.WithLabelValues(labels...).Inc()
}

func (p *PrometheusCounter) Add(value float64, labels ...string) {
	p.counter.WithLabelValues(labels...).Add(value)
}

func newCounters(reg prometheus.Registerer) *Counters {
	return &Counters{
		RecordsIngested: NewPrometheusCounter(reg,
			"records_ingested_total",
			"Access-log lines processed by ingest, by result",
			[]string{"result"},
		),
		Requests: NewPrometheusCounter(reg,
			"requests_total",
			"Service calls by method and status",
			[]string{"method", "status"},
		),
	}
}

// New registers the counters on the default registry served at /metrics.
func New() *Counters {
	return newCounters(prometheus.DefaultRegisterer)
}

// NewDetached registers on a private registry, for one-shot commands that
// expose no /metrics endpoint.
func NewDetached() *Counters {
	return newCounters(prometheus.NewRegistry())
}

