package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "affiliate_bot"

// Metrics holds the bot's collectors on a private registry.
type Metrics struct {
	ItemsReceived   *prometheus.CounterVec
	BatchesComposed prometheus.Counter
	EmptyBatches    prometheus.Counter
	JobsScheduled   prometheus.Counter
	JobsPending     prometheus.Gauge
	Deliveries      *prometheus.CounterVec
	Commands        *prometheus.CounterVec

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		ItemsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "items_received_total",
				Help:      "Items appended to pending batches",
			},
			[]string{"kind"},
		),
		BatchesComposed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_composed_total",
			Help:      "Non-empty batches turned into a post",
		}),
		EmptyBatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "empty_batches_total",
			Help:      "Completion signals that found nothing pending",
		}),
		JobsScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_scheduled_total",
			Help:      "Publish jobs registered",
		}),
		JobsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jobs_pending",
			Help:      "Publish jobs waiting for their fire time",
		}),
		Deliveries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "deliveries_total",
				Help:      "Delivery attempts by outcome",
			},
			[]string{"status"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Bot commands handled",
			},
			[]string{"command"},
		),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.ItemsReceived,
		m.BatchesComposed,
		m.EmptyBatches,
		m.JobsScheduled,
		m.JobsPending,
		m.Deliveries,
		m.Commands,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
