package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the service registry. A nil *Collector is valid and
// records nothing.
type Collector struct {
	reg *prometheus.Registry

	Plans        *prometheus.CounterVec // outcome: ok|invalid_input|no_destination_stop|no_itinerary|error
	ScenarioWins *prometheus.CounterVec // scenario: bus|full_bike
	PlanDuration prometheus.Histogram

	GeometryFallbacks prometheus.Counter
	DisplayStale      prometheus.Counter

	GBFSRefreshes     *prometheus.CounterVec // result: ok|error
	BikeStationsKnown prometheus.Gauge

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge
	PublishDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_plans_total",
			Help: "Planning calls by outcome.",
		}, []string{"outcome"}),
		ScenarioWins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_scenario_wins_total",
			Help: "Successful plans by winning scenario.",
		}, []string{"scenario"}),
		PlanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_plan_duration_seconds",
			Help:    "Duration of a planning call including snapshot loads.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		GeometryFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_geometry_fallbacks_total",
			Help: "Legs drawn as straight lines because geometry was unavailable.",
		}),
		DisplayStale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_display_stale_total",
			Help: "Completed results discarded because a newer request was submitted.",
		}),
		GBFSRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_gbfs_refreshes_total",
			Help: "Bike snapshot refreshes by result.",
		}, []string{"result"}),
		BikeStationsKnown: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_bike_stations",
			Help: "Stations in the current bike snapshot.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "planner_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "planner_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "planner_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
	}

	reg.MustRegister(
		c.Plans, c.ScenarioWins, c.PlanDuration,
		c.GeometryFallbacks, c.DisplayStale,
		c.GBFSRefreshes, c.BikeStationsKnown,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected, c.PublishDuration,
	)

	return c
}

func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// ObservePlan records one planning call. scenario is empty on failure.
func (c *Collector) ObservePlan(outcome, scenario string, d time.Duration) {
	if c == nil {
		return
	}
	c.Plans.WithLabelValues(outcome).Inc()
	if scenario != "" {
		c.ScenarioWins.WithLabelValues(scenario).Inc()
	}
	c.PlanDuration.Observe(d.Seconds())
}

func (c *Collector) GeometryFallbacksAdd(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.GeometryFallbacks.Add(float64(n))
}

func (c *Collector) DisplayStaleInc() {
	if c == nil {
		return
	}
	c.DisplayStale.Inc()
}

// GBFSRefreshed records a snapshot refresh; stations is ignored on error.
func (c *Collector) GBFSRefreshed(err error, stations int) {
	if c == nil {
		return
	}
	if err != nil {
		c.GBFSRefreshes.WithLabelValues("error").Inc()
		return
	}
	c.GBFSRefreshes.WithLabelValues("ok").Inc()
	c.BikeStationsKnown.Set(float64(stations))
}

func (c *Collector) NATSPublishedInc() {
	if c == nil {
		return
	}
	c.NATSPublished.Inc()
}

func (c *Collector) NATSPublishErrInc() {
	if c == nil {
		return
	}
	c.NATSPublishErrs.Inc()
}

func (c *Collector) PublishObserve(d time.Duration) {
	if c == nil {
		return
	}
	c.PublishDuration.Observe(d.Seconds())
}

func (c *Collector) NATSSetConnected(connected bool) {
	if c == nil {
		return
	}
	if connected {
		c.NATSConnected.Set(1)
		return
	}
	c.NATSConnected.Set(0)
}
