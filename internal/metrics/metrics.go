// Package metrics exposes prometheus counters for account and goal activity
// and for the HTTP layer.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what services and middleware report to.
type Recorder interface {
	RecordRegistration()
	RecordLogin(success bool)
	RecordGoalCreated(category, difficulty string, xp int)
	RecordGoalCompleted(xp int)
	RecordAccountDeleted()
	RecordHTTPRequest(method, route string, status int, d time.Duration)
}

type Collector struct {
	registrations  prometheus.Counter
	logins         *prometheus.CounterVec
	goalsCreated   *prometheus.CounterVec
	goalsCompleted prometheus.Counter
	xpAwarded      *prometheus.CounterVec
	accountsGone   prometheus.Counter
	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
}

// NewCollector builds the collector and registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillup_registrations_total",
			Help: "Accounts created.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skillup_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		goalsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skillup_goals_created_total",
			Help: "Goals created by category and difficulty.",
		}, []string{"category", "difficulty"}),
		goalsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillup_goals_completed_total",
			Help: "Goals marked completed.",
		}),
		xpAwarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skillup_xp_total",
			Help: "XP attached to goals, by event.",
		}, []string{"event"}),
		accountsGone: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skillup_accounts_deleted_total",
			Help: "Accounts deleted with their goals and profile.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skillup_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillup_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.registrations,
		c.logins,
		c.goalsCreated,
		c.goalsCompleted,
		c.xpAwarded,
		c.accountsGone,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

func (c *Collector) RecordRegistration() { c.registrations.Inc() }

func (c *Collector) RecordLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	c.logins.WithLabelValues(result).Inc()
}

func (c *Collector) RecordGoalCreated(category, difficulty string, xp int) {
	c.goalsCreated.WithLabelValues(category, difficulty).Inc()
	c.xpAwarded.WithLabelValues("created").Add(float64(xp))
}

func (c *Collector) RecordGoalCompleted(xp int) {
	c.goalsCompleted.Inc()
	c.xpAwarded.WithLabelValues("completed").Add(float64(xp))
}

func (c *Collector) RecordAccountDeleted() { c.accountsGone.Inc() }

func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// Nop discards everything. Used when metrics are not wired, e.g. in tests.
type Nop struct{}

func (Nop) RecordRegistration()                                  {}
func (Nop) RecordLogin(bool)                                     {}
func (Nop) RecordGoalCreated(string, string, int)                {}
func (Nop) RecordGoalCompleted(int)                              {}
func (Nop) RecordAccountDeleted()                                {}
func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}

// Handler serves the scrape endpoint for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
