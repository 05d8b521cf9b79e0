// Package metrics exposes Prometheus counters for logins, notifications and bookings.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Recorder is what the services report to.
type Recorder interface {
	RecordLogin(result string)
	RecordNotification(result string)
	RecordAppointmentCreated()
	RecordStatesPurged(count int64)
}

// Collector is the Prometheus-backed Recorder.
type Collector struct {
	logins              *prometheus.CounterVec
	notifications       *prometheus.CounterVec
	appointmentsCreated prometheus.Counter
	statesPurged        prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nailstudio_line_logins_total",
			Help: "LINE login callbacks by result.",
		}, []string{"result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nailstudio_confirmations_sent_total",
			Help: "Confirmation pushes by result.",
		}, []string{"result"}),
		appointmentsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nailstudio_appointments_created_total",
			Help: "Appointments submitted through the reservation form.",
		}),
		statesPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nailstudio_oauth_states_purged_total",
			Help: "Expired OAuth states removed by the cleanup job.",
		}),
	}

	reg.MustRegister(
		c.logins,
		c.notifications,
		c.appointmentsCreated,
		c.statesPurged,
	)
	return c
}

// RecordLogin counts a finished login callback.
func (c *Collector) RecordLogin(result string) {
	c.logins.WithLabelValues(result).Inc()
}

// RecordNotification counts a confirmation attempt.
func (c *Collector) RecordNotification(result string) {
	c.notifications.WithLabelValues(result).Inc()
}

// RecordAppointmentCreated counts a new booking.
func (c *Collector) RecordAppointmentCreated() {
	c.appointmentsCreated.Inc()
}

// RecordStatesPurged adds the number of states a cleanup run removed.
func (c *Collector) RecordStatesPurged(count int64) {
	c.statesPurged.Add(float64(count))
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type nop struct{}

// NewNop returns a Recorder that drops everything.
func NewNop() Recorder { return nop{} }

func (nop) RecordLogin(string)        {}
func (nop) RecordNotification(string) {}
func (nop) RecordAppointmentCreated() {}
func (nop) RecordStatesPurged(int64)  {}
