package metric

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer counts page activity. It satisfies page.Observer.
type Observer struct {
	eventsAdded    prometheus.Counter
	formRejections prometheus.Counter
	registrations  *prometheus.CounterVec
	pagesActive    prometheus.Gauge
}

func NewObserver(reg prometheus.Registerer) *Observer {
	factory := promauto.With(reg)
	return &Observer{
		eventsAdded: factory.NewCounter(prometheus.CounterOpts{
			Name: "evboard_events_added_total",
			Help: "Events added through the add-event form",
		}),
		formRejections: factory.NewCounter(prometheus.CounterOpts{
			Name: "evboard_form_rejections_total",
			Help: "Add-event submissions rejected for missing fields",
		}),
		registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "evboard_registrations_total",
			Help: "Registration attempts by result",
		}, []string{"result"}),
		pagesActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "evboard_pages_active",
			Help: "Pages currently held in memory",
		}),
	}
}

func (o *Observer) EventAdded() {
	o.eventsAdded.Inc()
}

func (o *Observer) FormRejected() {
	o.formRejections.Inc()
}

func (o *Observer) Registered(ok bool) {
	result := "registered"
	if !ok {
		result = "expired"
	}
	o.registrations.WithLabelValues(result).Inc()
}

func (o *Observer) PagesActive(n int) {
	o.pagesActive.Set(float64(n))
}
