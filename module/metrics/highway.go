package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/casperlabs/casper-go/module"
)

const namespaceHighway = "highway"

var _ module.HighwayMetrics = (*HighwayCollector)(nil)

// HighwayCollector collects the era supervisor metrics.
type HighwayCollector struct {
	erasStarted      prometheus.Counter
	messagesHandled  *prometheus.CounterVec
	messagesRejected *prometheus.CounterVec
	eventsEmitted    *prometheus.CounterVec
	actionsScheduled prometheus.Counter
	actionsFired     prometheus.Counter
	actionsCancelled prometheus.Counter
	scheduleSize     prometheus.Gauge
}

func NewHighwayCollector() *HighwayCollector {

	hc := &HighwayCollector{

		erasStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "eras_started_total",
			Help:      "count of era runtimes instantiated",
		}),

		messagesHandled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "messages_handled_total",
			Help:      "count of validated messages handed to era runtimes",
		}, []string{"kind"}),

		messagesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "messages_rejected_total",
			Help:      "count of inbound blocks dropped, by reason",
		}, []string{"reason"}),

		eventsEmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "events_emitted_total",
			Help:      "count of domain events replayed by the supervisor",
		}, []string{"type"}),

		actionsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "actions_scheduled_total",
			Help:      "count of delayed actions installed in the scheduling table",
		}),

		actionsFired: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "actions_fired_total",
			Help:      "count of delayed actions whose timer fired",
		}),

		actionsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespaceHighway,
			Name:      "actions_cancelled_total",
			Help:      "count of delayed actions cancelled on shutdown",
		}),

		scheduleSize: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespaceHighway,
			Name:      "schedule_size",
			Help:      "current number of outstanding delayed actions",
		}),
	}

	return hc
}

func (hc *HighwayCollector) EraStarted() {
	hc.erasStarted.Inc()
}

func (hc *HighwayCollector) MessageHandled(kind string) {
	hc.messagesHandled.With(prometheus.Labels{"kind": kind}).Inc()
}

func (hc *HighwayCollector) MessageRejected(reason string) {
	hc.messagesRejected.With(prometheus.Labels{"reason": reason}).Inc()
}

func (hc *HighwayCollector) EventEmitted(eventType string) {
	hc.eventsEmitted.With(prometheus.Labels{"type": eventType}).Inc()
}

func (hc *HighwayCollector) ActionScheduled() {
	hc.actionsScheduled.Inc()
}

func (hc *HighwayCollector) ActionFired() {
	hc.actionsFired.Inc()
}

func (hc *HighwayCollector) ActionCancelled() {
	hc.actionsCancelled.Inc()
}

func (hc *HighwayCollector) ScheduleSize(size uint) {
	hc.scheduleSize.Set(float64(size))
}
