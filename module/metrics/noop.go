package metrics

import (
	"github.com/casperlabs/casper-go/module"
)

type NoopCollector struct{}

var _ module.HighwayMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) EraStarted()                   {}
func (nc *NoopCollector) MessageHandled(kind string)    {}
func (nc *NoopCollector) MessageRejected(reason string) {}
func (nc *NoopCollector) EventEmitted(eventType string) {}
func (nc *NoopCollector) ActionScheduled()              {}
func (nc *NoopCollector) ActionFired()                  {}
func (nc *NoopCollector) ActionCancelled()              {}
func (nc *NoopCollector) ScheduleSize(size uint)        {}
