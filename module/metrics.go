package module

// HighwayMetrics encapsulates the metrics collected by the era supervisor.
type HighwayMetrics interface {

	// EraStarted is called when an era runtime is instantiated.
	EraStarted()

	// MessageHandled is called when an inbound block passed validation and
	// was handed to its era runtime.
	MessageHandled(kind string)

	// MessageRejected is called when an inbound block was dropped, with the
	// rejection reason (malformed, invalid, shutdown).
	MessageRejected(reason string)

	// EventEmitted is called for every domain event replayed by the
	// supervisor.
	EventEmitted(eventType string)

	// ActionScheduled is called when a delayed action is installed in the
	// scheduling table.
	ActionScheduled()

	// ActionFired is called when a delayed action's timer fired and the
	// action ran.
	ActionFired()

	// ActionCancelled is called when a delayed action is cancelled on
	// shutdown.
	ActionCancelled()

	// ScheduleSize reports the current size of the scheduling table.
	ScheduleSize(size uint)
}
