package bus

// Ring-event topics and payloads. A watchdog publishes these periodically so
// anything on the bus — a CLI session, a supervisory task — can observe a
// queue's health without touching the queue itself.

// RingStatsTopic returns the topic a watchdog publishes periodic fill/byte
// counters to for the named ring.
func RingStatsTopic(name string) Topic { return T("ring", name, "stats") }

// RingDropTopic returns the topic a watchdog publishes a one-shot alert to
// the moment it observes a nonzero drop counter delta.
func RingDropTopic(name string) Topic { return T("ring", name, "drop") }

// RingStats is the payload published on a RingStatsTopic message.
type RingStats struct {
	Name          string
	CapacityBytes int
	FillBytes     int
	BytesWritten  uint64
	BytesRead     uint64
	TimestampMs   int64
}

// RingDrop is the payload published on a RingDropTopic message: the delta
// observed since the previous watchdog tick, not a cumulative total.
type RingDrop struct {
	Name          string
	FramesDropped uint64
	BytesDropped  uint64
}
