package bipring

import (
	"context"
	"time"

	"github.com/jangala-dev/bipring/bus"
	"github.com/jangala-dev/bipring/x/mathx"
	"github.com/jangala-dev/bipring/x/timex"
)

// minInterval/maxInterval bound what a config/watchdog message may retune
// the tick period to, the same way the HAL's UART reader clamps a
// reconfigured MaxFrame/IdleFlush rather than trusting an external value
// outright.
const (
	minInterval = 10 * time.Millisecond
	maxInterval = time.Minute
)

// Watchdog periodically publishes a named Ring's fill level and cumulative
// byte counters on a bus.Connection, and raises a one-shot alert whenever
// the drop counters move since the previous tick. It is the supervisory
// counterpart to the no-alloc producer/consumer path: nothing it does is on
// the hot path, so it is free to allocate and format.
type Watchdog struct {
	name string
	ring Ring
	conn *bus.Connection

	interval time.Duration

	lastFramesDropped uint64
	lastBytesDropped  uint64
}

// NewWatchdog constructs a Watchdog for ring, publishing as name over conn
// every interval. interval <= 0 is coerced to one second.
func NewWatchdog(name string, ring Ring, conn *bus.Connection, interval time.Duration) *Watchdog {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watchdog{name: name, ring: ring, conn: conn, interval: interval}
}

var topicConfigWatchdog = bus.T("config", "watchdog")

// Run blocks, publishing stats every tick, until ctx is cancelled. It also
// listens for a {"interval_ms": N} config message on "config"/"watchdog" to
// retune its own cadence without a restart.
func (w *Watchdog) Run(ctx context.Context) {
	cfgSub := w.conn.Subscribe(topicConfigWatchdog)
	defer w.conn.Unsubscribe(cfgSub)

	tick := time.NewTicker(w.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			w.publish()
		case msg := <-cfgSub.Channel():
			if m, ok := msg.Payload.(map[string]any); ok {
				if v, ok := m["interval_ms"].(float64); ok && v > 0 {
					w.interval = mathx.Clamp(time.Duration(v)*time.Millisecond, minInterval, maxInterval)
					tick.Reset(w.interval)
				}
			}
		}
	}
}

func (w *Watchdog) publish() {
	s := w.ring.Stats()
	stats := bus.RingStats{
		Name:          w.name,
		CapacityBytes: w.ring.Cap(),
		FillBytes:     w.ring.Fill(),
		BytesWritten:  s.BytesWritten(),
		BytesRead:     s.BytesRead(),
		TimestampMs:   timex.NowMs(),
	}
	w.conn.Publish(w.conn.NewMessage(bus.RingStatsTopic(w.name), stats, true))

	framesDropped, bytesDropped := s.FramesDropped(), s.BytesDropped()
	if framesDropped != w.lastFramesDropped || bytesDropped != w.lastBytesDropped {
		w.conn.Publish(w.conn.NewMessage(bus.RingDropTopic(w.name), bus.RingDrop{
			Name:          w.name,
			FramesDropped: framesDropped - w.lastFramesDropped,
			BytesDropped:  bytesDropped - w.lastBytesDropped,
		}, false))
		w.lastFramesDropped = framesDropped
		w.lastBytesDropped = bytesDropped
	}
}
