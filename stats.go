package bipring

import "sync/atomic"

// Stats are cumulative, lock-free counters a Ring updates on the hot path.
// They are read-mostly from outside the critical section (a watchdog or CLI
// polling loop), so they live in atomics rather than under the Bookkeeper's
// CS discipline — approximate-but-cheap, the way a counter meant for
// diagnostics should be.
type Stats struct {
	bytesWritten  atomic.Uint64
	bytesRead     atomic.Uint64
	framesDropped atomic.Uint64
	bytesDropped  atomic.Uint64
}

// BytesWritten is the cumulative count of bytes committed by write grants.
func (s *Stats) BytesWritten() uint64 { return s.bytesWritten.Load() }

// BytesRead is the cumulative count of bytes committed by read grants.
func (s *Stats) BytesRead() uint64 { return s.bytesRead.Load() }

// FramesDropped counts the frames or chunks producers reported as discarded
// through NoteDrop.
func (s *Stats) FramesDropped() uint64 { return s.framesDropped.Load() }

// BytesDropped counts the payload bytes of dropped frames.
func (s *Stats) BytesDropped() uint64 { return s.bytesDropped.Load() }

// Fill reports the number of unread bytes currently queued, a point-in-time
// snapshot taken under a fresh critical section.
func (r Ring) Fill() int {
	var n int
	With(func(cs CS) {
		b := &r.s.book
		if b.write >= b.read {
			n = b.write - b.read
		} else {
			n = (b.last - b.read) + b.write
		}
	})
	return n
}

// NoteDrop records that a producer — typically an ISR that cannot block —
// gave up on delivering a frame because no grant of the needed size was
// available. It takes no critical section; it only touches the atomics.
func (r Ring) NoteDrop(frames int, bytes int) {
	r.s.stats.framesDropped.Add(uint64(frames))
	r.s.stats.bytesDropped.Add(uint64(bytes))
}

// Stats returns the Ring's cumulative counters.
func (r Ring) Stats() *Stats { return &r.s.stats }
