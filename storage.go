package bipring

// Storage owns the fixed-capacity backing array, the Bookkeeper, and the
// single waiter registration slot. It is constructed once and lives for the
// program; there is no destructor and no resizing.
type Storage struct {
	buf    []byte
	book   book
	waiter waiter
	stats  Stats
}

// NewStorage constructs a queue of the given byte capacity. Slots are
// uninitialised (zero-valued, in Go) until written.
func NewStorage(capacity int) *Storage {
	if capacity <= 0 {
		panic("bipring: capacity must be positive")
	}
	return &Storage{buf: make([]byte, capacity), book: newBook()}
}

// Cap returns the storage's byte capacity.
func (s *Storage) Cap() int { return len(s.buf) }

// waiter is the single-slot suspension primitive. All access to it happens
// while the caller holds a CS, so it needs no lock of its own.
type waiter struct {
	slot chan struct{}
}

// register installs a fresh wake channel, replacing whatever was previously
// registered. The SPSC model means at most one task waits per direction, and
// in practice only one side of the queue ever suspends (the other is
// typically an ISR that cannot).
func (w *waiter) register() <-chan struct{} {
	ch := make(chan struct{}, 1)
	w.slot = ch
	return ch
}

// wake notifies the registered waker, if any, and clears the slot. It is
// called after every commit or release that produces state the other side
// might be waiting on.
func (w *waiter) wake() {
	if w.slot == nil {
		return
	}
	select {
	case w.slot <- struct{}{}:
	default:
	}
	w.slot = nil
}

// Ring is a freely-copyable handle bound to a Storage's lifetime. Every
// operation takes a CS proving the caller holds the critical section.
type Ring struct {
	s *Storage
}

// NewRing returns a handle over storage. Ring is a small value type; copy it
// freely, it always refers back to the same Storage.
func NewRing(storage *Storage) Ring { return Ring{s: storage} }

// Wake notifies the registered waiter without otherwise changing state.
// Rarely needed directly — Commit already wakes on the transitions that
// matter — but exposed for callers that produce readiness out of band (e.g.
// an adapter that pushes bytes in through an ISR-safe path and wants to nudge
// a consumer that is polling rather than waiting).
func (r Ring) Wake(cs CS) { r.s.waiter.wake() }

// Cap returns the underlying Storage's byte capacity.
func (r Ring) Cap() int { return r.s.Cap() }

func spanBuf(buf []byte, sp span) []byte { return buf[sp.start:sp.end()] }
