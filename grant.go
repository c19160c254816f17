package bipring

import "runtime"

// WriteGrant is a short-lived, exclusive borrow of a contiguous write region.
// Fill it through BufMut, then Commit the bytes actually written. If it is
// garbage collected without an explicit Commit or Release, it auto-releases
// as a safety net — equivalent to Commit(cs, 0), delivering nothing — via a
// finalizer entering its own critical section. The explicit paths disarm the
// finalizer first, so a normal Commit never pays for it.
type WriteGrant struct {
	ring    Ring
	rng     span
	settled bool
}

func (r Ring) grantWrite(rng span) *WriteGrant {
	g := &WriteGrant{ring: r, rng: rng}
	runtime.SetFinalizer(g, (*WriteGrant).release)
	return g
}

// GrantExact reserves an exact-size contiguous write region. Fails with
// errcode.GrantInProgress if a write grant is already outstanding, or
// errcode.InsufficientSize if no contiguous region of that size exists
// right now.
func (r Ring) GrantExact(cs CS, size int) (*WriteGrant, error) {
	rng, err := r.s.book.acquireWrite(r.s.Cap(), size)
	if err != nil {
		return nil, err
	}
	return r.grantWrite(rng), nil
}

// GrantMaxRemaining reserves the largest contiguous write region available
// right now, without forcing an inversion unless the tail is exhausted.
func (r Ring) GrantMaxRemaining(cs CS) (*WriteGrant, error) {
	rng, err := r.s.book.acquireWriteMax(r.s.Cap())
	if err != nil {
		return nil, err
	}
	return r.grantWrite(rng), nil
}

// Buf returns the grant's range as read-only bytes.
func (g *WriteGrant) Buf() []byte { return spanBuf(g.ring.s.buf, g.rng) }

// BufMut returns the grant's range as writable bytes.
func (g *WriteGrant) BufMut() []byte { return spanBuf(g.ring.s.buf, g.rng) }

// Len reports the size reserved by the acquisition that produced this grant.
func (g *WriteGrant) Len() int { return g.rng.len }

// Commit installs used bytes (0 <= used <= Len()) as newly readable, wakes
// the waiter if used > 0, and disarms the release-on-GC safety net.
func (g *WriteGrant) Commit(cs CS, used int) {
	if g.settled {
		return
	}
	if used > g.rng.len {
		used = g.rng.len
	}
	g.ring.s.book.commitWrite(g.ring.s.Cap(), g.rng.len, used)
	g.settled = true
	runtime.SetFinalizer(g, nil)
	if used > 0 {
		g.ring.s.stats.bytesWritten.Add(uint64(used))
		g.ring.s.waiter.wake()
	}
}

// Release abandons the grant without delivering any bytes and without
// waking the waiter; write and last keep their pre-acquire values.
func (g *WriteGrant) Release(cs CS) {
	if g.settled {
		return
	}
	g.ring.s.book.releaseWrite()
	g.settled = true
	runtime.SetFinalizer(g, nil)
}

// release is the finalizer safety net: a grant dropped without an explicit
// Commit/Release enters a fresh critical section and releases with no bytes
// delivered. Idempotent — a finalizer only ever runs once per object, and
// settled is already true for any grant that went through Commit/Release.
func (g *WriteGrant) release() {
	if g.settled {
		return
	}
	With(func(cs CS) { g.Release(cs) })
}

// ReadGrant is a short-lived, exclusive borrow of the longest currently
// readable contiguous run. Read through Buf, then Commit the bytes actually
// consumed.
type ReadGrant struct {
	ring    Ring
	rng     span
	settled bool
}

func (r Ring) grantRead(rng span) *ReadGrant {
	g := &ReadGrant{ring: r, rng: rng}
	runtime.SetFinalizer(g, (*ReadGrant).release)
	return g
}

// Read reserves the longest currently readable contiguous run. Fails with
// errcode.GrantInProgress if a read grant is already outstanding, or
// errcode.InsufficientSize if the queue is empty.
func (r Ring) Read(cs CS) (*ReadGrant, error) {
	rng, err := r.s.book.acquireRead(r.s.Cap())
	if err != nil {
		return nil, err
	}
	return r.grantRead(rng), nil
}

// Buf returns the bytes available to read.
func (g *ReadGrant) Buf() []byte { return spanBuf(g.ring.s.buf, g.rng) }

// Len reports the number of bytes available to read.
func (g *ReadGrant) Len() int { return g.rng.len }

// shrink narrows the grant's exposed range to the first n bytes. Used by the
// framed layer once it has decoded the frame length from the header; the
// Bookkeeper is unaware of this — it is purely a view adjustment.
func (g *ReadGrant) shrink(n int) { g.rng.len = n }

// Commit advances the read cursor by used bytes (0 <= used <= Len()), wakes
// the waiter, and disarms the release-on-GC safety net.
func (g *ReadGrant) Commit(cs CS, used int) {
	if g.settled {
		return
	}
	if used > g.rng.len {
		used = g.rng.len
	}
	g.ring.s.book.commitRead(used)
	g.settled = true
	runtime.SetFinalizer(g, nil)
	g.ring.s.stats.bytesRead.Add(uint64(used))
	g.ring.s.waiter.wake()
}

// Release abandons the grant without advancing the read cursor.
func (g *ReadGrant) Release(cs CS) {
	if g.settled {
		return
	}
	g.ring.s.book.releaseRead()
	g.settled = true
	runtime.SetFinalizer(g, nil)
}

func (g *ReadGrant) release() {
	if g.settled {
		return
	}
	With(func(cs CS) { g.Release(cs) })
}

// SplitReadGrant exposes the two-part view of an inverted readable region:
// head is always present, tail only when the inversion has wrapped data at
// the front of the ring.
type SplitReadGrant struct {
	ring    Ring
	head    span
	tail    *span
	settled bool
}

// SplitRead reserves the full inverted readable region as two contiguous
// ranges instead of folding it to the head-only contiguous run that Read
// returns.
func (r Ring) SplitRead(cs CS) (*SplitReadGrant, error) {
	head, tail, err := r.s.book.acquireReadSplit(r.s.Cap())
	if err != nil {
		return nil, err
	}
	g := &SplitReadGrant{ring: r, head: head, tail: tail}
	runtime.SetFinalizer(g, (*SplitReadGrant).release)
	return g, nil
}

// Bufs returns (head, tail); tail is nil when there is no wrapped segment.
func (g *SplitReadGrant) Bufs() (head, tail []byte) {
	head = spanBuf(g.ring.s.buf, g.head)
	if g.tail != nil {
		tail = spanBuf(g.ring.s.buf, *g.tail)
	}
	return head, tail
}

// Len reports the combined length of head and tail.
func (g *SplitReadGrant) Len() int {
	n := g.head.len
	if g.tail != nil {
		n += g.tail.len
	}
	return n
}

// Commit advances the read cursor by used bytes across both segments.
func (g *SplitReadGrant) Commit(cs CS, used int) {
	if g.settled {
		return
	}
	total := g.Len()
	if used > total {
		used = total
	}
	tailLen := 0
	if g.tail != nil {
		tailLen = g.tail.len
	}
	g.ring.s.book.commitReadSplit(g.head.len, tailLen, used)
	g.settled = true
	runtime.SetFinalizer(g, nil)
	g.ring.s.stats.bytesRead.Add(uint64(used))
	g.ring.s.waiter.wake()
}

// Release abandons the grant without advancing the read cursor.
func (g *SplitReadGrant) Release(cs CS) {
	if g.settled {
		return
	}
	g.ring.s.book.releaseRead()
	g.settled = true
	runtime.SetFinalizer(g, nil)
}

func (g *SplitReadGrant) release() {
	if g.settled {
		return
	}
	With(func(cs CS) { g.Release(cs) })
}
