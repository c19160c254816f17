package bipring

import "github.com/jangala-dev/bipring/errcode"

// span is a contiguous byte range [start, start+len) into a Storage's buffer.
// It carries no reference to the buffer itself; book is pure bookkeeping.
type span struct {
	start, len int
}

func (s span) end() int { return s.start + s.len }

// book is the Bookkeeper: a pure state machine over four cursors and two
// single-holder flags. It never touches buffer bytes.
//
// max is taken to equal capacity (N), not N-1: a grant is permitted to fill
// the ring completely, and the write/read-ahead ambiguity this would
// otherwise create between "full" and "empty" is resolved by the strict
// inequality in acquireWrite's inversion case (size < read, never <=). See
// DESIGN.md for the alternative (max = N-1) this project did not take.
type book struct {
	write, read, last, reserve int
	writeInProgress            bool
	readInProgress             bool
}

// last starts at 0, not at capacity. This looks like it violates "last == N
// when not inverted", but last only bounds reads while inverted
// (write < read), and the first commit that advances write raises it to
// capacity through commitWrite's newWrite > last case. This mirrors the reference
// implementation's own Book::new().
func newBook() book {
	return book{}
}

func (b *book) acquireWrite(capacity, size int) (span, error) {
	if b.writeInProgress {
		return span{}, errcode.GrantInProgress
	}
	b.writeInProgress = true

	max := capacity
	inverted := b.write < b.read

	var start int
	switch {
	case inverted && b.write+size < b.read:
		start = b.write
	case inverted:
		b.writeInProgress = false
		return span{}, errcode.InsufficientSize
	case !inverted && b.write+size <= max:
		start = b.write
	case !inverted && size < b.read:
		// Doesn't fit at the tail, but fits if we wrap to the front and
		// invert. Strict "<", never "<=": write must never equal read
		// while inverted, or full and empty become indistinguishable.
		start = 0
	default:
		b.writeInProgress = false
		return span{}, errcode.InsufficientSize
	}

	b.reserve = start + size
	return span{start: start, len: size}, nil
}

// acquireWriteMax grants the largest contiguous write region available right
// now without forcing an inversion unless the tail is entirely exhausted.
func (b *book) acquireWriteMax(capacity int) (span, error) {
	if b.writeInProgress {
		return span{}, errcode.GrantInProgress
	}
	b.writeInProgress = true

	max := capacity
	inverted := b.write < b.read

	var start, size int
	switch {
	case inverted:
		// Must stay strictly short of read.
		size = b.read - b.write - 1
		if size <= 0 {
			b.writeInProgress = false
			return span{}, errcode.InsufficientSize
		}
		start = b.write
	case max-b.write > 0:
		start, size = b.write, max-b.write
	case b.read > 1:
		start, size = 0, b.read-1
	default:
		b.writeInProgress = false
		return span{}, errcode.InsufficientSize
	}

	b.reserve = start + size
	return span{start: start, len: size}, nil
}

// commitWrite installs the bytes the producer actually wrote and updates the
// watermark. used may be less than size (a short commit): the uncommitted
// tail is never delivered to the consumer because reserve, not the original
// grant end, becomes the new write cursor.
func (b *book) commitWrite(capacity, size, used int) {
	b.reserve -= size - used
	newWrite := b.reserve
	max := capacity

	switch {
	case newWrite < b.write && b.write != max:
		// We wrapped and are leaving an unreadable tail behind; pin last
		// where write used to be so the consumer knows not to read past it.
		b.last = b.write
	case newWrite > b.last:
		// We've now written past the old watermark; the tail segment
		// [newWrite, last) that used to be off-limits is reachable again
		// once read catches up, so there is nothing special to guard —
		// unlock the full ring as the upper bound.
		b.last = max
	}

	b.write = newWrite
	b.writeInProgress = false
}

// releaseWrite abandons an outstanding write grant without advancing write
// or moving last: no bytes are delivered, and reserve is left to be
// overwritten by the next acquireWrite.
func (b *book) releaseWrite() {
	b.writeInProgress = false
}

// acquireRead grants the longest currently-readable contiguous run. In
// inverted mode this is [read, last), never the wrapped two-part view —
// that is exposed separately through acquireReadSplit.
func (b *book) acquireRead(capacity int) (span, error) {
	if b.readInProgress {
		return span{}, errcode.GrantInProgress
	}
	b.readInProgress = true

	// Drained the high half of an inverted buffer: fold back to normal mode.
	if b.read == b.last && b.write < b.read {
		b.read = 0
	}

	var size int
	switch {
	case b.write == b.read:
		b.readInProgress = false
		return span{}, errcode.InsufficientSize
	case b.write > b.read:
		size = b.write - b.read
	default: // b.write < b.read: inverted, contiguous run stops at last
		size = b.last - b.read
	}

	return span{start: b.read, len: size}, nil
}

func (b *book) commitRead(used int) {
	b.read += used
	b.readInProgress = false
}

func (b *book) releaseRead() {
	b.readInProgress = false
}

// acquireReadSplit yields the full inverted readable region as two ranges:
// [read, last) and, if non-empty, [0, write). In normal mode the tail is
// absent.
func (b *book) acquireReadSplit(capacity int) (span, *span, error) {
	if b.readInProgress {
		return span{}, nil, errcode.GrantInProgress
	}
	b.readInProgress = true

	if b.read == b.last && b.write < b.read {
		b.read = 0
	}

	switch {
	case b.write == b.read:
		b.readInProgress = false
		return span{}, nil, errcode.InsufficientSize
	case b.write > b.read:
		return span{start: b.read, len: b.write - b.read}, nil, nil
	default:
		head := span{start: b.read, len: b.last - b.read}
		if b.write == 0 {
			return head, nil, nil
		}
		tail := span{start: 0, len: b.write}
		return head, &tail, nil
	}
}

func (b *book) commitReadSplit(headLen, tailLen, used int) {
	if used <= headLen {
		b.read += used
	} else {
		b.read = used - headLen
	}
	b.readInProgress = false
}
