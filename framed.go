package bipring

import "github.com/jangala-dev/bipring/varint"

// FrameWriteGrant wraps a WriteGrant reserved for maxFrame bytes of payload
// plus its own varint length header. Buf/BufMut expose only the payload
// region after the reserved header bytes; Commit writes the header and
// commits header+payload together.
type FrameWriteGrant struct {
	inner  *WriteGrant
	hdrLen int
}

// GrantFrame reserves room for a frame of at most maxSize payload bytes plus
// the header needed to encode that length.
func (r Ring) GrantFrame(cs CS, maxSize int) (*FrameWriteGrant, error) {
	hdrLen := varint.EncodedLen(uint(maxSize))
	wg, err := r.GrantExact(cs, maxSize+hdrLen)
	if err != nil {
		return nil, err
	}
	return &FrameWriteGrant{inner: wg, hdrLen: hdrLen}, nil
}

// Buf returns the payload region, read-only.
func (g *FrameWriteGrant) Buf() []byte { return g.inner.Buf()[g.hdrLen:] }

// BufMut returns the payload region, writable.
func (g *FrameWriteGrant) BufMut() []byte { return g.inner.BufMut()[g.hdrLen:] }

// Commit writes used (clamped to the reserved payload length) into the
// header as the frame's length, then commits header+payload to the
// underlying grant.
func (g *FrameWriteGrant) Commit(cs CS, used int) {
	payloadCap := g.inner.Len() - g.hdrLen
	if used > payloadCap {
		used = payloadCap
	}
	varint.EncodeTo(uint(used), g.hdrLen, g.inner.BufMut()[:g.hdrLen])
	g.inner.Commit(cs, g.hdrLen+used)
}

// Release abandons the frame grant without delivering any bytes.
func (g *FrameWriteGrant) Release(cs CS) { g.inner.Release(cs) }

// FrameReadGrant wraps a ReadGrant that has been shrunk to exactly one
// frame's header+payload. Buf exposes only the payload.
type FrameReadGrant struct {
	inner  *ReadGrant
	hdrLen int
}

// ReadFrame reads the varint header at the start of the next readable run
// to determine one frame's length, shrinks the underlying read grant to
// exactly that many bytes (header included), and returns it. It reports
// false if the queue is currently empty — never a short or partial frame,
// since a writer never commits less than a full header+payload (see
// FrameWriteGrant.Commit).
func (r Ring) ReadFrame(cs CS) (*FrameReadGrant, bool) {
	rg, err := r.Read(cs)
	if err != nil {
		return nil, false
	}
	hdrLen := varint.DecodedLen(rg.Buf()[0])
	frameLen := int(varint.Decode(rg.Buf()))
	rg.shrink(hdrLen + frameLen)
	return &FrameReadGrant{inner: rg, hdrLen: hdrLen}, true
}

// Buf returns the frame's payload, read-only.
func (g *FrameReadGrant) Buf() []byte { return g.inner.Buf()[g.hdrLen:] }

// Commit releases exactly this frame's header+payload byte count. used is
// ignored — a frame is always consumed whole.
func (g *FrameReadGrant) Commit(cs CS, used int) {
	g.inner.Commit(cs, g.inner.Len())
}

// Release abandons the frame without advancing the read cursor.
func (g *FrameReadGrant) Release(cs CS) { g.inner.Release(cs) }
