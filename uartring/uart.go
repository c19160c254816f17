// Package uartring wires a UART onto a bipring.Ring: received bytes are
// copied into a write grant as they arrive, and an outgoing ring's frames
// are drained onto the wire. The board-specific UART is hidden behind Port,
// the same way the HAL layer abstracts uartx behind its own interface, so
// the pump logic is exercisable on a host without real hardware attached.
package uartring

import (
	"context"

	"github.com/jangala-dev/bipring"
)

// Port is the subset of a UART an Adapter needs. On-device, it is satisfied
// by an RP2040 uartx.UART wrapped via OpenUART0/OpenUART1; in tests, by a
// fake that buffers bytes in memory.
type Port interface {
	Write(p []byte) (int, error)
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// Adapter couples one UART Port to up to two rings: RX bytes flow into In,
// and frames committed to Out are written to the wire.
type Adapter struct {
	port Port
	in   bipring.Ring
	out  bipring.Ring

	rxChunk int
}

// New returns an Adapter pumping received bytes into in and draining framed
// writes from out onto port. Either ring may be the zero Ring if that
// direction is unused. rxChunk <= 0 is coerced to 64.
func New(port Port, in, out bipring.Ring, rxChunk int) *Adapter {
	if rxChunk <= 0 {
		rxChunk = 64
	}
	return &Adapter{port: port, in: in, out: out, rxChunk: rxChunk}
}

// RunRX blocks, copying received bytes into the inbound ring until ctx is
// cancelled or the port returns an error. When the ring has no room for a
// chunk, the chunk is dropped and counted rather than held — an ISR-fed
// UART cannot apply backpressure to the wire, so the producer side must
// never block here.
func (a *Adapter) RunRX(ctx context.Context) error {
	scratch := make([]byte, a.rxChunk)
	for {
		n, err := a.port.RecvSomeContext(ctx, scratch)
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		a.deliver(scratch[:n])
	}
}

func (a *Adapter) deliver(chunk []byte) {
	var g *bipring.WriteGrant
	var err error
	bipring.With(func(cs bipring.CS) { g, err = a.in.GrantExact(cs, len(chunk)) })
	if err != nil {
		a.in.NoteDrop(1, len(chunk))
		return
	}
	copy(g.BufMut(), chunk)
	bipring.With(func(cs bipring.CS) { g.Commit(cs, len(chunk)) })
}

// RunTX blocks, writing each frame committed to the outbound ring onto the
// wire in order, until ctx is cancelled.
func (a *Adapter) RunTX(ctx context.Context) error {
	for {
		g, err := bipring.Wait(ctx, a.out, func(r bipring.Ring, cs bipring.CS) (*bipring.FrameReadGrant, bool) {
			return r.ReadFrame(cs)
		})
		if err != nil {
			return err
		}
		if _, werr := a.port.Write(g.Buf()); werr != nil {
			bipring.With(func(cs bipring.CS) { g.Release(cs) })
			return werr
		}
		bipring.With(func(cs bipring.CS) { g.Commit(cs, 0) })
	}
}
