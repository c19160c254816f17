package bipring

import "context"

// Wait suspends the caller until probe returns a non-empty result, or ctx is
// cancelled. Each attempt enters the critical section, runs probe, and if it
// returns ok == false, registers to be woken by the next Commit that
// produces observable state (bytes to read, space to write) before
// suspending.
//
// probe must not suspend; it runs inside a CS. A typical probe calls
// r.Read(cs) or r.GrantExact(cs, n) and translates errcode.InsufficientSize
// into (zero, false).
//
// Dropping the returned call (via ctx cancellation) before it resolves is
// always safe: the only state it registers is the waker slot, which the next
// registerer simply replaces.
func Wait[T any](ctx context.Context, r Ring, probe func(Ring, CS) (T, bool)) (T, error) {
	for {
		var (
			result T
			ok     bool
			woken  <-chan struct{}
		)
		With(func(cs CS) {
			result, ok = probe(r, cs)
			if !ok {
				woken = r.s.waiter.register()
			}
		})
		if ok {
			return result, nil
		}
		select {
		case <-woken:
			continue
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}
