package bipring

import "sync"

// CS is a witness that the caller currently holds the program-wide critical
// section. It carries no state; the only way to construct one is through
// With, which is the point — callers cannot fabricate exclusion.
//
// On real hardware this would mask the interrupt sources that could race
// with ring bookkeeping (an ISR driving one side of the queue). This
// implementation models that with a single global mutex, which gives the
// same guarantee against concurrent goroutines including one standing in
// for an ISR.
type CS struct{ _ struct{} }

var csMu sync.Mutex

// With runs fn inside the program-wide critical section. fn must not
// suspend (block on a channel, sleep, or otherwise yield) — critical
// sections are never held across a suspension point.
func With(fn func(cs CS)) {
	csMu.Lock()
	defer csMu.Unlock()
	fn(CS{})
}
