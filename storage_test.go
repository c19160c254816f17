package bipring

import "testing"

func TestNewStoragePanicsOnNonPositiveCapacity(t *testing.T) {
	for _, cap := range []int{0, -1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewStorage(%d): expected panic", cap)
				}
			}()
			NewStorage(cap)
		}()
	}
}

func TestCap(t *testing.T) {
	s := NewStorage(64)
	if s.Cap() != 64 {
		t.Fatalf("Cap() = %d, want 64", s.Cap())
	}
}

func TestWaiterRegisterReplacesSlot(t *testing.T) {
	var w waiter
	first := w.register()
	second := w.register()

	w.wake()

	select {
	case <-second:
	default:
		t.Fatal("wake did not signal the most recently registered waiter")
	}
	select {
	case <-first:
		t.Fatal("wake signaled a stale waiter slot that was replaced")
	default:
	}
}

func TestWaiterWakeWithoutRegisterIsNoop(t *testing.T) {
	var w waiter
	w.wake() // must not panic or block
}

func TestRingIsCopyable(t *testing.T) {
	// A Ring is a thin handle over a shared *Storage; copies observe the
	// same state, matching how a producer and consumer each hold their own
	// handle to one underlying queue.
	s := NewStorage(8)
	producer := NewRing(s)
	consumer := producer

	mustWrite(t, producer, []byte{1, 2, 3})

	var g *ReadGrant
	var err error
	With(func(cs CS) { g, err = consumer.Read(cs) })
	if err != nil {
		t.Fatalf("Read via copied handle: %v", err)
	}
	if string(g.Buf()) != string([]byte{1, 2, 3}) {
		t.Fatalf("Buf() = %v, want [1 2 3]", g.Buf())
	}
}
