package bipring

import (
	"context"
	"testing"
	"time"
)

func TestWaitWakesOnCommit(t *testing.T) {
	r := NewRing(NewStorage(8))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := Wait(context.Background(), r, func(r Ring, cs CS) (*ReadGrant, bool) {
			g, err := r.Read(cs)
			if err != nil {
				return nil, false
			}
			return g, true
		})
		if err != nil {
			t.Errorf("Wait: %v", err)
		}
	}()

	// Give the waiter a moment to register before the first commit wakes it.
	time.Sleep(10 * time.Millisecond)
	mustWrite(t, r, []byte{1, 2, 3})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after a commit made data available")
	}
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	r := NewRing(NewStorage(8))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := Wait(ctx, r, func(r Ring, cs CS) (*ReadGrant, bool) {
			g, err := r.Read(cs) // always empty, always InsufficientSize
			if err != nil {
				return nil, false
			}
			return g, true
		})
		done <- err
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Wait returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after context cancellation")
	}
}

func TestWaitSucceedsImmediatelyWhenAlreadyReady(t *testing.T) {
	r := NewRing(NewStorage(8))
	mustWrite(t, r, []byte{1, 2, 3})

	g, err := Wait(context.Background(), r, func(r Ring, cs CS) (*ReadGrant, bool) {
		g, err := r.Read(cs)
		if err != nil {
			return nil, false
		}
		return g, true
	})
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if string(g.Buf()) != string([]byte{1, 2, 3}) {
		t.Fatalf("Buf() = %v, want [1 2 3]", g.Buf())
	}
}
