package bipring

import "testing"

func TestNewRegisteredRoundTrips(t *testing.T) {
	h, r := NewRegistered(16)
	if h == 0 {
		t.Fatal("handle is zero")
	}
	got, ok := Get(h)
	if !ok {
		t.Fatal("Get: handle not found")
	}
	if got.s != r.s {
		t.Fatal("Get returned a different Storage than NewRegistered produced")
	}
}

func TestGetUnknownHandle(t *testing.T) {
	if _, ok := Get(Handle(0)); ok {
		t.Fatal("zero handle should never resolve")
	}
	if _, ok := Get(Handle(1 << 31)); ok {
		t.Fatal("unregistered handle should not resolve")
	}
}

func TestCloseRemovesHandleButKeepsRing(t *testing.T) {
	h, r := NewRegistered(16)
	mustWrite(t, r, []byte{9})

	Close(h)
	if _, ok := Get(h); ok {
		t.Fatal("handle should no longer resolve after Close")
	}

	var g *ReadGrant
	var err error
	With(func(cs CS) { g, err = r.Read(cs) })
	if err != nil {
		t.Fatalf("Read on a closed handle's Ring: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
}

func TestRegisterAssignsDistinctHandles(t *testing.T) {
	r := NewRing(NewStorage(8))
	h1 := Register(r)
	h2 := Register(r)
	if h1 == h2 {
		t.Fatal("Register should never hand out the same handle twice")
	}
}
