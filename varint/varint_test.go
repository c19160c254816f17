package varint

import "testing"

func TestEncodedLenBoundaries(t *testing.T) {
	cases := []struct {
		value uint
		want  int
	}{
		{0, 1},
		{1, 1},
		{1<<7 - 1, 1},
		{1 << 7, 2},
		{1<<14 - 1, 2},
		{1 << 14, 3},
	}
	for _, c := range cases {
		if got := EncodedLen(c.value); got != c.want {
			t.Errorf("EncodedLen(%d) = %d, want %d", c.value, got, c.want)
		}
	}
}

func TestEncodedLenMaxWord(t *testing.T) {
	if got := EncodedLen(^uint(0)); got != wordBytes+1 {
		t.Errorf("EncodedLen(^uint(0)) = %d, want %d", got, wordBytes+1)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint{0, 1, 2, 100, 127, 128, 16383, 16384, ^uint(0), ^uint(0) - 1}
	for _, v := range values {
		n := EncodedLen(v)
		buf := make([]byte, n)
		EncodeTo(v, n, buf)
		if got := Decode(buf); got != v {
			t.Errorf("round trip %d: encoded %v, decoded %d", v, buf, got)
		}
		if got := DecodedLen(buf[0]); got != n {
			t.Errorf("DecodedLen(%#x) = %d, want %d (value %d)", buf[0], got, n, v)
		}
	}
}

func TestRoundTripOversizedHeader(t *testing.T) {
	// A header longer than strictly necessary must still decode correctly;
	// the framed layer reserves headers sized for a frame's declared max,
	// not its actual length.
	buf := make([]byte, 3)
	EncodeTo(5, 3, buf)
	if got := DecodedLen(buf[0]); got != 3 {
		t.Fatalf("DecodedLen = %d, want 3", got)
	}
	if got := Decode(buf); got != 5 {
		t.Fatalf("Decode = %d, want 5", got)
	}
}

func TestEncodeToPanicsOnTooSmall(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for undersized length")
		}
	}()
	buf := make([]byte, 1)
	EncodeTo(1000, 1, buf)
}

func TestEncodeToPanicsOnTooLarge(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for length exceeding MaxLen")
		}
	}()
	buf := make([]byte, MaxLen+1)
	EncodeTo(1, MaxLen+1, buf)
}
