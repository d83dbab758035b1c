package bcd

import "testing"

func TestRoundTrip(t *testing.T) {
	for v := uint8(0); v < 100; v++ {
		if got := ToBin(FromBin(v)); got != v {
			t.Fatalf("round trip %d -> %d", v, got)
		}
	}
}

func TestKnownEncodings(t *testing.T) {
	cases := []struct {
		bin uint8
		bcd uint8
	}{
		{0, 0x00},
		{9, 0x09},
		{10, 0x10},
		{42, 0x42},
		{59, 0x59},
		{99, 0x99},
	}
	for _, c := range cases {
		if got := FromBin(c.bin); got != c.bcd {
			t.Errorf("FromBin(%d) = 0x%02x, want 0x%02x", c.bin, got, c.bcd)
		}
		if got := ToBin(c.bcd); got != c.bin {
			t.Errorf("ToBin(0x%02x) = %d, want %d", c.bcd, got, c.bin)
		}
	}
}
