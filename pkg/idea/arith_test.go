package idea

import "testing"

// mulSlow is mul written directly from its definition.
func mulSlow(x, y uint16) uint16 {
	a, b := uint64(x), uint64(y)
	if a == 0 {
		a = 1 << 16
	}

	if b == 0 {
		b = 1 << 16
	}

	return uint16(a * b % modulus) //nolint:gosec // 2^16 wraps to 0 by convention
}

func TestMul(t *testing.T) {
	t.Parallel()

	edges := []uint16{0, 1, 2, 0x7fff, 0x8000, 0xfffe, 0xffff}

	for _, x := range edges {
		for _, y := range edges {
			if got, want := mul(x, y), mulSlow(x, y); got != want {
				t.Errorf("mul(%#x, %#x) = %#x, want %#x", x, y, got, want)
			}
		}
	}

	for x := uint32(0); x <= 0xffff; x += 251 {
		for y := uint32(0); y <= 0xffff; y += 257 {
			if got, want := mul(uint16(x), uint16(y)), mulSlow(uint16(x), uint16(y)); got != want {
				t.Fatalf("mul(%#x, %#x) = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestMulInv(t *testing.T) {
	t.Parallel()

	if got := mulInv(0); got != 0 {
		t.Errorf("mulInv(0) = %#x, want 0", got)
	}

	for x := uint32(0); x <= 0xffff; x++ {
		if got := mul(uint16(x), mulInv(uint16(x))); got != 1 {
			t.Fatalf("mul(%#x, mulInv(%#x)) = %#x, want 1", x, x, got)
		}
	}
}
