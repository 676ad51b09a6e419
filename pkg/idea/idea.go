// Package idea implements the IDEA block cipher.
//
// IDEA operates on 64-bit blocks with a 128-bit key. Each block is split into
// four big-endian 16-bit words and passed through eight rounds mixing three
// algebraic groups:
//   - XOR on 16-bit words
//   - addition modulo 2^16
//   - multiplication modulo 2^16+1, where the word 0 stands for 2^16
//
// followed by an output transformation. Decryption runs the same routine with
// an algebraically inverted key schedule.
package idea

import (
	"crypto/cipher"
	"encoding/binary"
	"strconv"
)

const (
	// BlockSize is the IDEA block size in bytes.
	BlockSize = 8
	// KeySize is the IDEA key size in bytes.
	KeySize = 16

	rounds      = 8
	roundKeys   = 6
	scheduleLen = roundKeys*rounds + 4

	modulus = 0x10001
)

// KeySizeError is returned for keys that are not exactly KeySize bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "idea: invalid key size " + strconv.Itoa(int(k))
}

// Schedule holds the 52 sub-keys consumed by the eight rounds (six each)
// and the output transformation (four).
type Schedule [scheduleLen]uint16

// Cipher is an IDEA instance holding the encryption and decryption schedules.
// It is immutable after construction and safe for concurrent use.
type Cipher struct {
	enc Schedule
	dec Schedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key into both schedules.
func NewCipher(key []byte) (*Cipher, error) {
	enc, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}

	return &Cipher{enc: enc, dec: enc.Invert()}, nil
}

// BlockSize returns the cipher's block size.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block in src into dst.
func (c *Cipher) Encrypt(dst, src []byte) { c.enc.Crypt(dst, src) }

// Decrypt decrypts the first block in src into dst.
func (c *Cipher) Decrypt(dst, src []byte) { c.dec.Crypt(dst, src) }

// ExpandKey derives the encryption schedule from a 16-byte key.
//
// The key is read as a 128-bit big-endian integer. Each group of eight
// sub-keys is that integer split into 16-bit words; between groups the
// integer is rotated left by 25 bits.
func ExpandKey(key []byte) (Schedule, error) {
	var sched Schedule

	if len(key) != KeySize {
		return sched, KeySizeError(len(key))
	}

	hi := binary.BigEndian.Uint64(key[:8])
	lo := binary.BigEndian.Uint64(key[8:])

	for i := 0; i < scheduleLen; i += 8 {
		for j := 0; j < 8 && i+j < scheduleLen; j++ {
			word := hi
			if j >= 4 {
				word = lo
			}

			sched[i+j] = uint16(word >> (48 - 16*(j%4))) //nolint:gosec // truncation selects the word
		}

		hi, lo = hi<<25|lo>>39, lo<<25|hi>>39
	}

	return sched, nil
}

// Invert derives the decryption schedule.
//
// Decryption round r uses the output-transform keys of encryption round 8-r,
// with multiplicative keys inverted mod 2^16+1 and additive keys negated mod
// 2^16. For the inner rounds the two additive keys trade places, undoing the
// swap of the middle words. The MA keys are taken unchanged from the
// preceding encryption round.
func (s *Schedule) Invert() Schedule {
	var inv Schedule

	for r := 0; r <= rounds; r++ {
		src := roundKeys * (rounds - r)
		dst := roundKeys * r

		add1, add2 := -s[src+1], -s[src+2]
		if r > 0 && r < rounds {
			add1, add2 = add2, add1
		}

		inv[dst] = mulInv(s[src])
		inv[dst+1] = add1
		inv[dst+2] = add2
		inv[dst+3] = mulInv(s[src+3])

		if r < rounds {
			inv[dst+4] = s[src-2]
			inv[dst+5] = s[src-1]
		}
	}

	return inv
}

// Crypt passes exactly one block from src through the cipher into dst.
// dst and src may overlap entirely.
func (s *Schedule) Crypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("idea: input not full block")
	}

	if len(dst) < BlockSize {
		panic("idea: output not full block")
	}

	a := binary.BigEndian.Uint16(src[0:])
	b := binary.BigEndian.Uint16(src[2:])
	c := binary.BigEndian.Uint16(src[4:])
	d := binary.BigEndian.Uint16(src[6:])

	for r := range rounds {
		k := s[roundKeys*r : roundKeys*(r+1)]

		a = mul(a, k[0])
		b += k[1]
		c += k[2]
		d = mul(d, k[3])

		// MA structure
		e := mul(a^c, k[4])
		f := mul((b^d)+e, k[5])
		e += f

		a ^= f
		d ^= e
		b, c = c^f, b^e
	}

	// The last round's swap is undone by reading b and c crosswise.
	k := s[roundKeys*rounds:]

	binary.BigEndian.PutUint16(dst[0:], mul(a, k[0]))
	binary.BigEndian.PutUint16(dst[2:], c+k[1])
	binary.BigEndian.PutUint16(dst[4:], b+k[2])
	binary.BigEndian.PutUint16(dst[6:], mul(d, k[3]))
}

// mul multiplies modulo 2^16+1 with 0 standing for 2^16.
func mul(x, y uint16) uint16 {
	// 2^16 ≡ -1, so 2^16*v ≡ -v ≡ 1-v (mod 2^16).
	if y == 0 {
		return 1 - x
	}

	if x == 0 {
		return 1 - y
	}

	p := uint32(x) * uint32(y)
	lo, hi := uint16(p), uint16(p>>16) //nolint:gosec // splitting the product

	// p = hi*2^16 + lo ≡ lo - hi (mod 2^16+1)
	if lo < hi {
		return lo - hi + 1
	}

	return lo - hi
}

// mulInv returns the inverse of x under mul, computed as x^(p-2) mod p.
// 0 (2^16 ≡ -1) and 1 are their own inverses.
func mulInv(x uint16) uint16 {
	base := uint64(x)
	if x == 0 {
		base = 1 << 16
	}

	result := uint64(1)

	for exp := modulus - 2; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			result = result * base % modulus
		}

		base = base * base % modulus
	}

	return uint16(result) //nolint:gosec // 2^16 wraps to 0 by convention
}
