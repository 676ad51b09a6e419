package encryption

import (
	"bytes"
	"crypto/cipher"
	"testing"

	"github.com/idelchi/ideacbc/pkg/idea"
)

func TestCBCMatchesStandardLibrary(t *testing.T) {
	t.Parallel()

	block, err := idea.NewCipher([]byte("1234567890abcdef"))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	iv := []byte{7, 6, 5, 4, 3, 2, 1, 0}

	for blocks := 1; blocks <= 6; blocks++ {
		src := make([]byte, blocks*idea.BlockSize)
		for i := range src {
			src[i] = byte(i * 31)
		}

		want := make([]byte, len(src))
		cipher.NewCBCEncrypter(block, iv).CryptBlocks(want, src)

		got := encryptCBC(block, iv, src)
		if !bytes.Equal(got, want) {
			t.Fatalf("%d blocks: encryptCBC = %x, want %x", blocks, got, want)
		}

		if plain := decryptCBC(block, iv, got); !bytes.Equal(plain, src) {
			t.Fatalf("%d blocks: decryptCBC = %x, want %x", blocks, plain, src)
		}
	}
}

func TestCBCChainsBlocks(t *testing.T) {
	t.Parallel()

	block, err := idea.NewCipher(make([]byte, idea.KeySize))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	// Identical plaintext blocks must not yield identical ciphertext blocks.
	src := bytes.Repeat([]byte("samesame"), 3)
	out := encryptCBC(block, make([]byte, idea.BlockSize), src)

	if bytes.Equal(out[:8], out[8:16]) || bytes.Equal(out[8:16], out[16:]) {
		t.Errorf("repeated plaintext produced repeated ciphertext: %x", out)
	}

	// Flipping one ciphertext bit garbles its block and flips the same bit in the next.
	tampered := bytes.Clone(out)
	tampered[3] ^= 0x10

	plain := decryptCBC(block, make([]byte, idea.BlockSize), tampered)

	if bytes.Equal(plain[:8], src[:8]) {
		t.Error("tampered block decrypted unchanged")
	}

	if plain[11] != src[11]^0x10 {
		t.Errorf("next block byte = %#x, want %#x", plain[11], src[11]^0x10)
	}

	if !bytes.Equal(plain[16:], src[16:]) {
		t.Error("tampering propagated beyond the next block")
	}
}

func TestCBCPanicsOnMisalignedInput(t *testing.T) {
	t.Parallel()

	block, err := idea.NewCipher(make([]byte, idea.KeySize))
	if err != nil {
		t.Fatalf("NewCipher: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("encryptCBC accepted a misaligned input")
		}
	}()

	encryptCBC(block, make([]byte, idea.BlockSize), make([]byte, 5))
}
