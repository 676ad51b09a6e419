package encryption

import (
	"crypto/cipher"
	"crypto/subtle"
	"fmt"
)

// encryptCBC chains src through block starting from iv.
// Each plaintext block is XORed with the previous ciphertext block before encryption.
func encryptCBC(block cipher.Block, iv, src []byte) []byte {
	size := checkChain(block, iv, src)

	dst := make([]byte, len(src))
	prev := iv

	for i := 0; i < len(src); i += size {
		out := dst[i : i+size]

		subtle.XORBytes(out, src[i:i+size], prev)
		block.Encrypt(out, out)

		prev = out
	}

	return dst
}

// decryptCBC reverses encryptCBC.
// Each decrypted block is XORed with the previous ciphertext block.
func decryptCBC(block cipher.Block, iv, src []byte) []byte {
	size := checkChain(block, iv, src)

	dst := make([]byte, len(src))
	prev := iv

	for i := 0; i < len(src); i += size {
		in := src[i : i+size]
		out := dst[i : i+size]

		block.Decrypt(out, in)
		subtle.XORBytes(out, out, prev)

		prev = in
	}

	return dst
}

// checkChain panics on inputs that padding and framing should have ruled out.
func checkChain(block cipher.Block, iv, src []byte) int {
	size := block.BlockSize()

	if len(iv) != size {
		panic(fmt.Sprintf("encryption: iv length %d is not block size %d", len(iv), size))
	}

	if len(src)%size != 0 {
		panic(fmt.Sprintf("encryption: input length %d not a multiple of block size %d", len(src), size))
	}

	return size
}
