package encryption

import "errors"

var (
	// ErrInvalidKeySize is returned when the key is not exactly 16 bytes.
	ErrInvalidKeySize = errors.New("invalid key size")
	// ErrTruncatedInput is returned when encrypted data is too short for the IV
	// or not aligned with the block size.
	ErrTruncatedInput = errors.New("truncated input")
	// ErrInvalidPadding is returned when PKCS#7 padding is malformed after decryption.
	// Usually the key is wrong or the ciphertext is corrupted.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrIO marks failures reading the input or writing the output.
	ErrIO = errors.New("i/o error")
)
