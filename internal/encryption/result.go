package encryption

import "fmt"

// Result is the outcome of encrypting or decrypting one file.
type Result struct {
	// Input is the file that was read
	Input string

	// Output is where the IV-prefixed ciphertext or the recovered plaintext was written.
	// Empty when Err is set, since failed runs leave nothing behind.
	Output string

	// Size is the number of bytes written to Output
	Size int64

	// Err is the error kind (ErrInvalidKeySize, ErrTruncatedInput, ErrInvalidPadding, ErrIO)
	// wrapped with context
	Err error
}

// String renders the result as the per-file status line.
func (r Result) String() string {
	if r.Err != nil {
		return fmt.Sprintf("Error processing %q: %v", r.Input, r.Err)
	}

	return fmt.Sprintf("Processed %q -> %q", r.Input, r.Output)
}
