package encryption

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tink-crypto/tink-go/v2/subtle/random"

	"github.com/idelchi/ideacbc/internal/fileutil"
	"github.com/idelchi/ideacbc/pkg/idea"
)

// ivSize is the length of the initialization value prefixed to every output.
const ivSize = idea.BlockSize

// Codec encrypts and decrypts whole messages in the IV || ciphertext format.
// It keeps no per-call state and is safe for concurrent use as long as its
// random source is.
type Codec struct {
	// random supplies initialization values; nil means tink's CSPRNG
	random io.Reader
}

// Option configures a Codec.
type Option func(*Codec)

// WithRandom replaces the source of initialization values.
// The reader must be safe for concurrent use if the Codec is shared.
func WithRandom(r io.Reader) Option {
	return func(c *Codec) {
		c.random = r
	}
}

// NewCodec creates a Codec drawing initialization values from the system CSPRNG unless overridden.
func NewCodec(opts ...Option) *Codec {
	codec := &Codec{}

	for _, opt := range opts {
		opt(codec)
	}

	return codec
}

//nolint:gochecknoglobals // stateless
var defaultCodec = NewCodec()

// EncryptFile encrypts inputPath into outputPath with a fresh random IV.
func EncryptFile(inputPath, outputPath string, key []byte) error {
	return defaultCodec.EncryptFile(inputPath, outputPath, key)
}

// DecryptFile decrypts inputPath, as written by EncryptFile, into outputPath.
func DecryptFile(inputPath, outputPath string, key []byte) error {
	return defaultCodec.DecryptFile(inputPath, outputPath, key)
}

// Encrypt pads plaintext, chains it through IDEA in CBC mode and returns IV || ciphertext.
func (c *Codec) Encrypt(plaintext, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	padded := pkcs7Pad(plaintext, idea.BlockSize)

	iv, err := c.newIV()
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, ivSize+len(padded))
	out = append(out, iv...)

	return append(out, encryptCBC(block, iv, padded)...), nil
}

// newIV returns a fresh initialization value.
func (c *Codec) newIV() ([]byte, error) {
	if c.random == nil {
		return random.GetRandomBytes(ivSize), nil
	}

	iv := make([]byte, ivSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return nil, fmt.Errorf("%w: generating IV: %w", ErrIO, err)
	}

	return iv, nil
}

// Decrypt splits data into IV and ciphertext, reverses the chain and strips the padding.
//
// A wrong key or corrupted ciphertext is reported as ErrInvalidPadding in the vast
// majority of cases, but about one attempt in 256 still passes the padding check
// and yields garbage. A nil error is therefore no proof that the key was right.
func (c *Codec) Decrypt(data, key []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	if len(data) < ivSize+idea.BlockSize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrTruncatedInput, len(data), ivSize+idea.BlockSize)
	}

	if (len(data)-ivSize)%idea.BlockSize != 0 {
		return nil, fmt.Errorf("%w: ciphertext length %d is not a multiple of %d",
			ErrTruncatedInput, len(data)-ivSize, idea.BlockSize)
	}

	iv, ciphertext := data[:ivSize], data[ivSize:]

	plaintext, err := pkcs7Unpad(decryptCBC(block, iv, ciphertext), idea.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("removing padding: %w", err)
	}

	return plaintext, nil
}

// EncryptFile encrypts inputPath into outputPath.
func (c *Codec) EncryptFile(inputPath, outputPath string, key []byte) error {
	return transformFile(inputPath, outputPath, key, c.Encrypt)
}

// DecryptFile decrypts inputPath into outputPath.
func (c *Codec) DecryptFile(inputPath, outputPath string, key []byte) error {
	return transformFile(inputPath, outputPath, key, c.Decrypt)
}

// transformFile reads the whole input, applies fn in memory and only then
// creates the output, atomically.
func transformFile(inputPath, outputPath string, key []byte, fn func(data, key []byte) ([]byte, error)) (err error) {
	if len(key) != idea.KeySize {
		return keySizeError(len(key))
	}

	data, err := os.ReadFile(filepath.Clean(inputPath))
	if err != nil {
		return fmt.Errorf("%w: reading input: %w", ErrIO, err)
	}

	result, err := fn(data, key)
	if err != nil {
		return err
	}

	tc, err := fileutil.NewTempContext(inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("%w: preparing atomic write: %w", ErrIO, err)
	}

	defer tc.CleanupOnError(&err)

	if err := tc.Commit(result); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

func newBlock(key []byte) (*idea.Cipher, error) {
	if len(key) != idea.KeySize {
		return nil, keySizeError(len(key))
	}

	block, err := idea.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidKeySize, err)
	}

	return block, nil
}

func keySizeError(size int) error {
	return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeySize, size, idea.KeySize)
}
