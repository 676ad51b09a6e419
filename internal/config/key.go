package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idelchi/gogen/pkg/key"
)

// Key describes where the key material comes from.
// Text keys are used as their UTF-8 bytes and must encode to exactly 16 bytes.
type Key struct {
	String string `label:"--key"      mapstructure:"key"      mask:"filled" validate:"keysource=File Prompt,exclusive=File,exclusive=Prompt"` //nolint:lll
	File   string `label:"--key-file" mapstructure:"key-file" validate:"exclusive=Prompt"`
	Hex    bool   `mapstructure:"hex"`
	Prompt bool   `mapstructure:"prompt"`
}

// Bytes returns the raw key material from the flag or the key file.
// A single trailing line break in a key file is ignored.
func (k Key) Bytes() ([]byte, error) {
	material := k.String

	if material == "" && k.File != "" {
		data, err := os.ReadFile(filepath.Clean(k.File))
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}

		material = strings.TrimSuffix(strings.TrimSuffix(string(data), "\n"), "\r")
	}

	if !k.Hex {
		return []byte(material), nil
	}

	decoded, err := key.FromHex(material)
	if err != nil {
		return nil, fmt.Errorf("decoding key: %w", err)
	}

	return decoded, nil
}
