// Package codec encodes and decodes build configurations.
//
// Codecs are selected by stable name or by file extension, so a
// configuration file is self-describing through its path.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when a path has no recognised extension.
var Default Codec = JSON{}

// ErrUnknownCodec is returned for unrecognised codec names or extensions.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("codec: unknown codec %q", e.Name)
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch strings.ToLower(name) {
	case "json", "go-json":
		return JSON{}, true
	case "yaml", "yml":
		return YAML{}, true
	default:
		return nil, false
	}
}

// ForPath selects a codec from the file extension of path.
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Default, nil
	}
	c, ok := ByName(ext)
	if !ok {
		return nil, &ErrUnknownCodec{Name: ext}
	}
	return c, nil
}

// MustMarshal is a helper for tests and examples.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
