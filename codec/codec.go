// Package codec encodes batches and scan results for storage.
//
// Batches have a compact binary format (EncodeBatch, DecodeBatch). Batches
// and results also have a document form that any Codec can marshal.
package codec

import (
	"fmt"
	"path"
	"strings"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec used when none is selected.
var Default Codec = JSON{}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "yaml", "yml":
		return YAML{}, true
	default:
		return nil, false
	}
}

// ForPath returns the codec matching the extension of name, e.g. ".yaml".
func ForPath(name string) (Codec, bool) {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	return ByName(ext)
}

// MustMarshal is a helper for internal tests/benchmarks.
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
