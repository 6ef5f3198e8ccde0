package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Float32 similarities are written with the shortest representation that
// round-trips, so decoded results compare equal to the originals.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
