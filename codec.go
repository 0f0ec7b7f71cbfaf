package marquee

import (
	"bytes"
	"encoding/json"
	"errors"

	"gopkg.in/yaml.v3"
)

// Codec defines the deserialization contract for fetched payloads.
// Implement this interface to use alternative formats.
type Codec interface {
	// Unmarshal deserializes bytes into a value.
	Unmarshal(data []byte, v any) error

	// ContentType returns the MIME type for observability and debugging.
	ContentType() string
}

// JSONCodec implements Codec using encoding/json.
type JSONCodec struct{}

// Unmarshal deserializes JSON bytes into v.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// Ensure JSONCodec implements Codec.
var _ Codec = JSONCodec{}

// YAMLCodec implements Codec using gopkg.in/yaml.v3.
type YAMLCodec struct{}

// Unmarshal deserializes YAML bytes into v.
func (YAMLCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

// Ensure YAMLCodec implements Codec.
var _ Codec = YAMLCodec{}

var (
	errEmptyPayload   = errors.New("empty payload")
	errMissingResults = errors.New("payload has no results collection")
)

// decodeCollection decodes either a bare sequence of items or a
// {"results": [...]} envelope.
func decodeCollection[T any](codec Codec, raw []byte) ([]T, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errEmptyPayload
	}

	var items []T
	listErr := codec.Unmarshal(raw, &items)
	if listErr == nil {
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var envelope Collection[T]
	if err := codec.Unmarshal(raw, &envelope); err != nil {
		// Report the envelope error for objects, the list error otherwise.
		var object map[string]any
		if codec.Unmarshal(raw, &object) == nil {
			return nil, err
		}
		return nil, listErr
	}
	if envelope.Results == nil {
		return nil, errMissingResults
	}
	return envelope.Results, nil
}
