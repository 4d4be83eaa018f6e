package surface

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gitlab.com/tozd/go/errors"
)

// Projector is anything with a ToObject projection: type nodes, exports,
// modules and programs.
type Projector interface {
	ToObject() map[string]any
}

func encodeOptions() []json.Options {
	return []json.Options{
		json.Deterministic(true),
		jsontext.WithIndent("  "),
	}
}

// Marshal renders a projection as indented JSON with sorted keys, so equal
// trees always produce identical bytes.
func Marshal(p Projector) ([]byte, error) {
	data, err := json.Marshal(p.ToObject(), encodeOptions()...)
	if err != nil {
		return nil, errors.Errorf("encoding %T: %w", p, err)
	}
	return data, nil
}

// Encode writes the projection of p to w.
func Encode(w io.Writer, p Projector) error {
	if err := json.MarshalWrite(w, p.ToObject(), encodeOptions()...); err != nil {
		return errors.Errorf("encoding %T: %w", p, err)
	}
	return nil
}

// MarshalObject renders an already-projected structure.
func MarshalObject(obj any) ([]byte, error) {
	data, err := json.Marshal(obj, encodeOptions()...)
	if err != nil {
		return nil, errors.Errorf("encoding object: %w", err)
	}
	return data, nil
}

// Decode reads a projection back as plain keyed data.
func Decode(data []byte) (map[string]any, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, errors.Errorf("decoding projection: %w", err)
	}
	return obj, nil
}
