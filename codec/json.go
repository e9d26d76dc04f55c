package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
)

// JSON encodes with encoding/json. A non-empty Indent pretty-prints for
// human-facing artifacts. Strict decoding rejects unknown object fields and
// trailing data after the document.
type JSON[V any] struct {
	Indent string
	Strict bool
}

func (c JSON[V]) Encode(v V) ([]byte, error) {
	if c.Indent != "" {
		return json.MarshalIndent(v, "", c.Indent)
	}
	return json.Marshal(v)
}

func (c JSON[V]) Decode(b []byte) (V, error) {
	var v V
	if !c.Strict {
		err := json.Unmarshal(b, &v)
		return v, err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return v, errors.New("json codec: trailing data after document")
	}
	return v, nil
}
