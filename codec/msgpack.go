package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack serializes with vmihailenco/msgpack/v5. The zero value is ready to
// use. Map keys are sorted and integers packed to their smallest width, so
// equal values always produce equal bytes.
//
// The encoder only sorts map[string]interface{} and a few other built-in
// map types, so Encode first reduces v to that generic tree (structs become
// maps keyed by field name) and encodes the tree.
//
// Field names come from `msgpack:"name"` tags, not `json` tags; types that
// are written in several formats should carry both.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return nil, err
	}
	var tree any
	if err := msgpack.Unmarshal(raw, &tree); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	enc.UseCompactInts(true)
	if err := enc.Encode(tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}
