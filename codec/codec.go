// Package codec serializes batch artifacts. Every Codec is symmetric:
// Decode(Encode(v)) yields v for supported values.
//
// Artifacts are written in one of four formats, optionally veiled:
//
//	c, ext, err := codec.ForFormat[batch.Summary](codec.FormatCBOR, true)
//	// ext == ".cbor.veil"; c.Encode output starts with veilhex.Header
package codec

import (
	"fmt"
	"sort"
)

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Format names an artifact serialization.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCBOR    Format = "cbor"
	FormatMsgpack Format = "msgpack"
	FormatProto   Format = "proto"
)

const veilExt = ".veil"

var extensions = map[Format]string{
	FormatJSON:    ".json",
	FormatCBOR:    ".cbor",
	FormatMsgpack: ".msgpack",
	FormatProto:   ".pb",
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(extensions))
	for f := range extensions {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return extensions[f] }

// ForFormat builds the artifact Codec for f ("" means json). Every format
// is deterministic: JSON is indented two spaces, CBOR and msgpack sort map
// keys, proto uses deterministic marshaling. veil wraps the result in Veiled
// and appends ".veil" to the extension.
func ForFormat[V any](f Format, veil bool) (Codec[V], string, error) {
	var c Codec[V]
	switch f {
	case FormatJSON, "":
		f = FormatJSON
		c = JSON[V]{Indent: "  ", Strict: true}
	case FormatCBOR:
		cb, err := NewCBOR[V]()
		if err != nil {
			return nil, "", err
		}
		c = cb
	case FormatMsgpack:
		c = Msgpack[V]{}
	case FormatProto:
		c = Struct[V]{}
	default:
		return nil, "", fmt.Errorf("codec: unknown format %q (want one of %v)", f, Formats())
	}
	ext := f.Ext()
	if veil {
		c = Veiled[V]{Inner: c}
		ext += veilExt
	}
	return c, ext, nil
}
