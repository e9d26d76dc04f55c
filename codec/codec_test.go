package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/unkn0wn-root/veilhex"
)

type summary struct {
	RunID   string         `json:"run_id" msgpack:"run_id"`
	Total   int            `json:"total" msgpack:"total"`
	Rate    string         `json:"rate" msgpack:"rate"`
	ByStage map[string]int `json:"by_stage" msgpack:"by_stage"`
}

func sample() summary {
	return summary{
		RunID:   "r-1",
		Total:   3,
		Rate:    "66.67%",
		ByStage: map[string]int{"hex_to_unknown": 3, "unknown_to_hex": 2},
	}
}

func equal(a, b summary) bool {
	if a.RunID != b.RunID || a.Total != b.Total || a.Rate != b.Rate || len(a.ByStage) != len(b.ByStage) {
		return false
	}
	for k, v := range a.ByStage {
		if b.ByStage[k] != v {
			return false
		}
	}
	return true
}

func TestForFormatRoundTrip(t *testing.T) {
	for _, name := range Formats() {
		for _, veil := range []bool{false, true} {
			c, ext, err := ForFormat[summary](Format(name), veil)
			if err != nil {
				t.Fatalf("ForFormat(%s, %v): %v", name, veil, err)
			}
			if !strings.HasPrefix(ext, ".") || strings.HasSuffix(ext, ".veil") != veil {
				t.Fatalf("ForFormat(%s, %v): bad ext %q", name, veil, ext)
			}
			b, err := c.Encode(sample())
			if err != nil {
				t.Fatalf("%s encode: %v", name, err)
			}
			if veil && !bytes.HasPrefix(b, []byte(veilhex.Header)) {
				t.Fatalf("%s veiled output lacks header", name)
			}
			got, err := c.Decode(b)
			if err != nil {
				t.Fatalf("%s decode: %v", name, err)
			}
			if !equal(got, sample()) {
				t.Fatalf("%s: got %+v want %+v", name, got, sample())
			}
		}
	}
}

func TestForFormatDefaultsAndUnknown(t *testing.T) {
	_, ext, err := ForFormat[summary]("", false)
	if err != nil || ext != ".json" {
		t.Fatalf("empty format: ext=%q err=%v", ext, err)
	}
	if _, _, err := ForFormat[summary]("yaml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestJSONIndent(t *testing.T) {
	b, err := JSON[map[string]int]{Indent: "  "}.Encode(map[string]int{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "{\n  \"a\": 1\n}" {
		t.Fatalf("unexpected indent output %q", b)
	}
	compact, _ := JSON[map[string]int]{}.Encode(map[string]int{"a": 1})
	if string(compact) != `{"a":1}` {
		t.Fatalf("unexpected compact output %q", compact)
	}
}

func TestJSONStrictDecode(t *testing.T) {
	c := JSON[summary]{Strict: true}
	if _, err := c.Decode([]byte(`{"run_id":"r","extra":1}`)); err == nil {
		t.Fatalf("expected unknown field error")
	}
	if _, err := c.Decode([]byte(`{"run_id":"r"} {}`)); err == nil {
		t.Fatalf("expected trailing data error")
	}
	got, err := c.Decode([]byte(` {"run_id":"r"} `))
	if err != nil || got.RunID != "r" {
		t.Fatalf("got %+v err=%v", got, err)
	}
	if _, err := (JSON[summary]{}).Decode([]byte(`{"run_id":"r","extra":1}`)); err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
}

func TestMapKeyOrderIsStable(t *testing.T) {
	cb, err := NewCBOR[map[string]int]()
	if err != nil {
		t.Fatal(err)
	}
	for name, c := range map[string]Codec[map[string]int]{"cbor": cb, "msgpack": Msgpack[map[string]int]{}, "proto": Struct[map[string]int]{}} {
		first, err := c.Encode(map[string]int{"z": 1, "a": 2, "m": 3})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for i := 0; i < 10; i++ {
			again, _ := c.Encode(map[string]int{"m": 3, "z": 1, "a": 2})
			if !bytes.Equal(first, again) {
				t.Fatalf("%s output changed between runs", name)
			}
		}
	}
}

func TestCBORRejectsDuplicateKeys(t *testing.T) {
	c, err := NewCBOR[map[string]int]()
	if err != nil {
		t.Fatal(err)
	}
	// {"a": 1, "a": 2}
	dup := []byte{0xa2, 0x61, 'a', 0x01, 0x61, 'a', 0x02}
	if _, err := c.Decode(dup); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestVeiledRejectsForeignBytes(t *testing.T) {
	c := Veiled[string]{Inner: JSON[string]{}}
	if _, err := c.Decode([]byte(`"plain text"`)); !errors.Is(err, veilhex.ErrHeaderMismatch) {
		t.Fatalf("expected ErrHeaderMismatch, got %v", err)
	}
	if _, err := c.Decode([]byte(veilhex.Header + "abc")); !errors.Is(err, veilhex.ErrMalformedHex) {
		t.Fatalf("expected ErrMalformedHex, got %v", err)
	}
	b, _ := c.Encode("hi")
	if !veilhex.Validate([]byte(`"hi"`), string(b)) {
		t.Fatalf("veiled output does not validate: %s", b)
	}
}

func TestStructRejectsNonObject(t *testing.T) {
	if _, err := (Struct[[]int]{}).Encode([]int{1, 2}); err == nil {
		t.Fatalf("expected error for JSON array")
	}
}

func TestLimitCodec(t *testing.T) {
	c := LimitCodec[[]int]{Inner: JSON[[]int]{}, MaxDecode: 5}
	if _, err := c.Decode([]byte("[1,2,3]")); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	got, err := c.Decode([]byte("[1,2]"))
	if err != nil || len(got) != 2 {
		t.Fatalf("got %v err=%v", got, err)
	}
	off := LimitCodec[[]int]{Inner: JSON[[]int]{}}
	if _, err := off.Decode([]byte("[" + strings.Repeat("0,", 1<<12) + "0]")); err != nil {
		t.Fatalf("MaxDecode=0 must disable limit: %v", err)
	}
}

func TestMsgpackSortsNestedMaps(t *testing.T) {
	type row struct {
		Stats map[string]int  `msgpack:"stats"`
		Flags map[string]bool `msgpack:"flags"`
	}
	v := map[string]row{}
	for _, k := range []string{"q", "b", "x", "a", "m", "c"} {
		v[k] = row{Stats: map[string]int{"z": 1, k: 2, "a": 3}, Flags: map[string]bool{k: true, "y": false}}
	}
	c := Msgpack[map[string]row]{}
	first, err := c.Encode(v)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 30; i++ {
		again, _ := c.Encode(v)
		if !bytes.Equal(first, again) {
			t.Fatalf("nested msgpack output changed on run %d", i)
		}
	}
	got, err := c.Decode(first)
	if err != nil || got["q"].Stats["q"] != 2 || !got["m"].Flags["m"] {
		t.Fatalf("round trip: %+v err=%v", got, err)
	}
}
