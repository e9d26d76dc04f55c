package batch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrInvalidDataset = errors.New("batch: invalid dataset")

var requiredFields = []string{"unknown", "hex", "ascii_text"}

// Entry is one labeled record. ASCIIText is kept as raw JSON so it is copied
// into the results untouched.
type Entry struct {
	Hex       string          `json:"hex" msgpack:"hex"`
	Unknown   string          `json:"unknown" msgpack:"unknown"`
	ASCIIText json.RawMessage `json:"ascii_text" msgpack:"ascii_text"`
}

type Dataset map[string]Entry

// Keys returns the entry labels in processing order.
func (d Dataset) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DatasetError describes the first structural problem found in a dataset.
// Key is empty when the problem is with the document as a whole.
type DatasetError struct {
	Key    string
	Reason string
	Err    error
}

func (e *DatasetError) Error() string {
	msg := e.Reason
	if e.Key != "" {
		msg = fmt.Sprintf("dataset %q: %s", e.Key, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DatasetError) Unwrap() []error {
	errs := []error{ErrInvalidDataset}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// LoadDataset reads and validates the dataset at path.
func LoadDataset(path string) (Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ParseDataset(b)
}

// ParseDataset validates the document shape: a JSON object of entries, each
// an object carrying unknown, hex and ascii_text, with ascii_text itself a
// JSON object. Entries are checked in key order so the reported error is
// stable.
func ParseDataset(b []byte) (Dataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil || raw == nil {
		return nil, &DatasetError{Reason: "input data must be a JSON object", Err: err}
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ds := make(Dataset, len(raw))
	for _, k := range keys {
		e, err := parseEntry(k, raw[k])
		if err != nil {
			return nil, err
		}
		ds[k] = e
	}
	return ds, nil
}

func parseEntry(key string, b json.RawMessage) (Entry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil || fields == nil {
		return Entry{}, &DatasetError{Key: key, Reason: "entry must be a JSON object"}
	}
	for _, f := range requiredFields {
		if _, ok := fields[f]; !ok {
			return Entry{}, &DatasetError{Key: key, Reason: fmt.Sprintf("missing required fields %v", requiredFields)}
		}
	}

	var e Entry
	if err := json.Unmarshal(fields["hex"], &e.Hex); err != nil {
		return Entry{}, &DatasetError{Key: key, Reason: "hex must be a string", Err: err}
	}
	if err := json.Unmarshal(fields["unknown"], &e.Unknown); err != nil {
		return Entry{}, &DatasetError{Key: key, Reason: "unknown must be a string", Err: err}
	}
	ascii := bytes.TrimSpace(fields["ascii_text"])
	if len(ascii) == 0 || ascii[0] != '{' {
		return Entry{}, &DatasetError{Key: key, Reason: "ascii_text must be a JSON object"}
	}
	e.ASCIIText = json.RawMessage(ascii)
	return e, nil
}
