package batch

import (
	"fmt"
	"time"
)

// Stage names. The matching validation key is the stage name + "_valid".
const (
	StageHexToASCII     = "hex_to_ascii"
	StageHexToUnknown   = "hex_to_unknown"
	StageUnknownToHex   = "unknown_to_hex"
	StageConversionPair = "conversion_pair"
	StageRoundTrip      = "round_trip"
)

var stages = []string{
	StageHexToASCII,
	StageHexToUnknown,
	StageUnknownToHex,
	StageConversionPair,
	StageRoundTrip,
}

func validKey(stage string) string { return stage + "_valid" }

// Result records what happened to one entry.
type Result struct {
	Original    Entry             `json:"original" msgpack:"original"`
	Validations map[string]bool   `json:"validations" msgpack:"validations"`
	Conversions map[string]string `json:"conversions" msgpack:"conversions"`
	Errors      []string          `json:"errors" msgpack:"errors"`
}

func newResult(e Entry) Result {
	return Result{
		Original:    e,
		Validations: make(map[string]bool, len(stages)),
		Conversions: make(map[string]string, 3),
		Errors:      []string{},
	}
}

// OK reports whether the entry finished without conversion errors.
// A false conversion_pair check is a validation outcome, not an error.
func (r Result) OK() bool { return len(r.Errors) == 0 }

// Summary aggregates a run.
type Summary struct {
	RunID                 string         `json:"run_id" msgpack:"run_id"`
	TotalEntries          int            `json:"total_entries" msgpack:"total_entries"`
	SuccessfulConversions int            `json:"successful_conversions" msgpack:"successful_conversions"`
	FailedConversions     int            `json:"failed_conversions" msgpack:"failed_conversions"`
	ValidationStats       map[string]int `json:"validation_stats" msgpack:"validation_stats"`
	Timestamp             string         `json:"timestamp" msgpack:"timestamp"`
	InputFile             string         `json:"input_file" msgpack:"input_file"`
	SuccessRate           string         `json:"success_rate" msgpack:"success_rate"`
}

const timestampLayout = "20060102_150405"

func newSummary(runID, input string, total int, now time.Time) *Summary {
	s := &Summary{
		RunID:           runID,
		TotalEntries:    total,
		ValidationStats: make(map[string]int, len(stages)),
		Timestamp:       now.Format(timestampLayout),
		InputFile:       input,
	}
	for _, st := range stages {
		s.ValidationStats[validKey(st)] = 0
	}
	return s
}

func (s *Summary) add(r Result) {
	if r.OK() {
		s.SuccessfulConversions++
	} else {
		s.FailedConversions++
	}
	for k, ok := range r.Validations {
		if ok {
			s.ValidationStats[k]++
		}
	}
}

func (s *Summary) finish() {
	s.SuccessRate = successRate(s.SuccessfulConversions, s.TotalEntries)
}

func successRate(ok, total int) string {
	if total == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", float64(ok)/float64(total)*100)
}
