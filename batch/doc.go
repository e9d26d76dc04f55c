// Package batch runs the veilhex codec over a labeled JSON dataset and writes
// a detailed results artifact plus a summary artifact.
//
// Dataset shape:
//
//	{
//	  "<label>": {"hex": "<payload hex>", "unknown": "<veiled hex>", "ascii_text": {...}},
//	  ...
//	}
//
// Each entry goes through the stages hex_to_ascii, hex_to_unknown,
// unknown_to_hex, conversion_pair and round_trip. A failing stage is recorded
// on the entry's Result and never aborts the run.
package batch
