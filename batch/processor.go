package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/unkn0wn-root/veilhex"
	"github.com/unkn0wn-root/veilhex/codec"
	pr "github.com/unkn0wn-root/veilhex/provider"
)

const (
	defaultOutputDir = "output"
	defaultMemoNS    = "default"
	defaultMemoTTL   = time.Hour
)

// Options configure a Processor. Only InputFile is required.
type Options struct {
	InputFile string
	OutputDir string       // "" => "output"
	Format    codec.Format // "" => json
	Veil      bool         // veil artifact bytes with the codec itself

	Logger veilhex.Logger // nil => NopLogger
	Hooks  veilhex.Hooks  // nil => NopHooks

	Memo          pr.Provider   // nil disables the encode memo
	MemoNamespace string        // "" => "default"
	MemoTTL       time.Duration // 0 => 1h

	Now      func() time.Time // nil => time.Now
	NewRunID func() string    // nil => uuid.NewString
}

type Processor struct {
	input     string
	outputDir string
	format    codec.Format
	veil      bool
	log       veilhex.Logger
	hooks     veilhex.Hooks
	memo      *memo
	now       func() time.Time
	newRunID  func() string
}

// Report is what Run produced.
type Report struct {
	Summary      Summary
	Results      map[string]Result
	DetailedPath string
	SummaryPath  string
	MemoHits     int // this run only
	MemoMisses   int
}

func New(opts Options) (*Processor, error) {
	if opts.InputFile == "" {
		return nil, errors.New("batch: input file is required")
	}
	// fail on an unknown format before any work is done
	if _, _, err := codec.ForFormat[Summary](opts.Format, opts.Veil); err != nil {
		return nil, err
	}

	p := &Processor{
		input:     opts.InputFile,
		outputDir: coalesce(opts.OutputDir, defaultOutputDir),
		format:    coalesce(opts.Format, codec.FormatJSON),
		veil:      opts.Veil,
		log:       coalesce[veilhex.Logger](opts.Logger, veilhex.NopLogger{}),
		hooks:     coalesce[veilhex.Hooks](opts.Hooks, veilhex.NopHooks{}),
		now:       opts.Now,
		newRunID:  opts.NewRunID,
	}
	if p.now == nil {
		p.now = time.Now
	}
	if p.newRunID == nil {
		p.newRunID = uuid.NewString
	}
	if opts.Memo != nil {
		p.memo = &memo{
			p:      opts.Memo,
			prefix: "memo:" + coalesce(opts.MemoNamespace, defaultMemoNS),
			ttl:    coalesce(opts.MemoTTL, defaultMemoTTL),
			log:    p.log,
			hooks:  p.hooks,
		}
	}
	return p, nil
}

// Run loads the dataset, processes every entry in key order and writes the
// artifacts. Per-entry failures are recorded in the results; only dataset,
// output and cancellation errors are returned.
func (p *Processor) Run(ctx context.Context) (*Report, error) {
	runID := p.newRunID()
	ds, err := LoadDataset(p.input)
	if err != nil {
		p.log.Error("error loading input file", veilhex.Fields{"input": p.input, "err": err})
		return nil, err
	}
	p.log.Info("dataset loaded", veilhex.Fields{"run_id": runID, "entries": len(ds), "input": p.input})

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var hits0, misses0 int
	if p.memo != nil {
		hits0, misses0 = p.memo.hits, p.memo.misses
	}

	keys := ds.Keys()
	results := make(map[string]Result, len(ds))
	sum := newSummary(runID, p.input, len(ds), p.now())

	for i, k := range keys {
		if err := ctx.Err(); err != nil {
			p.log.Warn("batch cancelled", veilhex.Fields{"run_id": runID, "processed": i})
			return nil, err
		}
		p.log.Debug("processing entry", veilhex.Fields{"index": i + 1, "total": len(keys), "key": k})
		r := p.ProcessEntry(ctx, k, ds[k])
		results[k] = r
		sum.add(r)
	}
	sum.finish()

	detailed, summaryPath, err := p.save(results, sum)
	if err != nil {
		p.log.Error("error saving results", veilhex.Fields{"run_id": runID, "err": err})
		return nil, err
	}
	p.hooks.BatchDone(sum.TotalEntries, sum.FailedConversions)
	p.log.Info("results saved", veilhex.Fields{
		"run_id":       runID,
		"output_dir":   p.outputDir,
		"success_rate": sum.SuccessRate,
	})

	rep := &Report{
		Summary:      *sum,
		Results:      results,
		DetailedPath: detailed,
		SummaryPath:  summaryPath,
	}
	if p.memo != nil {
		rep.MemoHits, rep.MemoMisses = p.memo.hits-hits0, p.memo.misses-misses0
	}
	return rep, nil
}

// ProcessEntry runs every stage for one entry. It never fails: stage errors
// are collected on the Result.
func (p *Processor) ProcessEntry(ctx context.Context, key string, e Entry) Result {
	r := newResult(e)
	fail := func(stage, label string, err error) {
		r.Validations[validKey(stage)] = false
		r.Errors = append(r.Errors, fmt.Sprintf("%s conversion failed: %v", label, err))
		p.hooks.EntryFailed(key, stage, err)
		p.log.Debug("stage failed", veilhex.Fields{"key": key, "stage": stage, "err": err})
	}

	if text, err := hexToASCII(e.Hex); err != nil {
		fail(StageHexToASCII, "Hex to ASCII", err)
	} else {
		r.Validations[validKey(StageHexToASCII)] = true
		r.Conversions[StageHexToASCII] = text
	}

	// unknown_to_hex and round_trip only run once hex_to_unknown succeeded
	if payload, err := veilhex.ParseHex(e.Hex); err != nil {
		fail(StageHexToUnknown, "Hex to unknown", err)
	} else {
		encoded := p.memo.encode(ctx, payload)
		r.Validations[validKey(StageHexToUnknown)] = true
		r.Conversions[StageHexToUnknown] = encoded

		if decoded, err := veilhex.DecodeHex(e.Unknown); err != nil {
			fail(StageUnknownToHex, "Unknown to hex", err)
		} else {
			r.Validations[validKey(StageUnknownToHex)] = true
			r.Conversions[StageUnknownToHex] = decoded
		}
		r.Validations[validKey(StageRoundTrip)] = veilhex.Validate(payload, encoded)
	}

	r.Validations[validKey(StageConversionPair)] = veilhex.ValidateHex(e.Hex, e.Unknown)
	return r
}
