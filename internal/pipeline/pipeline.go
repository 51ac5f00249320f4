// =============================================================================
// Lotto QR Generator - Pipeline
// =============================================================================
//
// This module runs one document through the whole generator:
//
//   document -> extract -> games -> batch -> blocks -> encode -> payloads
//
// PROCESSING STEPS:
//   1. Sniff the document kind unless it was declared
//   2. Extract games with the configured duplicate strategy
//   3. Stop with an empty Result when no game was found
//   4. Resolve the draw round (validate the input, or compute it)
//   5. Split the games into blocks of at most five
//   6. Encode every block with the configured grammar
//
// ERROR HANDLING:
//   - Unsupported format: error wrapping extract.ErrUnsupportedFormat
//   - Unreadable document: *extract.DocumentError carrying the cause
//   - Invalid round input: *validation.ValidationError, before any encoding
//   - No games: not an error; Result.Empty() reports it
//
// CONCURRENCY:
//   A Pipeline holds configuration only. Run keeps all of its data local, so
//   one Pipeline can serve concurrent runs.
//
// =============================================================================

package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ginjaninja78/lotto-qr-generator/internal/batch"
	"github.com/ginjaninja78/lotto-qr-generator/internal/extract"
	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/payload"
	"github.com/ginjaninja78/lotto-qr-generator/internal/round"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Pipeline.
type Options struct {
	// Extraction holds the duplicate strategy and CSV delimiter.
	Extraction extract.Settings

	// Grammar selects the payload format.
	Grammar payload.Grammar

	// URLBase overrides the URL grammar prefix. Empty means the default.
	URLBase string

	// BatchSize is the number of games per block. Zero means five.
	BatchSize int
}

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// EncodedBlock is one block and its payload.
type EncodedBlock struct {
	// Index is the 1-based position of the block in the document.
	Index int

	// Block holds the games in extraction order.
	Block lotto.Block

	// Payload is the encoded text.
	Payload string
}

// Stats summarizes one run.
type Stats struct {
	// Units is the number of non-blank lines or rows inspected.
	Units int

	// Games is the number of games extracted.
	Games int

	// Skipped is the number of lines or rows that yielded no game.
	Skipped int

	// Blocks is the number of payloads produced.
	Blocks int

	// Elapsed is the wall time of the run.
	Elapsed time.Duration
}

// Result is the outcome of one run.
type Result struct {
	// Source is the document name.
	Source string

	// Kind is the kind the document was parsed as.
	Kind extract.Kind

	// Round is the draw round the payloads were encoded for. It is zero when
	// the result is empty.
	Round lotto.DrawRound

	// RoundComputed reports whether Round came from the calculator.
	RoundComputed bool

	// Games holds every extracted game in order.
	Games []lotto.Game

	// Blocks holds the encoded blocks in order.
	Blocks []EncodedBlock

	// Skipped lists the lines or rows that yielded no game.
	Skipped *validation.Result

	// Stats summarizes the run.
	Stats Stats
}

// Empty reports whether no game was extracted.
func (r *Result) Empty() bool {
	return len(r.Games) == 0
}

// Payloads returns the payload texts in block order.
func (r *Result) Payloads() []string {
	out := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		out[i] = b.Payload
	}
	return out
}

// =============================================================================
// PIPELINE
// =============================================================================

// Request is one document to process.
type Request struct {
	// Document is the fully read input.
	Document extract.Document

	// Round is the raw draw round input. Empty means compute it.
	Round string
}

// Pipeline runs documents through extraction, batching, and encoding.
type Pipeline struct {
	settings extract.Settings
	batcher  *batch.Batcher
	encoder  payload.Encoder
	rounds   *round.Calculator
}

// New builds a Pipeline. A nil calculator uses the default draw schedule.
func New(opts Options, rounds *round.Calculator) (*Pipeline, error) {
	size := opts.BatchSize
	if size == 0 {
		size = batch.DefaultSize
	}
	batcher, err := batch.New(size)
	if err != nil {
		return nil, fmt.Errorf("invalid batch size: %w", err)
	}

	encoder, err := payload.New(opts.Grammar, payload.Options{URLBase: opts.URLBase})
	if err != nil {
		return nil, err
	}

	if rounds == nil {
		rounds = round.New()
	}

	return &Pipeline{
		settings: opts.Extraction,
		batcher:  batcher,
		encoder:  encoder,
		rounds:   rounds,
	}, nil
}

// Grammar returns the payload grammar in use.
func (p *Pipeline) Grammar() payload.Grammar {
	return p.encoder.Grammar()
}

// Run processes one document.
func (p *Pipeline) Run(req Request) (*Result, error) {
	start := time.Now()
	doc := req.Document
	logger := slog.Default().With("document", doc.Name)

	// =========================================================================
	// STEP 1: EXTRACT
	// =========================================================================

	x, kind, err := extract.Extract(doc, p.settings)
	if err != nil {
		logger.Debug("extraction failed", "kind", kind, "error", err)
		return nil, err
	}

	result := &Result{
		Source:  doc.Name,
		Kind:    kind,
		Games:   x.Games,
		Skipped: x.Skipped,
		Stats: Stats{
			Units:   x.Units,
			Games:   len(x.Games),
			Skipped: len(x.Skipped.Errors),
		},
	}
	logger.Debug("extracted games", "kind", kind, "strategy", p.settings.Strategy,
		"units", x.Units, "games", len(x.Games), "skipped", len(x.Skipped.Errors))

	if result.Empty() {
		result.Stats.Elapsed = time.Since(start)
		return result, nil
	}

	// =========================================================================
	// STEP 2: RESOLVE DRAW ROUND
	// =========================================================================

	if req.Round == "" {
		result.Round = p.rounds.Current()
		result.RoundComputed = true
	} else {
		r, err := lotto.ParseDrawRound(req.Round)
		if err != nil {
			return nil, err
		}
		result.Round = r
	}
	logger.Debug("resolved draw round", "round", int(result.Round), "computed", result.RoundComputed)

	// =========================================================================
	// STEP 3: BATCH AND ENCODE
	// =========================================================================

	result.Blocks = make([]EncodedBlock, 0, p.batcher.Count(len(x.Games)))
	for block := range p.batcher.Blocks(x.Games) {
		result.Blocks = append(result.Blocks, EncodedBlock{
			Index:   len(result.Blocks) + 1,
			Block:   block,
			Payload: p.encoder.Encode(block, result.Round),
		})
	}

	result.Stats.Blocks = len(result.Blocks)
	result.Stats.Elapsed = time.Since(start)
	logger.Debug("encoded blocks", "grammar", p.encoder.Grammar(), "blocks", len(result.Blocks))

	return result, nil
}
