// =============================================================================
// Lotto QR Generator - Payload Encoding
// =============================================================================
//
// This module serializes one block of games plus a draw round into the text
// a purchase terminal scans. Two grammars are supported:
//
// URL GRAMMAR:
//   http://qr.dhlottery.co.kr/?v=RRRR m<12 digits> [m<12 digits> ...] <18 digits>
//
//   - RRRR is the draw round zero-padded to four digits
//   - Each game is "m" followed by its six numbers, ascending, two digits each
//   - The trailing 18 digits are random and appended once per payload
//
//   Example (round 1211, one game):
//     http://qr.dhlottery.co.kr/?v=1211m030508152241 + 18 digits
//
// SLIP GRAMMAR:
//   MSG_ESLIP{R}{(count,M:gg gg gg gg gg gg[,M:...])}
//
//   - R is the draw round, unpadded
//   - count is the number of games in the block
//   - Each game is "M:" followed by its six numbers, ascending, two digits
//     each, separated by single spaces
//
// KNOWN GAP:
//   The 18-digit URL suffix is generated, not derived. The terminal's serial
//   or check-digit algorithm is unknown, so payloads are scannable in shape
//   only and are not guaranteed to be accepted by a vendor terminal.
//
// =============================================================================

package payload

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

// =============================================================================
// GRAMMARS
// =============================================================================

// Grammar selects the payload format.
type Grammar string

const (
	// GrammarURL is the mobile-check URL format.
	GrammarURL Grammar = "url"

	// GrammarSlip is the electronic slip message format.
	GrammarSlip Grammar = "slip"
)

// ParseGrammar maps a configuration value to a Grammar.
func ParseGrammar(s string) (Grammar, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "url":
		return GrammarURL, nil
	case "slip", "eslip", "msg_eslip":
		return GrammarSlip, nil
	default:
		return "", fmt.Errorf("unknown payload grammar %q", s)
	}
}

// DefaultURLBase is the vendor host and query prefix for GrammarURL.
const DefaultURLBase = "http://qr.dhlottery.co.kr/?v="

// SuffixLength is the number of random digits closing a URL payload.
const SuffixLength = 18

// =============================================================================
// ENCODER CONTRACT
// =============================================================================

// Encoder turns a block and a round into payload text.
//
// Encode never fails for a valid block. A block that is empty, holds more
// than five games, or holds a malformed game is a caller bug and panics, as
// is a round that is not positive.
type Encoder interface {
	Grammar() Grammar
	Encode(block lotto.Block, round lotto.DrawRound) string
}

// Options configures New.
type Options struct {
	// URLBase replaces DefaultURLBase for GrammarURL. Empty means default.
	URLBase string
}

// New returns the encoder for grammar.
func New(grammar Grammar, opts Options) (Encoder, error) {
	switch grammar {
	case GrammarURL, "":
		base := opts.URLBase
		if base == "" {
			base = DefaultURLBase
		}
		return &URLEncoder{Base: base}, nil
	case GrammarSlip:
		return &SlipEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown payload grammar %q", grammar)
	}
}

// ValidateBlock panics unless block can be encoded for round.
func ValidateBlock(block lotto.Block, round lotto.DrawRound) {
	if round <= 0 {
		panic(fmt.Sprintf("payload: draw round %d is not positive", int(round)))
	}
	if !block.Valid() {
		panic(fmt.Sprintf("payload: block of %d games cannot be encoded", len(block)))
	}
	for i, g := range block {
		if _, err := lotto.NewGame(g[:]); err != nil {
			panic(fmt.Sprintf("payload: game %d in block is malformed: %v", i+1, err))
		}
	}
}

// =============================================================================
// URL ENCODER
// =============================================================================

// URLEncoder produces GrammarURL payloads.
type URLEncoder struct {
	// Base is prepended to the padded round.
	Base string

	// digits returns n random ASCII digits. Nil means randomDigits.
	digits func(n int) string
}

// Grammar implements Encoder.
func (e *URLEncoder) Grammar() Grammar {
	return GrammarURL
}

// Encode implements Encoder.
func (e *URLEncoder) Encode(block lotto.Block, round lotto.DrawRound) string {
	ValidateBlock(block, round)

	var b strings.Builder
	b.WriteString(e.Base)
	b.WriteString(round.Padded())
	for _, g := range block {
		b.WriteByte('m')
		for _, n := range g.Sorted() {
			writePadded(&b, n)
		}
	}

	digits := e.digits
	if digits == nil {
		digits = randomDigits
	}
	b.WriteString(digits(SuffixLength))
	return b.String()
}

// randomDigits draws from the runtime's per-goroutine generator, which is
// never seeded by this package.
func randomDigits(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte('0' + rand.IntN(10))
	}
	return string(buf)
}

// =============================================================================
// SLIP ENCODER
// =============================================================================

// SlipEncoder produces GrammarSlip payloads. It is fully deterministic.
type SlipEncoder struct{}

// Grammar implements Encoder.
func (e *SlipEncoder) Grammar() Grammar {
	return GrammarSlip
}

// Encode implements Encoder.
func (e *SlipEncoder) Encode(block lotto.Block, round lotto.DrawRound) string {
	ValidateBlock(block, round)

	var b strings.Builder
	b.WriteString("MSG_ESLIP{")
	b.WriteString(round.String())
	b.WriteString("}{(")
	b.WriteString(strconv.Itoa(len(block)))
	for _, g := range block {
		b.WriteString(",M:")
		for i, n := range g.Sorted() {
			if i > 0 {
				b.WriteByte(' ')
			}
			writePadded(&b, n)
		}
	}
	b.WriteString(")}")
	return b.String()
}

func writePadded(b *strings.Builder, n int) {
	if n < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.Itoa(n))
}
