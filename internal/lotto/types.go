// =============================================================================
// Lotto QR Generator - Shared Types
// =============================================================================
//
// This package contains the value types passed between the extraction,
// batching, and encoding stages:
//   - Game      : one six-number selection
//   - Block     : up to five games carried by a single code
//   - DrawRound : the draw cycle a payload is bought for
//
// All three are plain values. A Game can only be built through NewGame, so a
// Game that exists is always valid.
//
// =============================================================================

package lotto

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// Limits re-exported for callers that do not otherwise need validation.
const (
	MinNumber      = validation.MinNumber
	MaxNumber      = validation.MaxNumber
	NumbersPerGame = validation.NumbersPerGame
	MaxBlockSize   = validation.MaxGamesPerBlock
)

// =============================================================================
// GAME
// =============================================================================

// Game is one selection of six distinct numbers in [1,45], kept in the
// order they were extracted.
type Game [NumbersPerGame]int

// NewGame validates nums and returns them as a Game.
func NewGame(nums []int) (Game, error) {
	var g Game
	if err := validation.Numbers(nums); err != nil {
		return g, err
	}
	copy(g[:], nums)
	return g, nil
}

// MustGame is NewGame for literals in tests and fixtures.
func MustGame(nums ...int) Game {
	g, err := NewGame(nums)
	if err != nil {
		panic(err)
	}
	return g
}

// Sorted returns the numbers in ascending order, the canonical order for
// display and encoding.
func (g Game) Sorted() [NumbersPerGame]int {
	s := g
	slices.Sort(s[:])
	return s
}

// String renders the game as "[01 02 03 04 05 06]" in ascending order.
func (g Game) String() string {
	s := g.Sorted()
	parts := make([]string, len(s))
	for i, n := range s {
		parts[i] = fmt.Sprintf("%02d", n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// =============================================================================
// BLOCK
// =============================================================================

// Block is an ordered group of one to five games encoded into one payload.
type Block []Game

// Valid reports whether the block satisfies the encoder contract.
func (b Block) Valid() bool {
	return validation.BlockSize(len(b)) == nil
}

// String renders the block as "[..] / [..]".
func (b Block) String() string {
	parts := make([]string, len(b))
	for i, g := range b {
		parts[i] = g.String()
	}
	return strings.Join(parts, " / ")
}

// =============================================================================
// DRAW ROUND
// =============================================================================

// DrawRound identifies a lottery draw cycle. Valid rounds are positive.
type DrawRound int

// ParseDrawRound validates user-supplied round input.
func ParseDrawRound(input string) (DrawRound, error) {
	n, err := validation.DrawRound(input)
	if err != nil {
		return 0, err
	}
	return DrawRound(n), nil
}

// Padded returns the round zero-padded to four digits.
func (r DrawRound) Padded() string {
	return fmt.Sprintf("%04d", int(r))
}

func (r DrawRound) String() string {
	return fmt.Sprintf("%d", int(r))
}
