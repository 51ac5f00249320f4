// =============================================================================
// Lotto QR Generator - Game Batcher
// =============================================================================
//
// A single purchase code carries at most five games. This module splits the
// ordered list of extracted games into consecutive blocks:
//
//   games:  g1 g2 g3 g4 g5 g6 g7
//   blocks: [g1 g2 g3 g4 g5] [g6 g7]
//
// Every block except the last is full. Concatenating the blocks gives back
// the original list. Blocks are produced lazily and the sequence can be
// ranged over more than once.
//
// =============================================================================

package batch

import (
	"iter"
	"slices"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
	"github.com/ginjaninja78/lotto-qr-generator/internal/validation"
)

// DefaultSize is the number of games the vendor accepts per code.
const DefaultSize = lotto.MaxBlockSize

// Batcher splits games into blocks of at most Size games.
type Batcher struct {
	size int
}

// New returns a Batcher producing blocks of size games. Sizes outside
// 1..5 are rejected, because no code can carry them.
func New(size int) (*Batcher, error) {
	if err := validation.BlockSize(size); err != nil {
		return nil, err
	}
	return &Batcher{size: size}, nil
}

// Default returns a Batcher using DefaultSize.
func Default() *Batcher {
	return &Batcher{size: DefaultSize}
}

// Size returns the maximum number of games per block.
func (b *Batcher) Size() int {
	return b.size
}

// Blocks yields consecutive blocks of games in order. Each block is a copy,
// so callers may keep or modify it.
func (b *Batcher) Blocks(games []lotto.Game) iter.Seq[lotto.Block] {
	return func(yield func(lotto.Block) bool) {
		for chunk := range slices.Chunk(games, b.size) {
			if !yield(lotto.Block(slices.Clone(chunk))) {
				return
			}
		}
	}
}

// Split returns all blocks at once.
func (b *Batcher) Split(games []lotto.Game) []lotto.Block {
	blocks := make([]lotto.Block, 0, b.Count(len(games)))
	for block := range b.Blocks(games) {
		blocks = append(blocks, block)
	}
	return blocks
}

// Count returns the number of blocks n games produce.
func (b *Batcher) Count(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + b.size - 1) / b.size
}
