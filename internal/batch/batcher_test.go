package batch

import (
	"testing"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

func games(n int) []lotto.Game {
	out := make([]lotto.Game, n)
	for i := range out {
		base := i % 40
		out[i] = lotto.MustGame(base+1, base+2, base+3, base+4, base+5, base+6)
	}
	return out
}

func TestBlocks_Sizes(t *testing.T) {
	b := Default()

	tests := []struct {
		n    int
		want []int
	}{
		{0, nil},
		{1, []int{1}},
		{5, []int{5}},
		{6, []int{5, 1}},
		{7, []int{5, 2}},
		{12, []int{5, 5, 2}},
		{15, []int{5, 5, 5}},
	}

	for _, tt := range tests {
		blocks := b.Split(games(tt.n))
		if len(blocks) != len(tt.want) {
			t.Errorf("n=%d: got %d blocks, want %d", tt.n, len(blocks), len(tt.want))
			continue
		}
		if b.Count(tt.n) != len(tt.want) {
			t.Errorf("Count(%d) = %d, want %d", tt.n, b.Count(tt.n), len(tt.want))
		}
		for i, block := range blocks {
			if len(block) != tt.want[i] {
				t.Errorf("n=%d block %d: len %d, want %d", tt.n, i, len(block), tt.want[i])
			}
			if !block.Valid() {
				t.Errorf("n=%d block %d is not valid", tt.n, i)
			}
		}
	}
}

func TestBlocks_ConcatenationPreservesOrder(t *testing.T) {
	in := games(13)

	var out []lotto.Game
	for block := range Default().Blocks(in) {
		out = append(out, block...)
	}

	if len(out) != len(in) {
		t.Fatalf("got %d games, want %d", len(out), len(in))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("game %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestBlocks_Restartable(t *testing.T) {
	seq := Default().Blocks(games(7))

	count := func() int {
		n := 0
		for range seq {
			n++
		}
		return n
	}

	if first, second := count(), count(); first != 2 || second != 2 {
		t.Errorf("block counts = %d, %d; want 2, 2", first, second)
	}
}

func TestBlocks_EarlyStop(t *testing.T) {
	n := 0
	for range Default().Blocks(games(20)) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d blocks, want 2", n)
	}
}

func TestBlocks_CopiesInput(t *testing.T) {
	in := games(3)
	blocks := Default().Split(in)
	blocks[0][0] = lotto.MustGame(40, 41, 42, 43, 44, 45)

	if in[0] == blocks[0][0] {
		t.Error("modifying a block changed the input")
	}
}

func TestNew(t *testing.T) {
	for _, size := range []int{0, -1, 6} {
		if _, err := New(size); err == nil {
			t.Errorf("New(%d) accepted an invalid size", size)
		}
	}

	b, err := New(2)
	if err != nil {
		t.Fatalf("New(2) error = %v", err)
	}
	if got := len(b.Split(games(5))); got != 3 {
		t.Errorf("size 2 over 5 games: %d blocks, want 3", got)
	}
}
