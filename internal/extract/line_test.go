package extract

import (
	"testing"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

func TestFromLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		strategy Strategy
		want     lotto.Game
		ok       bool
	}{
		{"plain", "3 15 22 8 41 5", DedupeThenFirstSix, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"punctuation", "game 1) 3,15-22/8.41 #5", DedupeThenFirstSix, lotto.MustGame(1, 3, 15, 22, 8, 41), true},
		{"extra numbers ignored", "1 2 3 4 5 6 7 8", DedupeThenFirstSix, lotto.MustGame(1, 2, 3, 4, 5, 6), true},
		{"out of range skipped", "0 46 100 3 15 22 8 41 5", DedupeThenFirstSix, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"leading zeros", "03 05 08 15 22 41", DedupeThenFirstSix, lotto.MustGame(3, 5, 8, 15, 22, 41), true},
		{"dedupe drops repeat", "3 15 22 8 8 41 5", DedupeThenFirstSix, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"keep rejects repeat", "3 15 22 8 8 41 5", KeepDuplicatesFirstSix, lotto.Game{}, false},
		{"keep repeat after six", "3 15 22 8 41 5 5", KeepDuplicatesFirstSix, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"too few", "3 15 22 8 41", DedupeThenFirstSix, lotto.Game{}, false},
		{"too few after dedupe", "3 3 15 22 8 41", DedupeThenFirstSix, lotto.Game{}, false},
		{"no digits", "hello world", KeepDuplicatesFirstSix, lotto.Game{}, false},
		{"huge run", "99999999999999999999999 1 2 3 4 5 6", DedupeThenFirstSix, lotto.MustGame(1, 2, 3, 4, 5, 6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromLine(tt.line, tt.strategy)
			if ok != tt.ok {
				t.Fatalf("FromLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("FromLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestFromLine_PreservesOrder(t *testing.T) {
	g, ok := FromLine("41 5 3", DedupeThenFirstSix)
	if ok {
		t.Fatalf("expected rejection, got %v", g)
	}

	g, ok = FromLine("41 5 3 22 15 8", DedupeThenFirstSix)
	if !ok {
		t.Fatal("expected a game")
	}
	want := [6]int{41, 5, 3, 22, 15, 8}
	if [6]int(g) != want {
		t.Errorf("order = %v, want %v", [6]int(g), want)
	}
}

func TestParseLine_Rule(t *testing.T) {
	tests := []struct {
		line     string
		strategy Strategy
		rule     string
	}{
		{"1 2 3", DedupeThenFirstSix, "count"},
		{"1 2 3 3 4 5", KeepDuplicatesFirstSix, "unique"},
	}

	for _, tt := range tests {
		_, rejected := parseLine(tt.line, tt.strategy)
		if rejected == nil {
			t.Fatalf("parseLine(%q) accepted", tt.line)
		}
		if rejected.Rule != tt.rule {
			t.Errorf("parseLine(%q) rule = %q, want %q", tt.line, rejected.Rule, tt.rule)
		}
		if rejected.Value != tt.line {
			t.Errorf("parseLine(%q) value = %q", tt.line, rejected.Value)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{"", DedupeThenFirstSix, false},
		{"dedupe", DedupeThenFirstSix, false},
		{"KEEP", KeepDuplicatesFirstSix, false},
		{"keep_duplicates_first_six", KeepDuplicatesFirstSix, false},
		{"sometimes", DedupeThenFirstSix, true},
	}

	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrategy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromRow(t *testing.T) {
	tests := []struct {
		name  string
		cells []string
		want  lotto.Game
		ok    bool
	}{
		{"six cells", []string{"3", "15", "22", "8", "41", "5"}, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"float cells", []string{"3.0", "15", "22", "8", "41", "5"}, lotto.MustGame(3, 15, 22, 8, 41, 5), true},
		{"blank cells skipped", []string{"", "7", "11", " ", "19", "23", "30", "44"}, lotto.MustGame(7, 11, 19, 23, 30, 44), true},
		{"memo after six", []string{"1", "2", "3", "4", "5", "6", "memo"}, lotto.MustGame(1, 2, 3, 4, 5, 6), true},
		{"too few", []string{"1", "2", "3", "4", "5"}, lotto.Game{}, false},
		{"text cell", []string{"round", "2", "3", "4", "5", "6"}, lotto.Game{}, false},
		{"fraction", []string{"7.5", "2", "3", "4", "5", "6"}, lotto.Game{}, false},
		{"out of range", []string{"46", "2", "3", "4", "5", "6"}, lotto.Game{}, false},
		{"repeat", []string{"1", "1", "3", "4", "5", "6"}, lotto.Game{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromRow(tt.cells)
			if ok != tt.ok {
				t.Fatalf("FromRow(%v) ok = %v, want %v", tt.cells, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("FromRow(%v) = %v, want %v", tt.cells, got, tt.want)
			}
		})
	}
}
