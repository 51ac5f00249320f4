package payload

import (
	"regexp"
	"strings"
	"testing"

	"github.com/ginjaninja78/lotto-qr-generator/internal/lotto"
)

func fixedDigits(n int) string {
	return strings.Repeat("7", n)
}

func TestURLEncoder_Exact(t *testing.T) {
	enc := &URLEncoder{Base: DefaultURLBase, digits: fixedDigits}

	block := lotto.Block{
		lotto.MustGame(41, 3, 22, 8, 15, 5),
		lotto.MustGame(1, 2, 3, 4, 5, 6),
	}

	got := enc.Encode(block, 1211)
	want := "http://qr.dhlottery.co.kr/?v=1211" +
		"m030508152241" +
		"m010203040506" +
		strings.Repeat("7", 18)
	if got != want {
		t.Errorf("Encode() =\n%s\nwant\n%s", got, want)
	}
}

func TestURLEncoder_PadsRound(t *testing.T) {
	enc := &URLEncoder{Base: DefaultURLBase, digits: fixedDigits}
	got := enc.Encode(lotto.Block{lotto.MustGame(1, 2, 3, 4, 5, 6)}, 7)

	if !strings.HasPrefix(got, DefaultURLBase+"0007m") {
		t.Errorf("Encode() = %q, want round padded to 0007", got)
	}
}

func TestURLEncoder_RandomSuffix(t *testing.T) {
	enc, err := New(GrammarURL, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	block := lotto.Block{lotto.MustGame(3, 5, 8, 15, 22, 41)}
	prefix := DefaultURLBase + "1211m030508152241"
	suffix := regexp.MustCompile(`^[0-9]{18}$`)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		got := enc.Encode(block, 1211)
		if !strings.HasPrefix(got, prefix) {
			t.Fatalf("Encode() = %q, want prefix %q", got, prefix)
		}
		tail := strings.TrimPrefix(got, prefix)
		if !suffix.MatchString(tail) {
			t.Fatalf("suffix %q is not 18 digits", tail)
		}
		seen[tail] = true
	}

	// 20 draws of 18 random digits colliding down to one value means the
	// generator is not random at all.
	if len(seen) < 2 {
		t.Error("random suffix never changed across 20 encodes")
	}
}

func TestURLEncoder_CustomBase(t *testing.T) {
	enc, err := New(GrammarURL, Options{URLBase: "https://example.test/?v="})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	got := enc.Encode(lotto.Block{lotto.MustGame(1, 2, 3, 4, 5, 6)}, 1000)
	if !strings.HasPrefix(got, "https://example.test/?v=1000m010203040506") {
		t.Errorf("Encode() = %q", got)
	}
}

func TestSlipEncoder_Exact(t *testing.T) {
	enc, err := New(GrammarSlip, Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		block lotto.Block
		round lotto.DrawRound
		want  string
	}{
		{
			name:  "one game",
			block: lotto.Block{lotto.MustGame(41, 3, 22, 8, 15, 5)},
			round: 1211,
			want:  "MSG_ESLIP{1211}{(1,M:03 05 08 15 22 41)}",
		},
		{
			name: "two games, unpadded round",
			block: lotto.Block{
				lotto.MustGame(1, 2, 3, 4, 5, 6),
				lotto.MustGame(45, 44, 43, 42, 41, 40),
			},
			round: 7,
			want:  "MSG_ESLIP{7}{(2,M:01 02 03 04 05 06,M:40 41 42 43 44 45)}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := enc.Encode(tt.block, tt.round)
			if got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
			if again := enc.Encode(tt.block, tt.round); again != got {
				t.Errorf("second Encode() = %q, want identical output", again)
			}
		})
	}
}

func TestEncode_FullBlock(t *testing.T) {
	block := lotto.Block{
		lotto.MustGame(1, 2, 3, 4, 5, 6),
		lotto.MustGame(7, 8, 9, 10, 11, 12),
		lotto.MustGame(13, 14, 15, 16, 17, 18),
		lotto.MustGame(19, 20, 21, 22, 23, 24),
		lotto.MustGame(25, 26, 27, 28, 29, 30),
	}

	url := (&URLEncoder{Base: DefaultURLBase, digits: fixedDigits}).Encode(block, 1211)
	if got := strings.Count(url, "m"); got != 5 {
		t.Errorf("URL payload has %d game markers, want 5", got)
	}

	slip := (&SlipEncoder{}).Encode(block, 1211)
	if !strings.HasPrefix(slip, "MSG_ESLIP{1211}{(5,") || strings.Count(slip, "M:") != 5 {
		t.Errorf("slip payload = %q", slip)
	}
}

func TestEncode_PanicsOnBadInput(t *testing.T) {
	encoders := []Encoder{&URLEncoder{Base: DefaultURLBase, digits: fixedDigits}, &SlipEncoder{}}
	good := lotto.MustGame(1, 2, 3, 4, 5, 6)

	tests := []struct {
		name  string
		block lotto.Block
		round lotto.DrawRound
	}{
		{"empty block", lotto.Block{}, 1},
		{"six games", lotto.Block{good, good, good, good, good, good}, 1},
		{"zero game", lotto.Block{lotto.Game{}}, 1},
		{"repeated number", lotto.Block{lotto.Game{1, 1, 2, 3, 4, 5}}, 1},
		{"zero round", lotto.Block{good}, 0},
	}

	for _, enc := range encoders {
		for _, tt := range tests {
			t.Run(string(enc.Grammar())+"/"+tt.name, func(t *testing.T) {
				defer func() {
					if recover() == nil {
						t.Error("Encode() did not panic")
					}
				}()
				enc.Encode(tt.block, tt.round)
			})
		}
	}
}

func TestParseGrammar(t *testing.T) {
	for in, want := range map[string]Grammar{"": GrammarURL, "URL": GrammarURL, "slip": GrammarSlip, "msg_eslip": GrammarSlip} {
		got, err := ParseGrammar(in)
		if err != nil || got != want {
			t.Errorf("ParseGrammar(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseGrammar("barcode"); err == nil {
		t.Error("ParseGrammar(barcode) accepted an unknown grammar")
	}
	if _, err := New("barcode", Options{}); err == nil {
		t.Error("New(barcode) accepted an unknown grammar")
	}
}
