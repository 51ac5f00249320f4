package render

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestRender_SizeFollowsOptions(t *testing.T) {
	r := NewQRRenderer()

	tests := []struct {
		name string
		opts Options
		want int
	}{
		// Version 1 symbols are 21 modules wide.
		{"v1 box 8 border 2", Options{Level: LevelM, BoxSize: 8, Border: 2, Version: 1}, (21 + 4) * 8},
		{"v1 box 1 no border", Options{Level: LevelL, BoxSize: 1, Border: 0, Version: 1}, 21},
		{"v2 box 3 border 4", Options{Level: LevelH, BoxSize: 3, Border: 4, Version: 2}, (25 + 8) * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := r.Render("HELLO", tt.opts)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error = %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.want || b.Dy() != tt.want {
				t.Errorf("image is %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.want, tt.want)
			}
		})
	}
}

func TestRender_BorderIsLight(t *testing.T) {
	img, err := NewQRRenderer().Image("HELLO", Options{Level: LevelM, BoxSize: 2, Border: 3, Version: 1})
	if err != nil {
		t.Fatalf("Image() error = %v", err)
	}

	// The quiet zone is white and the finder pattern corner is dark.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r == 0 && g == 0 && b == 0 {
		t.Error("border pixel is dark")
	}
	r, g, b, _ = img.At(3*2, 3*2).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Error("finder pattern corner is light")
	}
}

func TestRender_AutoVersionFitsPayload(t *testing.T) {
	payload := "http://qr.dhlottery.co.kr/?v=1211" + strings.Repeat("m010203040506", 5) + strings.Repeat("9", 18)
	if _, err := NewQRRenderer().Render(payload, DefaultOptions()); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
}

func TestRender_ForcedVersionOverflow(t *testing.T) {
	_, err := NewQRRenderer().Render(strings.Repeat("x", 200), Options{Level: LevelH, BoxSize: 4, Border: 2, Version: 1})
	if err == nil {
		t.Fatal("Render() succeeded for text larger than version 1 capacity")
	}
}

func TestOptions_Validate(t *testing.T) {
	bad := []Options{
		{Level: LevelM, BoxSize: 0, Border: 2},
		{Level: LevelM, BoxSize: 8, Border: -1},
		{Level: LevelM, BoxSize: 8, Border: 2, Version: 41},
		{Level: "Z", BoxSize: 8, Border: 2},
	}
	for _, o := range bad {
		if err := o.Validate(); err == nil {
			t.Errorf("Validate(%+v) accepted invalid options", o)
		}
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("DefaultOptions().Validate() = %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"l": LevelL, "M": LevelM, " q ": LevelQ, "H": LevelH, "": LevelM} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseLevel("X"); err == nil {
		t.Error("ParseLevel(X) accepted an unknown level")
	}
}
