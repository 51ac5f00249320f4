package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// LOCALES
// =============================================================================

// Locale is a supported message language.
type Locale string

const (
	LocaleKorean  Locale = "ko"
	LocaleEnglish Locale = "en"
)

// ParseLocale accepts "ko", "en", and their long names.
func ParseLocale(s string) (Locale, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ko", "kr", "korean", "ko-kr", "ko_kr":
		return LocaleKorean, nil
	case "en", "english", "en-us", "en_us":
		return LocaleEnglish, nil
	default:
		return "", fmt.Errorf("unsupported locale %q, want ko or en", s)
	}
}

// =============================================================================
// LABELS
// =============================================================================

// Labels holds the user-facing messages of the CLI. Values containing
// verbs are fmt format strings.
type Labels struct {
	Title            string `yaml:"title"`
	HeaderInfo       string `yaml:"header_info"`
	ErrType          string `yaml:"err_type"`
	ErrDocument      string `yaml:"err_document"`
	ErrNoNum         string `yaml:"err_no_num"`
	ErrDigit         string `yaml:"err_digit"`
	Success          string `yaml:"success"`
	RoundComputed    string `yaml:"round_computed"`
	Batch            string `yaml:"batch"`
	Game             string `yaml:"game"`
	Skipped          string `yaml:"skipped"`
	Saved            string `yaml:"saved"`
	HistoryFileName  string `yaml:"history_file_name"`
	ColRound         string `yaml:"col_round"`
	ColBatch         string `yaml:"col_batch"`
	ColNums          string `yaml:"col_nums"`
	ColURL           string `yaml:"col_url"`
	SummaryProcessed string `yaml:"summary_processed"`
}

var builtinLabels = map[Locale]Labels{
	LocaleKorean: {
		Title:            "🎱 로또 QR 생성기",
		HeaderInfo:       "생성된 QR을 복권방 기계나 동행복권 앱으로 스캔하세요.",
		ErrType:          "지원하지 않는 파일 형식입니다.",
		ErrDocument:      "파일을 읽을 수 없습니다: %v",
		ErrNoNum:         "유효한 로또 번호(1~45, 6개)를 찾을 수 없습니다.",
		ErrDigit:         "회차 번호는 숫자만 입력해주세요.",
		Success:          "총 %d게임이 로드되었습니다.",
		RoundComputed:    "회차 번호를 입력하지 않아 현재 판매 회차(%d회)를 사용합니다.",
		Batch:            "묶음 %d (%d게임)",
		Game:             "게임 %d",
		Skipped:          "%d줄을 건너뛰었습니다.",
		Saved:            "저장됨: %s",
		HistoryFileName:  "로또_QR_생성내역_%d.csv",
		ColRound:         "회차",
		ColBatch:         "묶음번호",
		ColNums:          "번호",
		ColURL:           "QR코드_내용(URL)",
		SummaryProcessed: "처리 완료: 파일 %d개, 게임 %d개, QR %d개",
	},
	LocaleEnglish: {
		Title:            "🎱 Lotto QR Generator",
		HeaderInfo:       "Scan the generated QR with the lottery machine or app.",
		ErrType:          "Unsupported file type",
		ErrDocument:      "Could not read the file: %v",
		ErrNoNum:         "No valid lotto numbers found.",
		ErrDigit:         "Please enter draw number as digits.",
		Success:          "Total %d games loaded.",
		RoundComputed:    "No draw number given, using the round on sale (%d).",
		Batch:            "Batch %d (%d games)",
		Game:             "Game %d",
		Skipped:          "Skipped %d line(s).",
		Saved:            "Saved: %s",
		HistoryFileName:  "lotto_history_%d.csv",
		ColRound:         "Round",
		ColBatch:         "Batch",
		ColNums:          "Numbers",
		ColURL:           "QR_Content(URL)",
		SummaryProcessed: "Done: %d file(s), %d game(s), %d QR code(s)",
	},
}

// BuiltinLabels returns the built-in messages for locale.
func BuiltinLabels(locale Locale) Labels {
	if l, ok := builtinLabels[locale]; ok {
		return l
	}
	return builtinLabels[LocaleKorean]
}

// LoadLabels returns the messages for locale, overlaid with the entries of
// the YAML file at path when path is set. The file is keyed by locale:
//
//	en:
//	  success: "%d games ready."
//	ko:
//	  title: "로또 QR"
//
// Keys that are missing or empty keep their built-in text.
func LoadLabels(locale Locale, path string) (Labels, error) {
	labels := BuiltinLabels(locale)
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return labels, fmt.Errorf("failed to read labels file: %w", err)
	}

	var overlay map[Locale]Labels
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return labels, fmt.Errorf("failed to parse labels file: %w", err)
	}

	if o, ok := overlay[locale]; ok {
		labels.merge(o)
	}
	return labels, nil
}

// merge copies every non-empty field of o into l.
func (l *Labels) merge(o Labels) {
	set := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	set(&l.Title, o.Title)
	set(&l.HeaderInfo, o.HeaderInfo)
	set(&l.ErrType, o.ErrType)
	set(&l.ErrDocument, o.ErrDocument)
	set(&l.ErrNoNum, o.ErrNoNum)
	set(&l.ErrDigit, o.ErrDigit)
	set(&l.Success, o.Success)
	set(&l.RoundComputed, o.RoundComputed)
	set(&l.Batch, o.Batch)
	set(&l.Game, o.Game)
	set(&l.Skipped, o.Skipped)
	set(&l.Saved, o.Saved)
	set(&l.HistoryFileName, o.HistoryFileName)
	set(&l.ColRound, o.ColRound)
	set(&l.ColBatch, o.ColBatch)
	set(&l.ColNums, o.ColNums)
	set(&l.ColURL, o.ColURL)
	set(&l.SummaryProcessed, o.SummaryProcessed)
}
