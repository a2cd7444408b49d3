package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharDirection(t *testing.T) {
	tests := []struct {
		r    rune
		want Direction
	}{
		{'A', LTR},
		{'é', LTR},
		{'Ж', LTR},
		{'Ω', LTR},
		{'中', LTR},
		{'ب', RTL},
		{'ש', RTL},
		{'ܐ', RTL}, // Syriac
		{'ހ', RTL}, // Thaana
		{'7', Neutral},
		{'٣', Neutral}, // Arabic-Indic digit
		{' ', Neutral},
		{'-', Neutral},
	}
	for _, tt := range tests {
		if got := CharDirection(tt.r); got != tt.want {
			t.Errorf("CharDirection(%q U+%04X) = %v, want %v", tt.r, tt.r, got, tt.want)
		}
	}
}

func TestDetectDirection(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"empty", "", Neutral},
		{"digits only", "12.50 %", Neutral},
		{"latin", "Total 12", LTR},
		{"hebrew", "שלום 12", RTL},
		{"arabic", "مرحبا", RTL},
		{"tie goes to ltr", "ab שש", LTR},
		{"mostly arabic", "PDF ملف نصي", RTL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectDirection(tt.text))
		})
	}
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "LTR", LTR.String())
	assert.Equal(t, "RTL", RTL.String())
	assert.Equal(t, "Neutral", Neutral.String())
	assert.Equal(t, "Unknown", Direction(9).String())
}
