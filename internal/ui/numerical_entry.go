package ui

import (
	"strings"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

const myanmarZero = '၀' // U+1040

// NumericalEntry is a custom Entry widget that only accepts digits.
// Myanmar digits are accepted and stored as ASCII.
type NumericalEntry struct {
	widget.Entry
}

// NewNumericalEntry creates a new instance of NumericalEntry.
func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune filters keystrokes to ASCII (0-9) and Myanmar (၀-၉) digits.
// Pasted text bypasses this filter; the Validator catches it.
func (e *NumericalEntry) TypedRune(r rune) {
	if d, ok := asciiDigit(r); ok {
		e.Entry.TypedRune(d)
	}
}

// Keyboard shows a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}

// NormalizeDigits rewrites Myanmar digits in s as ASCII digits.
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if d, ok := asciiDigit(r); ok {
			return d
		}
		return r
	}, s)
}

func asciiDigit(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r, true
	case r >= myanmarZero && r <= myanmarZero+9:
		return '0' + (r - myanmarZero), true
	}
	return 0, false
}
