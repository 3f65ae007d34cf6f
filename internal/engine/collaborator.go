package engine

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-myancal/internal/config"
)

// ErrUnavailable is the expected signal that a collaborator has no answer for an input.
var ErrUnavailable = errors.New(config.ErrUnavailable)

// DateConverter maps a civil date to its Myanmar calendar date.
// Any field of the Conversion may be absent.
type DateConverter interface {
	Convert(date CivilDate) (Conversion, error)
}

// Conversion is the best-effort result of a DateConverter.
type Conversion struct {
	Year      Field[Numeral]
	Month     Field[Label]
	Day       Field[Numeral]
	MoonPhase Field[Label]
	Fortnight Field[Label]
}

// Astrologer computes the astrological attributes of a day.
// Each function may fail independently of the others.
type Astrologer interface {
	// BirthDayClass returns the maharbote class. weekday is 1 (Sunday) to 7 (Saturday).
	BirthDayClass(year, weekday int) (string, error)
	Numerology(day int) (string, error)
	ChineseZodiac(year int) (string, error)
	// MyanmarZodiac takes the day of month and the month number (1-12).
	MyanmarZodiac(day, month int) (string, error)
}

// guard runs a collaborator call, turning a panic into an error.
func guard[T any](op string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = fmt.Errorf("%s: %s: %v", config.ErrCollabPanic, op, r)
		}
	}()
	v, err = fn()
	if err != nil {
		err = fmt.Errorf("%s: %w", op, err)
	}
	return v, err
}
