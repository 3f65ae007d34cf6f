package engine

import (
	"fmt"
	"log/slog"

	"cloudeng.io/errors"
	"github.com/tartampluch/go-myancal/internal/config"
)

// Enricher annotates civil days with their Myanmar date and astrology.
// It never reads the clock: "today" is always passed in.
// A nil collaborator behaves as one that is always unavailable.
type Enricher struct {
	Converter  DateConverter
	Astrologer Astrologer
}

// Enrich builds the cell for date as seen from a view of displayed on day today.
// Collaborator failures never escape: each affected field gets the unknown sentinel.
func (e *Enricher) Enrich(date CivilDate, displayed YearMonth, today CivilDate) DayCell {
	errs := &errors.M{}

	cell := DayCell{
		Date:               date,
		Myanmar:            e.myanmarDate(date, errs),
		Astro:              e.astroProfile(date, errs),
		IsToday:            date.Equal(today),
		IsInDisplayedMonth: displayed.Contains(date),
	}

	if err := errs.Err(); err != nil {
		slog.Debug(config.MsgEnrichDegraded,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyDate, date.String(),
			config.LogKeyFailures, err.Error(),
		)
	}
	return cell
}

func (e *Enricher) myanmarDate(date CivilDate, errs *errors.M) MyanmarDate {
	var conv Conversion
	if e.Converter == nil {
		errs.Append(fmt.Errorf("%s: %w", config.OpConvert, ErrUnavailable))
	} else {
		c, err := guard(config.OpConvert, func() (Conversion, error) {
			return e.Converter.Convert(date)
		})
		errs.Append(err)
		if err == nil {
			conv = c
		}
	}

	return MyanmarDate{
		Year:      numeralOr(conv.Year),
		Month:     labelOr(conv.Month),
		Day:       numeralOr(conv.Day),
		MoonPhase: labelOr(conv.MoonPhase),
		Fortnight: labelOr(conv.Fortnight),
	}
}

func (e *Enricher) astroProfile(date CivilDate, errs *errors.M) AstroProfile {
	a := e.Astrologer
	call := func(op string, fn func(Astrologer) (string, error)) string {
		if a == nil {
			errs.Append(fmt.Errorf("%s: %w", op, ErrUnavailable))
			return config.UnknownShort
		}
		s, err := guard(op, func() (string, error) { return fn(a) })
		if err == nil && s == "" {
			err = fmt.Errorf("%s: %w", op, ErrUnavailable)
		}
		if err != nil {
			errs.Append(err)
			return config.UnknownShort
		}
		return s
	}

	return AstroProfile{
		BirthDayClass: call(config.OpBirthDayClass, func(a Astrologer) (string, error) {
			return a.BirthDayClass(date.Year, date.ISOWeekday())
		}),
		Numerology: call(config.OpNumerology, func(a Astrologer) (string, error) {
			return a.Numerology(date.Day)
		}),
		ChineseZodiac: call(config.OpChineseZodiac, func(a Astrologer) (string, error) {
			return a.ChineseZodiac(date.Year)
		}),
		MyanmarZodiac: call(config.OpMyanmarZodiac, func(a Astrologer) (string, error) {
			return a.MyanmarZodiac(date.Day, int(date.Month))
		}),
	}
}

// labelOr fills each missing text variant independently.
func labelOr(f Field[Label]) Label {
	l, ok := f.Get()
	if !ok {
		return UnknownLabel()
	}
	if l.Short == "" {
		l.Short = config.UnknownShort
	}
	if l.Native == "" {
		l.Native = config.UnknownNative
	}
	return l
}

func numeralOr(f Field[Numeral]) Numeral {
	n, ok := f.Get()
	if !ok {
		return UnknownNumeral()
	}
	if n.Short == "" {
		n.Short = config.UnknownShort
	}
	if n.Native == "" {
		n.Native = config.UnknownNative
	}
	return n
}
