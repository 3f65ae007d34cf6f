package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

var (
	feb2024  = engine.YearMonth{Year: 2024, Month: time.February}
	leapDay  = engine.CivilDate{Year: 2024, Month: time.February, Day: 29}
	someDay  = engine.CivilDate{Year: 2024, Month: time.February, Day: 14}
	unknownS = config.UnknownShort
)

func TestEnrich_Success(t *testing.T) {
	e := newStubEnricher(&stubCalendar{})
	cell := e.Enrich(leapDay, feb2024, someDay)

	assert.Equal(t, leapDay, cell.Date)
	assert.True(t, cell.IsInDisplayedMonth)
	assert.False(t, cell.IsToday)

	assert.Equal(t, 1386, cell.Myanmar.Year.Value)
	assert.Equal(t, "Tabodwe", cell.Myanmar.Month.Short)
	assert.Equal(t, "တပို့တွဲ", cell.Myanmar.Month.Native)
	assert.Equal(t, 29, cell.Myanmar.Day.Value)
	assert.Equal(t, "Waxing", cell.Myanmar.MoonPhase.Short)
	assert.Equal(t, "First", cell.Myanmar.Fortnight.Short)

	// Feb 29th 2024 is a Thursday: native 4, maharbote weekday 5.
	assert.Equal(t, "class-2024-5", cell.Astro.BirthDayClass)
	assert.Equal(t, "num-29", cell.Astro.Numerology)
	assert.Equal(t, "cz-2024", cell.Astro.ChineseZodiac)
	assert.Equal(t, "mz-2-29", cell.Astro.MyanmarZodiac)
}

func TestEnrich_Flags(t *testing.T) {
	e := &engine.Enricher{}

	tests := []struct {
		name      string
		date      engine.CivilDate
		today     engine.CivilDate
		isToday   bool
		isInMonth bool
	}{
		{"Today in month", someDay, someDay, true, true},
		{"Other day in month", leapDay, someDay, false, true},
		{"Leading cell", engine.CivilDate{Year: 2024, Month: time.January, Day: 31}, someDay, false, false},
		{"Trailing cell is today", engine.CivilDate{Year: 2024, Month: time.March, Day: 1}, engine.CivilDate{Year: 2024, Month: time.March, Day: 1}, true, false},
		{"Same day, different year", engine.CivilDate{Year: 2023, Month: time.February, Day: 14}, someDay, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := e.Enrich(tt.date, feb2024, tt.today)
			assert.Equal(t, tt.isToday, cell.IsToday)
			assert.Equal(t, tt.isInMonth, cell.IsInDisplayedMonth)
		})
	}
}

// TestEnrich_WeekdayMapping checks that native weekdays 0..6 reach the birth-day-class calculator as 1..7.
func TestEnrich_WeekdayMapping(t *testing.T) {
	tests := []struct {
		name    string
		date    engine.CivilDate
		weekday int
	}{
		{"Sunday", engine.CivilDate{Year: 2024, Month: time.March, Day: 3}, 1},
		{"Wednesday", engine.CivilDate{Year: 2024, Month: time.March, Day: 6}, 4},
		{"Saturday", engine.CivilDate{Year: 2024, Month: time.March, Day: 2}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			astro := new(MockAstrologer)
			astro.On("BirthDayClass", 2024, tt.weekday).Return("Garuda", nil).Once()
			astro.On("Numerology", tt.date.Day).Return("7", nil)
			astro.On("ChineseZodiac", 2024).Return("Dragon", nil)
			astro.On("MyanmarZodiac", tt.date.Day, 3).Return("Pisces", nil)

			e := &engine.Enricher{Astrologer: astro}
			cell := e.Enrich(tt.date, engine.YearMonth{Year: 2024, Month: time.March}, someDay)

			assert.Equal(t, "Garuda", cell.Astro.BirthDayClass)
			assert.Equal(t, "Dragon", cell.Astro.ChineseZodiac)
			astro.AssertExpectations(t)
		})
	}
}

func TestEnrich_FailureIsolation(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCalendar
	}{
		{"Numerology error", &stubCalendar{numerologyErr: errBoom}},
		{"Numerology unavailable", &stubCalendar{numerologyErr: engine.ErrUnavailable}},
		{"Numerology panic", &stubCalendar{numerologyPanic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newStubEnricher(tt.stub)
			var cell engine.DayCell
			assert.NotPanics(t, func() { cell = e.Enrich(leapDay, feb2024, someDay) })

			assert.Equal(t, unknownS, cell.Astro.Numerology)
			assert.Equal(t, "class-2024-5", cell.Astro.BirthDayClass)
			assert.Equal(t, "cz-2024", cell.Astro.ChineseZodiac)
			assert.Equal(t, "mz-2-29", cell.Astro.MyanmarZodiac)
			assert.Equal(t, "Tabodwe", cell.Myanmar.Month.Short, "conversion is unaffected")
		})
	}
}

func TestEnrich_ConversionFailure(t *testing.T) {
	tests := []struct {
		name string
		stub *stubCalendar
	}{
		{"Converter error", &stubCalendar{convertErr: errBoom}},
		{"Converter panic", &stubCalendar{convertPanic: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := newStubEnricher(tt.stub).Enrich(leapDay, feb2024, someDay)

			assert.True(t, cell.Myanmar.Year.IsUnknown())
			assert.True(t, cell.Myanmar.Month.IsUnknown())
			assert.True(t, cell.Myanmar.Day.IsUnknown())
			assert.True(t, cell.Myanmar.MoonPhase.IsUnknown())
			assert.True(t, cell.Myanmar.Fortnight.IsUnknown())
			assert.Equal(t, config.UnknownNative, cell.Myanmar.Month.Native)
			assert.Equal(t, "num-29", cell.Astro.Numerology, "astrology is unaffected")
		})
	}
}

func TestEnrich_PartialConversion(t *testing.T) {
	cell := newStubEnricher(&stubCalendar{partial: true}).Enrich(leapDay, feb2024, someDay)

	assert.True(t, cell.Myanmar.Fortnight.IsUnknown(), "absent field gets the sentinel")
	assert.Equal(t, 29, cell.Myanmar.Day.Value)
	assert.Equal(t, "29", cell.Myanmar.Day.Short)
	assert.Equal(t, config.UnknownNative, cell.Myanmar.Day.Native, "missing text variant is filled on its own")
	assert.Equal(t, "Tabodwe", cell.Myanmar.Month.Short)
}

func TestEnrich_NilCollaborators(t *testing.T) {
	cell := (&engine.Enricher{}).Enrich(leapDay, feb2024, leapDay)

	assert.True(t, cell.IsToday)
	assert.Equal(t, engine.UnknownNumeral(), cell.Myanmar.Year)
	assert.Equal(t, engine.UnknownLabel(), cell.Myanmar.Month)
	assert.Equal(t, engine.AstroProfile{
		BirthDayClass: unknownS,
		Numerology:    unknownS,
		ChineseZodiac: unknownS,
		MyanmarZodiac: unknownS,
	}, cell.Astro)
}

func TestEnrich_EmptyAnswerIsUnavailable(t *testing.T) {
	astro := new(MockAstrologer)
	astro.On("BirthDayClass", mock.Anything, mock.Anything).Return("", nil)
	astro.On("Numerology", mock.Anything).Return("8", nil)
	astro.On("ChineseZodiac", mock.Anything).Return("", nil)
	astro.On("MyanmarZodiac", mock.Anything, mock.Anything).Return("Aquarius", nil)

	cell := (&engine.Enricher{Astrologer: astro}).Enrich(leapDay, feb2024, someDay)
	assert.Equal(t, unknownS, cell.Astro.BirthDayClass)
	assert.Equal(t, unknownS, cell.Astro.ChineseZodiac)
	assert.Equal(t, "8", cell.Astro.Numerology)
	assert.Equal(t, "Aquarius", cell.Astro.MyanmarZodiac)
}
