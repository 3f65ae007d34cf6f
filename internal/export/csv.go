package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// Row is the flat record of a day cell used by the CSV and JSON renderings.
type Row struct {
	Date             string `csv:"date" json:"date"`
	Weekday          int    `csv:"weekday" json:"weekday"` // 1 = Sunday
	InDisplayedMonth bool   `csv:"in_displayed_month" json:"in_displayed_month"`
	Today            bool   `csv:"today" json:"today"`
	MyanmarYear      int    `csv:"myanmar_year" json:"myanmar_year"`
	MyanmarYearMy    string `csv:"myanmar_year_my" json:"myanmar_year_my"`
	Month            string `csv:"month" json:"month"`
	MonthMy          string `csv:"month_my" json:"month_my"`
	Day              string `csv:"day" json:"day"`
	DayMy            string `csv:"day_my" json:"day_my"`
	MoonPhase        string `csv:"moon_phase" json:"moon_phase"`
	MoonPhaseMy      string `csv:"moon_phase_my" json:"moon_phase_my"`
	Fortnight        string `csv:"fortnight" json:"fortnight"`
	FortnightMy      string `csv:"fortnight_my" json:"fortnight_my"`
	Maharbote        string `csv:"maharbote" json:"maharbote"`
	Numerology       string `csv:"numerology" json:"numerology"`
	ChineseZodiac    string `csv:"chinese_zodiac" json:"chinese_zodiac"`
	MyanmarZodiac    string `csv:"myanmar_zodiac" json:"myanmar_zodiac"`
}

// Rows flattens all 42 cells in grid order.
func Rows(grid *engine.MonthGrid) []*Row {
	rows := make([]*Row, 0, len(grid.Cells))
	for _, c := range grid.Cells {
		mm := c.Myanmar
		rows = append(rows, &Row{
			Date:             c.Date.String(),
			Weekday:          c.Date.ISOWeekday(),
			InDisplayedMonth: c.IsInDisplayedMonth,
			Today:            c.IsToday,
			MyanmarYear:      mm.Year.Value,
			MyanmarYearMy:    mm.Year.Native,
			Month:            mm.Month.Short,
			MonthMy:          mm.Month.Native,
			Day:              mm.Day.Short,
			DayMy:            mm.Day.Native,
			MoonPhase:        mm.MoonPhase.Short,
			MoonPhaseMy:      mm.MoonPhase.Native,
			Fortnight:        mm.Fortnight.Short,
			FortnightMy:      mm.Fortnight.Native,
			Maharbote:        c.Astro.BirthDayClass,
			Numerology:       c.Astro.Numerology,
			ChineseZodiac:    c.Astro.ChineseZodiac,
			MyanmarZodiac:    c.Astro.MyanmarZodiac,
		})
	}
	return rows
}

// CSV writes a header line and one line per cell.
func CSV(w io.Writer, grid *engine.MonthGrid) error {
	if err := gocsv.Marshal(Rows(grid), w); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCSVEncode, err)
	}
	return nil
}
