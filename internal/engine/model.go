package engine

import (
	"slices"

	"github.com/tartampluch/go-myancal/internal/config"
)

// Label is a date component in its two text variants.
type Label struct {
	Short  string `json:"short"`  // Romanized or short code
	Native string `json:"native"` // Myanmar script
}

// Numeral is a number with its plain and Myanmar-digit renderings.
type Numeral struct {
	Value  int    `json:"value"`
	Short  string `json:"short"`
	Native string `json:"native"`
}

// UnknownLabel is substituted for any label the converter could not supply.
func UnknownLabel() Label {
	return Label{Short: config.UnknownShort, Native: config.UnknownNative}
}

// UnknownNumeral is substituted for any number the converter could not supply.
// Its Value is 0, which no real Myanmar year or day takes.
func UnknownNumeral() Numeral {
	return Numeral{Short: config.UnknownShort, Native: config.UnknownNative}
}

// IsUnknown reports whether the label is the unknown sentinel.
func (l Label) IsUnknown() bool {
	return l == UnknownLabel()
}

// IsUnknown reports whether the numeral is the unknown sentinel.
func (n Numeral) IsUnknown() bool {
	return n == UnknownNumeral()
}

// MyanmarDate is the traditional calendar date of a civil day.
// Every field is always populated, possibly with the unknown sentinel.
type MyanmarDate struct {
	Year      Numeral `json:"year"`
	Month     Label   `json:"month"`
	Day       Numeral `json:"day"`
	MoonPhase Label   `json:"moon_phase"`
	Fortnight Label   `json:"fortnight"`
}

// AstroProfile holds the four astrological attributes of a civil day.
type AstroProfile struct {
	BirthDayClass string `json:"birth_day_class"` // maharbote
	Numerology    string `json:"numerology"`
	ChineseZodiac string `json:"chinese_zodiac"`
	MyanmarZodiac string `json:"myanmar_zodiac"`
}

// DayCell is one square of the month view.
type DayCell struct {
	Date               CivilDate    `json:"date"`
	Myanmar            MyanmarDate  `json:"myanmar"`
	Astro              AstroProfile `json:"astro"`
	IsToday            bool         `json:"is_today"`
	IsInDisplayedMonth bool         `json:"is_in_displayed_month"`
}

// MonthGrid is an immutable snapshot of a displayed month.
// Cells always holds exactly six weeks, Sunday first.
type MonthGrid struct {
	Month    YearMonth
	Today    CivilDate
	Leading  int
	Trailing int
	Cells    [config.GridCells]DayCell
}

// InMonth returns the cells of the displayed month, in order.
func (g *MonthGrid) InMonth() []DayCell {
	return slices.Clone(g.Cells[g.Leading : config.GridCells-g.Trailing])
}

// TodayCell returns the cell flagged as today, if the grid shows it.
func (g *MonthGrid) TodayCell() (DayCell, bool) {
	for _, c := range g.Cells {
		if c.IsToday {
			return c, true
		}
	}
	return DayCell{}, false
}

// Weeks splits the cells into rows of seven.
func (g *MonthGrid) Weeks() [][]DayCell {
	rows := make([][]DayCell, 0, config.GridWeeks)
	for i := 0; i < config.GridCells; i += config.DaysPerWeek {
		rows = append(rows, slices.Clone(g.Cells[i:i+config.DaysPerWeek]))
	}
	return rows
}
