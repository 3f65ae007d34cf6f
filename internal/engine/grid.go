package engine

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-myancal/internal/config"
)

// GridBuilder produces month snapshots. The Navigator depends on it rather than on Enricher.
type GridBuilder interface {
	BuildMonthGrid(displayed YearMonth, today CivilDate) *MonthGrid
}

// GridDates lays out the 42 civil dates of a month view, Sunday first.
// leading is the number of days shown from the previous month, trailing from the next one.
// It panics if the layout arithmetic is inconsistent, which cannot happen for a valid month.
func GridDates(displayed YearMonth) (dates [config.GridCells]CivilDate, leading, trailing int) {
	first := displayed.FirstDay()
	leading = int(first.Weekday())
	length := displayed.Days()
	trailing = config.GridCells - leading - length

	// A 31-day month starting on Saturday leaves 5 trailing days,
	// a 28-day February starting on Sunday leaves 14.
	if leading < 0 || leading >= config.DaysPerWeek || length < 28 || length > 31 ||
		trailing < 5 || trailing > 2*config.DaysPerWeek {
		panic(fmt.Sprintf("%s: %s leading=%d length=%d trailing=%d",
			config.ErrGridDefect, displayed, leading, length, trailing))
	}

	i := 0
	for d := first.AddDays(-leading); d.Before(first); d = d.AddDays(1) {
		dates[i] = d
		i++
	}
	for day := 1; day <= length; day++ {
		dates[i] = CivilDate{Year: displayed.Year, Month: displayed.Month, Day: day}
		i++
	}
	next := displayed.Next().FirstDay()
	for day := 0; i < config.GridCells; day++ {
		dates[i] = next.AddDays(day)
		i++
	}
	return dates, leading, trailing
}

// BuildMonthGrid enriches every date of the month view in order.
// Equal inputs always yield equal grids, given deterministic collaborators.
func (e *Enricher) BuildMonthGrid(displayed YearMonth, today CivilDate) *MonthGrid {
	dates, leading, trailing := GridDates(displayed)

	g := &MonthGrid{
		Month:    displayed,
		Today:    today,
		Leading:  leading,
		Trailing: trailing,
	}
	for i, d := range dates {
		g.Cells[i] = e.Enrich(d, displayed, today)
	}

	slog.Debug(config.MsgGridBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMonth, displayed.String(),
		config.LogKeyToday, today.String(),
		config.LogKeyLeading, leading,
		config.LogKeyTrailing, trailing,
	)
	return g
}
