// Package export renders month grids for calendar clients and scripts.
package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// ICS renders the in-month days of grid as all-day events.
// now is only used for DTSTAMP; equal grids yield equal UIDs.
func ICS(grid *engine.MonthGrid, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()

	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, fmt.Sprintf(config.FormatICalCalName, grid.Month))
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, cell := range grid.InMonth() {
		event := dayEvent(cell)
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgExported,
		config.LogKeyComponent, config.CompExport,
		config.LogKeyMonth, grid.Month.String(),
		config.LogKeyCount, len(cal.Children))
	return buf.Bytes(), nil
}

func dayEvent(cell engine.DayCell) *ical.Event {
	mm := cell.Myanmar
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, UID(cell.Date))
	event.Props.SetText(config.PropSummary,
		fmt.Sprintf(config.FormatICalSummary, mm.Month.Native, mm.MoonPhase.Native, mm.Day.Native))
	event.Props.SetText(config.PropDescription, describe(cell))
	event.Props.SetText(config.PropCategories, config.ICalCategory)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(cell.Date.Time())
	event.Props.Set(dtStartProp)
	return event
}

func describe(cell engine.DayCell) string {
	mm, a := cell.Myanmar, cell.Astro
	return fmt.Sprintf(config.FormatICalDesc,
		mm.Month.Short, mm.MoonPhase.Short, mm.Day.Short, mm.Fortnight.Short, mm.Year.Value,
		config.ICalLblMaharbote, a.BirthDayClass,
		config.ICalLblNumerology, a.Numerology,
		config.ICalLblChinese, a.ChineseZodiac,
		config.ICalLblZodiac, a.MyanmarZodiac,
	)
}

// UID derives a stable event identifier from the civil date.
func UID(d engine.CivilDate) string {
	input := fmt.Sprintf(config.FormatHashInput, d.String(), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
