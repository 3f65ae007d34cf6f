package ui

import (
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// detailRow is one labelled line of the day detail.
type detailRow struct {
	Label string
	Value string
}

// detailTitle is the long Gregorian date of c in the active language's layout.
func (app *MyancalApp) detailTitle(c engine.DayCell) string {
	return c.Date.Time().Format(app.GetMsg(config.TKeyFormatDateLong))
}

// calendarRows lists the Myanmar date of c, native first with the short form alongside.
func (app *MyancalApp) calendarRows(c engine.DayCell) []detailRow {
	mm := c.Myanmar
	return []detailRow{
		{app.GetMsg(config.TKeyLblGregorian), c.Date.String()},
		{app.GetMsg(config.TKeyLblMyanmarDate), fmt.Sprintf(config.FormatDetailValue,
			fmt.Sprintf(config.FormatMyanmarDate, mm.Month.Native, mm.MoonPhase.Native, mm.Day.Native),
			fmt.Sprintf(config.FormatMyanmarDate, mm.Month.Short, mm.MoonPhase.Short, mm.Day.Short))},
		{app.GetMsg(config.TKeyLblFortnight), fmt.Sprintf(config.FormatDetailValue, mm.Fortnight.Native, mm.Fortnight.Short)},
		{app.GetMsg(config.TKeyLblMyanmarYear), fmt.Sprintf(config.FormatDetailValue, mm.Year.Native, mm.Year.Short)},
	}
}

func (app *MyancalApp) astroRows(c engine.DayCell) []detailRow {
	a := c.Astro
	return []detailRow{
		{app.GetMsg(config.TKeyLblMaharbote), a.BirthDayClass},
		{app.GetMsg(config.TKeyLblNumerology), a.Numerology},
		{app.GetMsg(config.TKeyLblChinese), a.ChineseZodiac},
		{app.GetMsg(config.TKeyLblZodiac), a.MyanmarZodiac},
	}
}

func rowsForm(rows []detailRow) *widget.Form {
	form := widget.NewForm()
	for _, r := range rows {
		value := widget.NewLabel(r.Value)
		value.Wrapping = fyne.TextWrapWord
		form.Append(r.Label, value)
	}
	return form
}

// ShowDayDetail opens a dialog with the full enrichment of a day.
// Only one detail is shown at a time.
func (app *MyancalApp) ShowDayDetail(c engine.DayCell) {
	if app.Window == nil {
		return
	}
	slog.Debug(config.MsgOpenDetail,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyDate, c.Date.String())

	if app.detail != nil {
		app.detail.Hide()
	}

	content := container.NewVBox(
		rowsForm(app.calendarRows(c)),
		widget.NewCard(app.GetMsg(config.TKeyLblAstro), "", rowsForm(app.astroRows(c))),
	)

	d := dialog.NewCustom(app.detailTitle(c), app.GetMsg(config.TKeyBtnClose), content, app.Window)
	d.SetOnClosed(func() {
		if app.detail == d {
			app.detail = nil
		}
	})
	app.detail = d
	d.Resize(fyne.NewSize(config.DetailDialogWidth, content.MinSize().Height))
	d.Show()
}
