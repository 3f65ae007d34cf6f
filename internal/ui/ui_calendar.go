package ui

import (
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// calendarView holds the widgets of the month window.
// All fields are only touched on the fyne main goroutine.
type calendarView struct {
	app *MyancalApp

	title    *widget.Label
	prev     *widget.Button
	next     *widget.Button
	today    *widget.Button
	month    *widget.Select
	year     *widget.Select
	status   *widget.Label
	tip      *widget.Label
	weekdays [config.DaysPerWeek]*widget.Label
	tiles    [config.GridCells]*dayTile

	grid *engine.MonthGrid
	// updating suppresses select callbacks while render sets them.
	updating bool
}

// ShowCalendarWindow opens the month window, or focuses it if already open.
func (app *MyancalApp) ShowCalendarWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w
	app.view = newCalendarView(app)

	w.SetContent(app.view.content())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.Canvas().SetOnTypedKey(app.handleKey)

	if app.Tray != nil {
		// The tray keeps the app alive.
		w.SetCloseIntercept(w.Hide)
	} else {
		w.SetOnClosed(func() {
			app.Window = nil
			app.view = nil
		})
	}

	app.renderStatus()
	if nav := app.Navigator(); nav != nil {
		app.view.render(nav.Grid())
	}
	w.Show()
}

// handleKey maps the keyboard shortcuts of the month window.
func (app *MyancalApp) handleKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyLeft:
		app.navigate((*engine.Navigator).GoToPrevious)
	case fyne.KeyRight:
		app.navigate((*engine.Navigator).GoToNext)
	case fyne.KeyName(config.KeyToday):
		app.navigate((*engine.Navigator).GoToToday)
	case fyne.KeyEscape:
		if app.detail != nil {
			app.detail.Hide()
		}
	}
}

// navigate applies op off the main goroutine; grid building may block on the provider.
// The new grid comes back through onGridChange.
func (app *MyancalApp) navigate(op func(*engine.Navigator)) {
	nav := app.Navigator()
	if nav == nil {
		return
	}
	go op(nav)
}

// renderStatus shows the loading gate state above the grid.
func (app *MyancalApp) renderStatus() {
	if app.view == nil {
		return
	}
	switch loadState(app.state.Load()) {
	case stateLoading:
		app.view.status.SetText(app.GetMsg(config.TKeyLblLoading))
		app.view.status.Show()
	case stateFailed:
		app.view.status.SetText(app.GetMsg(config.TKeyLblLoadFailed))
		app.view.status.Show()
	default:
		app.view.status.Hide()
	}
}

func newCalendarView(app *MyancalApp) *calendarView {
	v := &calendarView{app: app}

	v.title = widget.NewLabel("")
	v.title.Alignment = fyne.TextAlignCenter
	v.title.TextStyle = fyne.TextStyle{Bold: true}

	v.prev = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		app.navigate((*engine.Navigator).GoToPrevious)
	})
	v.next = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		app.navigate((*engine.Navigator).GoToNext)
	})
	v.next.IconPlacement = widget.ButtonIconTrailingText
	v.today = widget.NewButtonWithIcon("", theme.HomeIcon(), func() {
		app.navigate((*engine.Navigator).GoToToday)
	})
	v.today.Importance = widget.HighImportance

	v.month = widget.NewSelect(app.monthNames(), func(name string) {
		if v.updating {
			return
		}
		for i, n := range v.month.Options {
			if n == name {
				m := i + 1
				app.navigate(func(nav *engine.Navigator) { nav.SetMonth(time.Month(m)) })
				return
			}
		}
	})
	v.year = widget.NewSelect(nil, func(s string) {
		if v.updating {
			return
		}
		if y, err := strconv.Atoi(s); err == nil {
			app.navigate(func(nav *engine.Navigator) { nav.SetYear(y) })
		}
	})

	v.status = widget.NewLabel("")
	v.status.Alignment = fyne.TextAlignCenter
	v.status.Hide()

	v.tip = widget.NewLabel("")
	v.tip.Alignment = fyne.TextAlignCenter
	v.tip.TextStyle = fyne.TextStyle{Italic: true}

	for i := range v.weekdays {
		v.weekdays[i] = widget.NewLabel("")
		v.weekdays[i].Alignment = fyne.TextAlignCenter
		v.weekdays[i].TextStyle = fyne.TextStyle{Bold: true}
	}
	for i := range v.tiles {
		v.tiles[i] = newDayTile(app.ShowDayDetail)
	}

	v.relabel()
	return v
}

func (v *calendarView) content() fyne.CanvasObject {
	pickers := container.NewHBox(layout.NewSpacer(), v.month, v.year, v.today, layout.NewSpacer())
	header := container.NewBorder(nil, nil, v.prev, v.next, pickers)

	heads := make([]fyne.CanvasObject, 0, config.DaysPerWeek)
	for _, l := range v.weekdays {
		heads = append(heads, l)
	}
	cells := make([]fyne.CanvasObject, 0, config.GridCells)
	for _, t := range v.tiles {
		cells = append(cells, t)
	}

	top := container.NewVBox(v.title, header, v.status, container.NewGridWithColumns(config.DaysPerWeek, heads...))
	return container.NewPadded(container.NewBorder(top, v.tip, nil, nil,
		container.NewGridWithColumns(config.DaysPerWeek, cells...)))
}

// relabel applies the current language to every static text.
func (v *calendarView) relabel() {
	app := v.app
	v.prev.SetText(app.GetMsg(config.TKeyBtnPrev))
	v.next.SetText(app.GetMsg(config.TKeyBtnNext))
	v.today.SetText(app.GetMsg(config.TKeyBtnToday))
	v.tip.SetText(app.GetMsg(config.TKeyLblTip))
	for i, l := range v.weekdays {
		l.SetText(app.WeekdayName(time.Weekday(i)))
	}

	v.updating = true
	v.month.Options = app.monthNames()
	v.month.ClearSelected()
	v.updating = false

	if app.Window != nil {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
	if v.grid != nil {
		v.render(v.grid)
	}
}

// render displays g. It never triggers navigation.
func (v *calendarView) render(g *engine.MonthGrid) {
	if g == nil {
		return
	}
	v.grid = g
	app := v.app

	v.title.SetText(fmt.Sprintf(config.FormatMonthYearHead, app.MonthName(g.Month.Month), g.Month.Year))

	v.updating = true
	v.month.SetSelected(app.MonthName(g.Month.Month))
	if nav := app.Navigator(); nav != nil {
		v.year.Options = yearOptions(nav.Years())
	}
	v.year.SetSelected(strconv.Itoa(g.Month.Year))
	v.updating = false

	if g.Month.Contains(g.Today) {
		v.today.Hide()
	} else {
		v.today.Show()
	}

	for i, c := range g.Cells {
		v.tiles[i].SetCell(c)
	}
	slog.Debug(config.MsgGridRendered,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyMonth, g.Month.String())
}

func yearOptions(years []int) []string {
	opts := make([]string, len(years))
	for i, y := range years {
		opts[i] = strconv.Itoa(y)
	}
	return opts
}

// dayTile is one tappable cell of the month grid.
type dayTile struct {
	widget.BaseWidget

	bg    *canvas.Rectangle
	day   *canvas.Text
	sub   *canvas.Text
	cell  engine.DayCell
	onTap func(engine.DayCell)
}

func newDayTile(onTap func(engine.DayCell)) *dayTile {
	t := &dayTile{
		bg:    canvas.NewRectangle(color.Transparent),
		day:   canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		sub:   canvas.NewText("", theme.Color(theme.ColorNameForeground)),
		onTap: onTap,
	}
	t.day.TextSize = config.TileTextSizeDay
	t.day.TextStyle = fyne.TextStyle{Bold: true}
	t.day.Alignment = fyne.TextAlignCenter
	t.sub.TextSize = config.TileTextSizeSub
	t.sub.Alignment = fyne.TextAlignCenter
	t.ExtendBaseWidget(t)
	return t
}

func (t *dayTile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(t.bg, container.NewPadded(container.NewVBox(t.day, t.sub))))
}

// Tapped opens the detail of the tile's day.
func (t *dayTile) Tapped(*fyne.PointEvent) {
	if t.onTap != nil && !t.cell.Date.IsZero() {
		t.onTap(t.cell)
	}
}

// SetCell shows c. Adjacent-month days are dimmed, today is highlighted.
func (t *dayTile) SetCell(c engine.DayCell) {
	t.cell = c
	t.day.Text = strconv.Itoa(c.Date.Day)
	t.sub.Text = fmt.Sprintf(config.FormatTileSub, c.Myanmar.MoonPhase.Native, c.Myanmar.Day.Native)

	fg := theme.Color(theme.ColorNameForeground)
	switch {
	case c.IsToday:
		t.bg.FillColor = theme.Color(theme.ColorNamePrimary)
		fg = theme.Color(theme.ColorNameForegroundOnPrimary)
	case c.IsInDisplayedMonth:
		t.bg.FillColor = theme.Color(theme.ColorNameInputBackground)
	default:
		t.bg.FillColor = color.Transparent
		fg = theme.Color(theme.ColorNameDisabled)
	}
	t.day.Color = fg
	t.sub.Color = fg
	t.Refresh()
}
