package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"github.com/tartampluch/go-myancal/internal/provider"
	"github.com/tartampluch/go-myancal/internal/server"
)

// loadState is the progress of the provider loading gate.
type loadState int32

const (
	stateLoading loadState = iota
	stateReady
	stateFailed
)

// MyancalApp encapsulates the UI state, preferences, and background logic.
type MyancalApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Env         config.Env // deployment defaults, overridden by preferences
	Server      *server.CalendarServer
	Clock       engine.Clock // Injected clock for testability
	NewProvider func(context.Context, config.Env) (provider.Provider, error)

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayOpenItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	nav      atomic.Pointer[engine.Navigator]
	enricher atomic.Pointer[engine.Enricher]
	state    atomic.Int32
	// forceReload makes the worker reload even if the provider settings look unchanged.
	forceReload atomic.Bool
	// loadMu serializes provider (re)loads.
	loadMu  sync.Mutex
	loadEnv config.Env // GUARDED_BY(loadMu), env of the last load

	Window         fyne.Window // calendar window
	view           *calendarView
	detail         dialog.Dialog
	settingsWindow fyne.Window
}

// NewMyancalApp constructs the application and wires dependencies.
func NewMyancalApp(a fyne.App, ctx context.Context, env config.Env, srv *server.CalendarServer) *MyancalApp {
	a.SetIcon(theme.CalendarIcon())

	return &MyancalApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Env:                env,
		Server:             srv,
		Clock:              engine.RealClock{},
		NewProvider:        provider.New,
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// EffectiveEnv merges the saved preferences over the deployment environment.
func (app *MyancalApp) EffectiveEnv() config.Env {
	env := app.Env
	override := func(dst *string, key string) {
		if v := app.Preferences.String(key); v != "" {
			*dst = v
		}
	}
	override(&env.Language, config.PrefLanguage)
	override(&env.Provider, config.PrefProviderMode)
	override(&env.RemoteURL, config.PrefRemoteURL)
	override(&env.BundleSource, config.PrefBundlePath)
	override(&env.ServerPort, config.PrefServerPort)
	return env
}

// Navigator returns the current navigator, nil while the provider is loading.
func (app *MyancalApp) Navigator() *engine.Navigator {
	return app.nav.Load()
}

// Run launches the application services and the main UI loop.
func (app *MyancalApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported,
			config.LogKeyComponent, config.CompUI)
	}

	app.ShowCalendarWindow()
	go app.loadProvider()
	go app.backgroundWorker()
	app.App.Run()
}

// watchPreferences signals the worker when settings change.
func (app *MyancalApp) watchPreferences() {
	app.Preferences.AddChangeListener(app.signalConfig)
}

func (app *MyancalApp) signalConfig() {
	select {
	case app.configChan <- config.PrefProviderMode:
	default:
	}
}

// RequestReload asks the worker to load the provider again.
func (app *MyancalApp) RequestReload() {
	app.forceReload.Store(true)
	app.signalConfig()
}

// loadProvider runs the loading gate: no grid is built before Load returns.
// A failed load still yields a navigable calendar of unknown values.
func (app *MyancalApp) loadProvider() {
	app.loadMu.Lock()
	defer app.loadMu.Unlock()

	env := app.EffectiveEnv()
	app.loadEnv = env
	app.state.Store(int32(stateLoading))
	app.onUI(app.renderStatus)

	log := slog.With(
		config.LogKeyComponent, config.CompUI,
		config.LogKeyProvider, env.Provider,
	)

	log.Info(config.MsgProviderLoading)
	enricher := &engine.Enricher{}
	p, err := app.NewProvider(app.Ctx, env)
	if err == nil {
		err = p.Load(app.Ctx)
	}
	if err != nil {
		log.Error(config.MsgProviderFailed, config.LogKeyError, err)
		app.state.Store(int32(stateFailed))
	} else {
		log.Info(config.MsgProviderReady)
		enricher.Converter = p
		enricher.Astrologer = p
		app.state.Store(int32(stateReady))
	}

	start := engine.Today(app.Clock).YearMonth()
	if old := app.nav.Load(); old != nil {
		start = old.Current()
	}

	nav := engine.NewNavigatorAt(enricher, app.Clock, start, nil)
	nav.OnChange = app.onGridChange
	app.enricher.Store(enricher)
	app.nav.Store(nav)
	app.onGridChange(nav.Grid())
}

// onGridChange publishes a new grid to the server, the window and the tray.
func (app *MyancalApp) onGridChange(g *engine.MonthGrid) {
	if app.Server != nil {
		app.Server.Update(g)
	}
	app.onUI(func() {
		app.renderStatus()
		if app.view != nil {
			app.view.render(g)
		}
		app.updateTrayStatus()
	})
}

// onUI runs fn on the fyne main goroutine.
func (app *MyancalApp) onUI(fn func()) {
	fyne.Do(fn)
}

// setupTrayMenu constructs the system tray menu.
func (app *MyancalApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowCalendarWindow()
	})

	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), func() {
		app.ShowCalendarWindow()
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *MyancalApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.updateTrayStatus()
}

// updateTrayStatus shows today's Myanmar date in the top menu item.
func (app *MyancalApp) updateTrayStatus() {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	app.TrayStatusItem.Label = app.trayStatusLabel()
	app.Menu.Refresh()
}

func (app *MyancalApp) trayStatusLabel() string {
	nav := app.nav.Load()
	if nav == nil {
		return config.FallbackTrayLabel
	}

	today := engine.Today(app.Clock)
	cell, ok := nav.Grid().TodayCell()
	if !ok {
		// Today is not on the displayed page; enrich it alone.
		e := app.enricher.Load()
		if e == nil {
			return config.FallbackTrayLabel
		}
		cell = e.Enrich(today, today.YearMonth(), today)
	}

	mm := cell.Myanmar
	label := app.GetMsgWith(config.TKeyTrayToday, map[string]interface{}{
		"Month": mm.Month.Native,
		"Phase": mm.MoonPhase.Native,
		"Day":   mm.Day.Native,
	})
	if label == config.TKeyTrayToday {
		label = fmt.Sprintf(config.FallbackTrayToday, mm.Month.Native, mm.MoonPhase.Native, mm.Day.Native)
	}
	return label
}

// backgroundWorker rebuilds the grid when the civil date changes and reloads the
// provider when its settings change.
func (app *MyancalApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	ticker := time.NewTicker(config.DayCheckInterval)
	defer ticker.Stop()

	lastDay := engine.Today(app.Clock)
	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.DayCheckInterval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			if app.forceReload.Swap(false) || app.providerSettingsChanged() {
				app.loadProvider()
			}

		case <-ticker.C:
			lastDay = app.checkDayRollover(lastDay)
		}
	}
}

// checkDayRollover refreshes the grid if today differs from last and returns today.
func (app *MyancalApp) checkDayRollover(last engine.CivilDate) engine.CivilDate {
	today := engine.Today(app.Clock)
	if today == last {
		return last
	}
	slog.Info(config.MsgDayRollover,
		config.LogKeyComponent, config.CompWorker,
		config.LogKeyDate, today.String())
	if nav := app.nav.Load(); nav != nil {
		nav.Refresh()
	}
	return today
}

func (app *MyancalApp) providerSettingsChanged() bool {
	env := app.EffectiveEnv()
	app.loadMu.Lock()
	defer app.loadMu.Unlock()
	last := app.loadEnv
	return env.Provider != last.Provider || env.RemoteURL != last.RemoteURL || env.BundleSource != last.BundleSource
}
