package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/provider"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	modeSelect *widget.Select
	urlEntry   *widget.Entry
	tokenEntry *widget.Entry
	pathEntry  *widget.Entry
	entryPort  *NumericalEntry

	savedToken string
}

// ShowSettingsWindow displays the configuration dialog.
func (app *MyancalApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	env := app.EffectiveEnv()
	sw := &settingsWidgets{}

	var refreshLayout func()
	onLayoutChange := func() {
		if refreshLayout != nil {
			refreshLayout()
		}
	}

	// --- 1. Language ---
	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(env.Language)

	// --- 2. Calendar data ---
	sw.modeSelect = widget.NewSelect([]string{
		app.GetMsg(config.TKeyModeBundle),
		app.GetMsg(config.TKeyModeRemote),
	}, nil)

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetText(env.RemoteURL)
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	sw.tokenEntry = widget.NewPasswordEntry()
	if env.RemoteURL != "" {
		if tok, err := keyring.Get(config.KeyringService, env.RemoteURL); err == nil {
			sw.savedToken = tok
			sw.tokenEntry.SetText(tok)
		}
	}

	sw.pathEntry = widget.NewEntry()
	sw.pathEntry.SetText(env.BundleSource)
	sw.pathEntry.PlaceHolder = config.PlaceholderBundle

	sourceCard := app.buildSourceCard(w, sw, env.Provider, onLayoutChange)

	// --- 3. General ---
	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(env.ServerPort)
	sw.entryPort.Validator = app.validatePort

	generalForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort),
	)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", generalForm)

	// --- Actions ---
	saveAction := func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw, w)
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	paddedContent := container.NewPadded(container.NewVBox(
		sourceCard,
		generalCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	refreshLayout = func() {
		paddedContent.Refresh()
		minSize := paddedContent.MinSize()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, minSize.Height))
	}

	w.SetContent(paddedContent)
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })

	refreshLayout()
	w.Show()
}

// validatePort accepts a TCP port in [MinPort, MaxPort], in ASCII or Myanmar digits.
func (app *MyancalApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(NormalizeDigits(s))
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard constructs the provider selection UI.
func (app *MyancalApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, mode string, onLayoutChange func()) *widget.Card {
	browseBtn := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err == nil && r != nil {
				sw.pathEntry.SetText(r.URI().Path())
				_ = r.Close()
			}
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtYAML, config.ExtYML, config.ExtJSON}))
		d.Show()
	})

	remoteForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblToken), sw.tokenEntry),
	)
	bundleForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblBundle),
			container.NewBorder(nil, nil, nil, browseBtn, sw.pathEntry)),
	)

	applyVis := func(selected string) {
		if selected == app.GetMsg(config.TKeyModeRemote) {
			remoteForm.Show()
			bundleForm.Hide()
		} else {
			remoteForm.Hide()
			bundleForm.Show()
		}
	}
	sw.modeSelect.OnChanged = func(selected string) {
		applyVis(selected)
		if onLayoutChange != nil {
			onLayoutChange()
		}
	}

	if mode == config.ProviderRemote {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeRemote))
	} else {
		sw.modeSelect.SetSelected(app.GetMsg(config.TKeyModeBundle))
	}
	applyVis(sw.modeSelect.Selected)

	return widget.NewCard(app.GetMsg(config.TKeyLblProvider), "", container.NewVBox(sw.modeSelect, remoteForm, bundleForm))
}

// saveSettings persists the preferences and reloads the provider when its settings changed.
func (app *MyancalApp) saveSettings(sw *settingsWidgets, w fyne.Window) {
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUISet)

	mode := config.ProviderBundle
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeRemote) {
		mode = config.ProviderRemote
	}

	oldPort := app.EffectiveEnv().ServerPort

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetString(config.PrefProviderMode, mode)
	app.Preferences.SetString(config.PrefRemoteURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefBundlePath, sw.pathEntry.Text)

	port := NormalizeDigits(sw.entryPort.Text)
	if port != "" {
		app.Preferences.SetString(config.PrefServerPort, port)
		if port != oldPort {
			slog.Info(config.MsgRestartRequired,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyPort, port)
		}
	}

	if url := sw.urlEntry.Text; url != "" && sw.tokenEntry.Text != sw.savedToken {
		if err := provider.SaveToken(url, sw.tokenEntry.Text); err != nil {
			slog.Error(config.ErrKeyringSave, config.LogKeyError, err, config.LogKeyComponent, config.CompUISet)
		} else {
			app.RequestReload()
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	if app.view != nil {
		app.view.relabel()
	}
	app.signalConfig()

	w.Close()
}
