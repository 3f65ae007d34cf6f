package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Myancal/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Myanmar Calendar"
	AppID             = "com.github.tartampluch.go-myancal"
	CLIName           = "myancal"
	KeyringService    = "com.github.tartampluch.go-myancal"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for logs and exported files.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
	FormatVersionCLI = "%s (commit %s, built %s)"

	// Headless CLI (cobra)
	CmdGrid        = "grid"
	CmdExport      = "export"
	CmdDay         = "day"
	FlagMonth      = "month"
	FlagToday      = "today"
	FlagDate       = "date"
	FlagFormat     = "format"
	FlagOut        = "out"
	CmdDescRoot    = "Myanmar calendar month grids from the command line"
	CmdDescGrid    = "Print the 6x7 month grid with Myanmar dates"
	CmdDescExport  = "Export a month grid as ics, csv or json"
	CmdDescDay     = "Print the enriched record of a single day"
	CmdUseDay      = "day --date YYYY-MM-DD"
	FlagDescMonth  = "Displayed month (YYYY-MM), defaults to the current month, clamped to the navigable range"
	FlagDescToday  = "Override today's date (YYYY-MM-DD)"
	FlagDescDate   = "Civil date to enrich (YYYY-MM-DD), within the navigable range"
	FlagDescFormat = "Output format: ics, csv or json"
	FlagDescOut    = "Output file (stdout when empty)"
	FormatICS      = "ics"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatGridText = "%s%s %s" // mark, moon phase, day (short)
	JSONIndent     = "  "
)

// -----------------------------------------------------------------------------
// Calendar Grid & Navigation
// -----------------------------------------------------------------------------

const (
	// GridCells is the fixed number of cells of a month view: six weeks of seven days.
	// 42 always holds a 31-day month starting on Saturday.
	GridCells   = 42
	DaysPerWeek = 7
	GridWeeks   = GridCells / DaysPerWeek

	// MinYear is the first navigable Gregorian year.
	MinYear = 1885

	// YearCeilingOffset is added to the current year to obtain the last navigable year.
	YearCeilingOffset = 100

	// DayCheckInterval is how often the worker checks for a civil date rollover.
	DayCheckInterval = 1 * time.Minute

	// RemoteCooldown is how long the remote provider stops calling the service after a failure.
	RemoteCooldown = 30 * time.Second
)

// -----------------------------------------------------------------------------
// Unknown Sentinels
// -----------------------------------------------------------------------------

const (
	// UnknownShort replaces any short-form value the collaborators could not provide.
	UnknownShort = "Unknown"
	// UnknownNative replaces any Myanmar-script value the collaborators could not provide.
	UnknownNative = "အမည်မသိ"
)

// -----------------------------------------------------------------------------
// Collaborator Providers
// -----------------------------------------------------------------------------

const (
	ProviderRemote = "remote"
	ProviderBundle = "bundle"

	// Remote service routes (mycal/baydin compatible JSON API).
	RouteHealth        = "/v1/health"
	RouteConvert       = "/v1/convert"
	RouteMaharbote     = "/v1/maharbote"
	RouteNumerology    = "/v1/numerology"
	RouteChineseZodiac = "/v1/chinese-zodiac"
	RouteZodiac        = "/v1/zodiac"

	QueryDate    = "date"
	QueryYear    = "year"
	QueryWeekday = "weekday"
	QueryDay     = "day"
	QueryMonth   = "month"

	AuthBearerPrefix = "Bearer "

	// Collaborator operation names, used in guarded-call errors.
	OpConvert       = "convert"
	OpBirthDayClass = "birth_day_class"
	OpNumerology    = "numerology"
	OpChineseZodiac = "chinese_zodiac"
	OpMyanmarZodiac = "myanmar_zodiac"

	// Bundle lookup key layouts.
	FormatBundleMaharbote = "%d/%d" // year/weekday
	FormatBundleZodiac    = "%d/%d" // month/day
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 900
	MainWindowHeight    = 640
	SettingsWindowWidth = 600
	DetailDialogWidth   = 420

	// Preference Keys
	PrefLanguage     = "language"
	PrefProviderMode = "provider_mode"
	PrefRemoteURL    = "remote_url"
	PrefBundlePath   = "bundle_path"
	PrefServerPort   = "server_port"
	PrefLastRun      = "last_run_version"

	// Keyboard shortcuts
	KeyToday = "T"

	// Detail dialog
	FormatDetailValue = "%s (%s)"  // native (short)
	FormatMyanmarDate = "%s %s %s" // month, moon phase, day
	TileTextSizeDay   = 18
	TileTextSizeSub   = 11
	FormatTileSub     = "%s %s" // moon phase, day (native)
)

// SupportedLanguages defines the list of available UI languages.
var SupportedLanguages = []string{"en", "my"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinSettings    = "win_settings_title"
	TKeyMenuOpen       = "menu_open"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayToday      = "tray_today" // Requires Month, Phase, Day
	TKeyBtnPrev        = "btn_prev"
	TKeyBtnNext        = "btn_next"
	TKeyBtnToday       = "btn_today"
	TKeyBtnClose       = "btn_close"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblLoading     = "lbl_loading"
	TKeyLblLoadFailed  = "lbl_load_failed"
	TKeyLblTip         = "lbl_tip"
	TKeyLblAstro       = "lbl_astro"
	TKeyLblMaharbote   = "lbl_maharbote"
	TKeyLblNumerology  = "lbl_numerology"
	TKeyLblChinese     = "lbl_chinese_zodiac"
	TKeyLblZodiac      = "lbl_myanmar_zodiac"
	TKeyLblMyanmarYear = "lbl_myanmar_year"
	TKeyLblGregorian   = "lbl_gregorian"
	TKeyLblMyanmarDate = "lbl_myanmar_date"
	TKeyLblFortnight   = "lbl_fortnight"
	TKeyLblLanguage    = "lbl_language"
	TKeyLblProvider    = "lbl_provider"
	TKeyLblURL         = "lbl_url"
	TKeyLblToken       = "lbl_token"
	TKeyLblBundle      = "lbl_bundle"
	TKeyLblPort        = "lbl_server_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyLblFooter      = "lbl_footer"
	TKeyModeRemote     = "mode_remote"
	TKeyModeBundle     = "mode_bundle"
	TKeyFormatDateLong = "format_date_long" // Go layout for the detail dialog title
	TKeyErrPortReq     = "err_port_required"
	TKeyErrPortNum     = "err_port_number"
	TKeyErrPortRange   = "err_port_range"

	// Month and weekday names use an index suffix: month_1..month_12, weekday_0..weekday_6.
	TKeyMonthPrefix   = "month_"
	TKeyWeekdayPrefix = "weekday_"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultProvider       = ProviderBundle
	DefaultPort           = "18081"
	DefaultLanguage       = "en"
	DefaultHTTPTimeoutSec = 15
	UIDSalt               = "go-myancal-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Myanmar Calendar//Grid//EN"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gomyancal"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	DefaultICalRefresh = 24 * time.Hour
	FormatICalCalName  = "Myanmar Calendar %s" // Requires YearMonth
	FormatICalSummary  = "%s %s %s"            // month, moon phase, day (native)
	FormatICalDesc     = "%s %s %s, %s %d\n%s: %s\n%s: %s\n%s: %s\n%s: %s"
	ICalCategory       = "MYANMAR-CALENDAR"

	// Astrology labels of the event description
	ICalLblMaharbote  = "Maharbote"
	ICalLblNumerology = "Numerology"
	ICalLblChinese    = "Chinese zodiac"
	ICalLblZodiac     = "Zodiac"
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatCivil     = "2006-01-02"
	DateFormatYearMonth = "2006-01"

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%s@%s"

	// File Extensions
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtJSON = ".json"

	// Text grid rendering (CLI). A cell is the day number, a space, the padded
	// text and a separator: GridCellWidth runes, the width of a header column.
	FormatGridCell    = "%2d %-16s "
	FormatGridHeader  = "%-20s"
	GridCellTextWidth = 16
	GridCellWidth     = 2 + 1 + GridCellTextWidth + 1
	GridOutsideMark   = "·"
	GridTodayMark     = "*"
	GridEllipsis      = "…"

	// Port limits
	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB, a full bundle fits comfortably
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteRoot           = "/"
	RouteGridJSON       = "/grid.json"
	RouteRootExact      = "/{$}"
	AddrSeparator       = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderAuthorization   = "Authorization"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnavailable      = "calendar data unavailable"
	ErrCollabPanic      = "collaborator panicked"
	ErrGridDefect       = "month grid arithmetic defect"
	ErrProviderUnknown  = "configuration error: unsupported provider"
	ErrRemoteURLEmpty   = "configuration error: remote URL is empty"
	ErrBundleEmpty      = "configuration error: bundle source is empty"
	ErrBundleNotLoaded  = "bundle not loaded"
	ErrBundleParse      = "failed to parse calendar bundle"
	ErrBundleRead       = "failed to read calendar bundle"
	ErrRemoteStatus     = "calendar service returned unexpected status"
	ErrRemoteDecode     = "failed to decode calendar service response"
	ErrRemoteRequest    = "calendar service request failed"
	ErrRemoteDown       = "calendar service suspended after a failure"
	ErrDateOutOfRange   = "date outside the supported range"
	ErrEnvParse         = "failed to parse environment configuration"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrCSVEncode        = "failed to encode CSV data"
	ErrJSONEncode       = "failed to encode JSON data"
	ErrDateParse        = "unable to parse date"
	ErrMonthParse       = "unable to parse month"
	ErrFormatUnknown    = "unsupported export format"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrWriteOutput      = "failed to write output"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrKeyringSave      = "failed to save token to keyring"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackTrayLabel = "Go Myanmar Calendar"
	FallbackTrayToday = "%s %s %s" // month, moon phase, day (native)

	TitleStartupError = "Startup Error"
	MsgPortBusy       = "Port %s is busy or unavailable."

	MsgAppStop          = "Application stopped gracefully"
	MsgAppStarting      = "Starting application"
	MsgCtxCancel        = "Context cancelled, shutting down UI"
	MsgProviderLoading  = "Loading calendar provider"
	MsgProviderReady    = "Calendar provider ready"
	MsgProviderFailed   = "Calendar provider failed to load, rendering sentinels"
	MsgEnrichDegraded   = "Day enrichment degraded"
	MsgGridBuilt        = "Month grid built"
	MsgNavigate         = "Displayed month changed"
	MsgNavClamped       = "Navigation clamped to supported range"
	MsgDayRollover      = "Civil date changed, rebuilding grid"
	MsgWorkerStart      = "Background worker started"
	MsgWorkerStop       = "Worker stopping due to context cancellation"
	MsgServerListen     = "HTTP server listening"
	MsgServerStop       = "Shutting down HTTP server..."
	MsgCacheUpdated     = "Grid snapshot updated"
	MsgLocaleSkip       = "Skipping non-locale file"
	MsgLocaleBadName    = "Skipping malformed locale filename"
	MsgLocaleLoaded     = "Locale loaded successfully"
	MsgTransMissing     = "Missing translation key"
	MsgTokenMissing     = "No token in keyring (might be empty)"
	MsgBundleLoaded     = "Calendar bundle loaded"
	MsgRemoteCall       = "Calling calendar service"
	MsgRemoteHealthy    = "Calendar service healthy"
	MsgRemoteSuspended  = "Calendar service failed, suspending lookups"
	MsgLogWarning       = "Warning: %s at %s: %v\n"
	MsgOpenDetail       = "Opening day detail"
	MsgGridRendered     = "Month grid rendered"
	MsgSettingsSaved    = "Saving preferences"
	MsgSettingsOpen     = "Opening settings window"
	MsgSettingsFocus    = "Settings window already open, requesting focus"
	MsgRestartRequired  = "Server port change applies on next start"
	MsgExported         = "Month grid exported"
	PlaceholderURL      = "https://..."
	PlaceholderBundle   = "/path/to/calendar.yaml"
	FormatMonthYearHead = "%s %d"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyProvider  = "provider"
	LogKeySource    = "source"
	LogKeyMonth     = "month"
	LogKeyDate      = "date"
	LogKeyToday     = "today"
	LogKeyLeading   = "leading"
	LogKeyTrailing  = "trailing"
	LogKeyRequested = "requested"
	LogKeyClamped   = "clamped"
	LogKeyInterval  = "interval"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyCount     = "count"
	LogKeyRoute     = "route"
	LogKeyFailures  = "failures"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
	LogKeyConfig  = "config"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI       = "ui"
	CompUISet    = "ui_settings"
	CompEngine   = "engine"
	CompNav      = "navigator"
	CompServer   = "server"
	CompProvider = "provider"
	CompExport   = "export"
	CompWorker   = "worker"
	CompMain     = "main"
	CompCLI      = "cli"
	CompI18n     = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
