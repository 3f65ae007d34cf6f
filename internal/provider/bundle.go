package provider

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"gopkg.in/yaml.v2"
)

// bundleDoc is a precomputed calendar dataset. JSON documents parse as YAML.
type bundleDoc struct {
	Dates         map[string]wireDate `yaml:"dates"`          // YYYY-MM-DD
	Maharbote     map[string]string   `yaml:"maharbote"`      // year/weekday
	Numerology    map[string]string   `yaml:"numerology"`     // day
	ChineseZodiac map[string]string   `yaml:"chinese_zodiac"` // year
	Zodiac        map[string]string   `yaml:"zodiac"`         // month/day
}

// Bundle serves lookups from a dataset loaded once from a file or an http(s) URL.
type Bundle struct {
	source    string
	transport *HTTPTransport
	doc       atomic.Pointer[bundleDoc]
}

// NewBundle creates an adapter reading source on Load.
func NewBundle(source string, transport *HTTPTransport) *Bundle {
	return &Bundle{source: source, transport: transport}
}

// ParseBundle builds an already loaded Bundle from raw document bytes.
func ParseBundle(data []byte) (*Bundle, error) {
	b := &Bundle{}
	if err := b.parse(data); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Bundle) Name() string {
	return config.ProviderBundle
}

// Load reads and parses the dataset. Lookups made before a successful Load are unavailable.
func (b *Bundle) Load(ctx context.Context) error {
	slog.Info(config.MsgProviderLoading,
		config.LogKeyComponent, config.CompProvider,
		config.LogKeyProvider, b.Name(),
		config.LogKeySource, b.source)

	rc, err := b.open(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBundleRead, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, config.MaxHTTPResponseSize))
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrBundleRead, err)
	}
	return b.parse(data)
}

func (b *Bundle) open(ctx context.Context) (io.ReadCloser, error) {
	if strings.HasPrefix(b.source, config.SchemeHTTP+"://") || strings.HasPrefix(b.source, config.SchemeHTTPS+"://") {
		return b.transport.Get(ctx, b.source, "")
	}
	return os.Open(b.source)
}

func (b *Bundle) parse(data []byte) error {
	doc := &bundleDoc{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBundleParse, err)
	}
	b.doc.Store(doc)

	slog.Info(config.MsgBundleLoaded,
		config.LogKeyComponent, config.CompProvider,
		config.LogKeyCount, len(doc.Dates),
		config.LogKeySizeBytes, len(data))
	return nil
}

func (b *Bundle) loaded(op string) (*bundleDoc, error) {
	doc := b.doc.Load()
	if doc == nil {
		return nil, fmt.Errorf("%s: %s: %w", config.ErrBundleNotLoaded, op, engine.ErrUnavailable)
	}
	return doc, nil
}

func (b *Bundle) Convert(d engine.CivilDate) (engine.Conversion, error) {
	doc, err := b.loaded(config.OpConvert)
	if err != nil {
		return engine.Conversion{}, err
	}
	w, ok := doc.Dates[d.String()]
	if !ok {
		return engine.Conversion{}, unavailable(config.OpConvert)
	}
	return w.conversion(), nil
}

func (b *Bundle) lookup(op string, section func(*bundleDoc) map[string]string, key string) (string, error) {
	doc, err := b.loaded(op)
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(section(doc)[key])
	if v == "" {
		return "", unavailable(op)
	}
	return v, nil
}

func (b *Bundle) BirthDayClass(year, weekday int) (string, error) {
	return b.lookup(config.OpBirthDayClass, func(d *bundleDoc) map[string]string { return d.Maharbote },
		fmt.Sprintf(config.FormatBundleMaharbote, year, weekday))
}

func (b *Bundle) Numerology(day int) (string, error) {
	return b.lookup(config.OpNumerology, func(d *bundleDoc) map[string]string { return d.Numerology },
		strconv.Itoa(day))
}

func (b *Bundle) ChineseZodiac(year int) (string, error) {
	return b.lookup(config.OpChineseZodiac, func(d *bundleDoc) map[string]string { return d.ChineseZodiac },
		strconv.Itoa(year))
}

func (b *Bundle) MyanmarZodiac(day, month int) (string, error) {
	return b.lookup(config.OpMyanmarZodiac, func(d *bundleDoc) map[string]string { return d.Zodiac },
		fmt.Sprintf(config.FormatBundleZodiac, month, day))
}
