package provider_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"github.com/tartampluch/go-myancal/internal/provider"
)

var march1 = engine.CivilDate{Year: 2024, Month: time.March, Day: 1}

func loadBundle(t *testing.T, source string) *provider.Bundle {
	t.Helper()
	b := provider.NewBundle(source, provider.NewHTTPTransport(time.Second))
	require.NoError(t, b.Load(context.Background()))
	return b
}

func TestBundle_Formats(t *testing.T) {
	for _, file := range []string{"bundle.yaml", "bundle.json"} {
		t.Run(file, func(t *testing.T) {
			b := loadBundle(t, filepath.Join("testdata", file))

			c, err := b.Convert(march1)
			require.NoError(t, err)
			year, ok := c.Year.Get()
			require.True(t, ok)
			assert.Equal(t, 1385, year.Value, "numbers parse from both scalars and strings")
			day, _ := c.Day.Get()
			assert.Equal(t, engine.Numeral{Value: 5, Short: "5", Native: "၅"}, day)
			fortnight, _ := c.Fortnight.Get()
			assert.Equal(t, "Waning", fortnight.Short)

			got, err := b.BirthDayClass(2024, 6)
			require.NoError(t, err)
			assert.Equal(t, "Marana", got)

			got, err = b.Numerology(1)
			require.NoError(t, err)
			assert.Equal(t, "1 - Sun", got)

			got, err = b.ChineseZodiac(2024)
			require.NoError(t, err)
			assert.Equal(t, "Dragon", got)

			got, err = b.MyanmarZodiac(1, 3)
			require.NoError(t, err)
			assert.Equal(t, "Pisces", got)
		})
	}
}

func TestBundle_Misses(t *testing.T) {
	b := loadBundle(t, filepath.Join("testdata", "bundle.yaml"))

	c, err := b.Convert(engine.CivilDate{Year: 2024, Month: time.March, Day: 2})
	require.NoError(t, err)
	assert.False(t, c.MoonPhase.Present(), "day without mp has no moon phase")
	assert.False(t, c.Fortnight.Present())

	_, err = b.Convert(engine.CivilDate{Year: 2030, Month: time.January, Day: 1})
	assert.ErrorIs(t, err, engine.ErrUnavailable)

	_, err = b.Numerology(9)
	assert.ErrorIs(t, err, engine.ErrUnavailable)
	_, err = b.ChineseZodiac(1990)
	assert.ErrorIs(t, err, engine.ErrUnavailable)
	_, err = b.MyanmarZodiac(3, 1)
	assert.ErrorIs(t, err, engine.ErrUnavailable, "key is month/day, not day/month")
}

func TestBundle_NotLoaded(t *testing.T) {
	b := provider.NewBundle(filepath.Join("testdata", "bundle.yaml"), nil)

	_, err := b.Convert(march1)
	assert.ErrorIs(t, err, engine.ErrUnavailable)
	assert.Contains(t, err.Error(), config.ErrBundleNotLoaded)

	_, err = b.BirthDayClass(2024, 6)
	assert.ErrorIs(t, err, engine.ErrUnavailable)
}

func TestBundle_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("dates: [unclosed"), config.FilePermUserRW))

	tests := []struct {
		name    string
		source  string
		wantErr string
	}{
		{"Missing file", filepath.Join(dir, "absent.yaml"), config.ErrBundleRead},
		{"Malformed document", broken, config.ErrBundleParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.NewBundle(tt.source, nil).Load(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBundle_LoadFromURL(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "bundle.json"))
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer ts.Close()

	b := loadBundle(t, ts.URL+"/calendar.json")
	got, err := b.ChineseZodiac(2024)
	require.NoError(t, err)
	assert.Equal(t, "Dragon", got)
}

func TestParseBundle_FeedsEnricher(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "bundle.yaml"))
	require.NoError(t, err)
	b, err := provider.ParseBundle(data)
	require.NoError(t, err)

	e := &engine.Enricher{Converter: b, Astrologer: b}
	cell := e.Enrich(march1, march1.YearMonth(), march1)

	assert.Equal(t, "တပေါင်း", cell.Myanmar.Month.Native)
	assert.Equal(t, "Marana", cell.Astro.BirthDayClass, "March 1st 2024 is a Friday, weekday 6")
	assert.Equal(t, "1 - Sun", cell.Astro.Numerology)
	assert.Equal(t, "Dragon", cell.Astro.ChineseZodiac)
	assert.Equal(t, "Pisces", cell.Astro.MyanmarZodiac)
}
