package engine_test

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	mu          sync.Mutex
	CurrentTime time.Time
}

func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CurrentTime
}

func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CurrentTime = t
}

func clockAt(y int, mo time.Month, d int) *MockClock {
	return &MockClock{CurrentTime: time.Date(y, mo, d, 12, 0, 0, 0, time.Local)}
}

// MockAstrologer records astrology calls using `testify/mock`.
type MockAstrologer struct {
	mock.Mock
}

func (m *MockAstrologer) BirthDayClass(year, weekday int) (string, error) {
	args := m.Called(year, weekday)
	return args.String(0), args.Error(1)
}

func (m *MockAstrologer) Numerology(day int) (string, error) {
	args := m.Called(day)
	return args.String(0), args.Error(1)
}

func (m *MockAstrologer) ChineseZodiac(year int) (string, error) {
	args := m.Called(year)
	return args.String(0), args.Error(1)
}

func (m *MockAstrologer) MyanmarZodiac(day, month int) (string, error) {
	args := m.Called(day, month)
	return args.String(0), args.Error(1)
}

// stubCalendar is a deterministic converter and astrologer.
// Its failure knobs let tests break a single operation.
type stubCalendar struct {
	numerologyErr   error
	numerologyPanic bool
	convertPanic    bool
	convertErr      error
	partial         bool // omit Fortnight and the native day

	converts atomic.Int64
}

func (s *stubCalendar) Convert(d engine.CivilDate) (engine.Conversion, error) {
	s.converts.Add(1)
	if s.convertPanic {
		panic("converter exploded")
	}
	if s.convertErr != nil {
		return engine.Conversion{}, s.convertErr
	}
	c := engine.Conversion{
		Year:      engine.Some(engine.Numeral{Value: d.Year - 638, Short: strconv.Itoa(d.Year - 638), Native: "၁၃၈၅"}),
		Month:     engine.Some(engine.Label{Short: "Tabodwe", Native: "တပို့တွဲ"}),
		Day:       engine.Some(engine.Numeral{Value: d.Day, Short: strconv.Itoa(d.Day), Native: "၁၅"}),
		MoonPhase: engine.Some(engine.Label{Short: "Waxing", Native: "လဆန်း"}),
		Fortnight: engine.Some(engine.Label{Short: "First", Native: "လဆန်း"}),
	}
	if s.partial {
		c.Fortnight = engine.Unavailable[engine.Label]()
		c.Day = engine.Some(engine.Numeral{Value: d.Day, Short: strconv.Itoa(d.Day)})
	}
	return c, nil
}

func (s *stubCalendar) BirthDayClass(year, weekday int) (string, error) {
	return fmt.Sprintf("class-%d-%d", year, weekday), nil
}

func (s *stubCalendar) Numerology(day int) (string, error) {
	if s.numerologyPanic {
		panic("numerology exploded")
	}
	if s.numerologyErr != nil {
		return "", s.numerologyErr
	}
	return fmt.Sprintf("num-%d", day), nil
}

func (s *stubCalendar) ChineseZodiac(year int) (string, error) {
	return fmt.Sprintf("cz-%d", year), nil
}

func (s *stubCalendar) MyanmarZodiac(day, month int) (string, error) {
	return fmt.Sprintf("mz-%d-%d", month, day), nil
}

func newStubEnricher(s *stubCalendar) *engine.Enricher {
	return &engine.Enricher{Converter: s, Astrologer: s}
}

var errBoom = errors.New("boom")
