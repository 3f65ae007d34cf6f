package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
)

// Navigator holds the displayed month and its grid.
// Mutations are serialized and each one publishes a fully built grid;
// readers load the latest snapshot without locking.
type Navigator struct {
	builder GridBuilder
	clock   Clock

	// OnChange is called with every newly published grid, on the mutating goroutine.
	OnChange func(*MonthGrid)

	mu      sync.Mutex
	current YearMonth // GUARDED_BY(mu)
	grid    atomic.Pointer[MonthGrid]
}

// NewNavigator builds the grid for today's month.
func NewNavigator(builder GridBuilder, clock Clock, onChange func(*MonthGrid)) *Navigator {
	return newNavigator(builder, clock, nil, onChange)
}

// NewNavigatorAt starts on start, clamped to the navigable range.
// Only one grid is built.
func NewNavigatorAt(builder GridBuilder, clock Clock, start YearMonth, onChange func(*MonthGrid)) *Navigator {
	return newNavigator(builder, clock, &start, onChange)
}

func newNavigator(builder GridBuilder, clock Clock, start *YearMonth, onChange func(*MonthGrid)) *Navigator {
	if clock == nil {
		clock = RealClock{}
	}
	n := &Navigator{builder: builder, clock: clock, OnChange: onChange}
	n.update(func(_, todayMonth YearMonth) YearMonth {
		if start != nil {
			return *start
		}
		return todayMonth
	})
	return n
}

// Current returns the displayed month.
func (n *Navigator) Current() YearMonth {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Grid returns the latest published snapshot.
func (n *Navigator) Grid() *MonthGrid {
	return n.grid.Load()
}

// Bounds returns the first and last navigable months for the clock's current year.
func (n *Navigator) Bounds() (lo, hi YearMonth) {
	return BoundsFor(Today(n.clock))
}

// BoundsFor returns the first and last navigable months as seen on day today.
func BoundsFor(today CivilDate) (lo, hi YearMonth) {
	return YearMonth{Year: config.MinYear, Month: time.January},
		YearMonth{Year: today.Year + config.YearCeilingOffset, Month: time.December}
}

// Years lists the navigable years in ascending order, for the year picker.
func (n *Navigator) Years() []int {
	lo, hi := n.Bounds()
	years := make([]int, 0, hi.Year-lo.Year+1)
	for y := lo.Year; y <= hi.Year; y++ {
		years = append(years, y)
	}
	return years
}

// IsShowingToday reports whether the displayed month contains today.
func (n *Navigator) IsShowingToday() bool {
	return n.Current().Contains(Today(n.clock))
}

func (n *Navigator) GoToPrevious() {
	n.update(func(cur, _ YearMonth) YearMonth { return cur.Previous() })
}

func (n *Navigator) GoToNext() {
	n.update(func(cur, _ YearMonth) YearMonth { return cur.Next() })
}

func (n *Navigator) GoToToday() {
	n.update(func(_, todayMonth YearMonth) YearMonth { return todayMonth })
}

// SetMonth keeps the displayed year. Values outside 1..12 roll over into adjacent years.
func (n *Navigator) SetMonth(m time.Month) {
	n.update(func(cur, _ YearMonth) YearMonth { return NewYearMonth(cur.Year, m) })
}

// SetYear keeps the displayed month.
func (n *Navigator) SetYear(year int) {
	n.update(func(cur, _ YearMonth) YearMonth { return YearMonth{Year: year, Month: cur.Month} })
}

// Refresh rebuilds the displayed month with a fresh "today", e.g. after midnight.
func (n *Navigator) Refresh() {
	n.update(func(cur, _ YearMonth) YearMonth { return cur })
}

func (n *Navigator) update(next func(cur, todayMonth YearMonth) YearMonth) {
	n.mu.Lock()
	today := Today(n.clock)
	requested := next(n.current, today.YearMonth())
	target := Clamp(requested, today)
	if target != requested {
		slog.Debug(config.MsgNavClamped,
			config.LogKeyComponent, config.CompNav,
			config.LogKeyRequested, requested.String(),
			config.LogKeyClamped, target.String(),
		)
	}

	g := n.builder.BuildMonthGrid(target, today)
	n.current = target
	n.grid.Store(g)
	cb := n.OnChange
	n.mu.Unlock()

	slog.Debug(config.MsgNavigate,
		config.LogKeyComponent, config.CompNav,
		config.LogKeyMonth, target.String(),
	)
	// A concurrent mutation may already have replaced g; its own notification follows.
	if cb != nil && n.grid.Load() == g {
		cb(g)
	}
}

// Clamp pins ym to the navigable range as seen on day today.
func Clamp(ym YearMonth, today CivilDate) YearMonth {
	lo, hi := BoundsFor(today)
	if ym.Before(lo) {
		return lo
	}
	if hi.Before(ym) {
		return hi
	}
	return ym
}
