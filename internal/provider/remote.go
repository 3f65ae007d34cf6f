package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
)

// Remote queries a mycal/baydin compatible JSON service.
// Answers are deterministic per input, so successful lookups and misses are memoized.
// A transport failure suspends all lookups for config.RemoteCooldown.
type Remote struct {
	// Clock drives the failure cooldown. Defaults to engine.RealClock.
	Clock engine.Clock

	ctx       context.Context
	base      string
	token     string
	transport *HTTPTransport

	mu        sync.Mutex
	memo      map[string][]byte // GUARDED_BY(mu), nil value means "not found"
	downUntil time.Time         // GUARDED_BY(mu)
}

// NewRemote creates an adapter for the service rooted at baseURL.
// Lookups are bound to ctx and fail once it is cancelled.
func NewRemote(ctx context.Context, baseURL, token string, transport *HTTPTransport) *Remote {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Remote{
		Clock:     engine.RealClock{},
		ctx:       ctx,
		base:      strings.TrimRight(baseURL, "/"),
		token:     token,
		transport: transport,
		memo:      make(map[string][]byte),
	}
}

func (r *Remote) Name() string {
	return config.ProviderRemote
}

// Load checks that the service answers its health probe within ctx.
// A healthy answer clears any pending cooldown.
func (r *Remote) Load(ctx context.Context) error {
	slog.Info(config.MsgProviderLoading,
		config.LogKeyComponent, config.CompProvider,
		config.LogKeyProvider, r.Name(),
		config.LogKeyURL, r.base)

	rc, err := r.transport.Get(ctx, r.base+config.RouteHealth, r.token)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()

	r.mu.Lock()
	r.downUntil = time.Time{}
	r.mu.Unlock()

	slog.Info(config.MsgRemoteHealthy, config.LogKeyComponent, config.CompProvider)
	return nil
}

// fetch returns the body for route+query, or a nil body when the service has no data.
func (r *Remote) fetch(route string, query url.Values) ([]byte, error) {
	target := r.base + route + "?" + query.Encode()

	now := r.Clock.Now()

	r.mu.Lock()
	body, hit := r.memo[target]
	down := now.Before(r.downUntil)
	r.mu.Unlock()
	if hit {
		return body, nil
	}
	if down {
		return nil, fmt.Errorf("%s: %w", config.ErrRemoteDown, engine.ErrUnavailable)
	}

	start := time.Now()
	rc, err := r.transport.Get(r.ctx, target, r.token)
	slog.Debug(config.MsgRemoteCall,
		config.LogKeyComponent, config.CompProvider,
		config.LogKeyRoute, route,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	switch {
	case IsNotFound(err):
		body = nil
	case err != nil:
		r.suspend(now, route, err)
		return nil, err
	default:
		body, err = io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrRemoteRequest, err)
		}
	}

	r.mu.Lock()
	r.memo[target] = body
	r.mu.Unlock()
	return body, nil
}

// suspend starts a cooldown unless one is already running.
func (r *Remote) suspend(now time.Time, route string, cause error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if now.Before(r.downUntil) {
		return
	}
	r.downUntil = now.Add(config.RemoteCooldown)
	slog.Warn(config.MsgRemoteSuspended,
		config.LogKeyComponent, config.CompProvider,
		config.LogKeyRoute, route,
		config.LogKeyError, cause)
}

func (r *Remote) Convert(d engine.CivilDate) (engine.Conversion, error) {
	body, err := r.fetch(config.RouteConvert, url.Values{config.QueryDate: {d.String()}})
	if err != nil {
		return engine.Conversion{}, err
	}
	if body == nil {
		return engine.Conversion{}, unavailable(config.OpConvert)
	}

	var w wireDate
	if err := json.Unmarshal(body, &w); err != nil {
		return engine.Conversion{}, fmt.Errorf("%s: %w", config.ErrRemoteDecode, err)
	}
	return w.conversion(), nil
}

func (r *Remote) label(op, route string, query url.Values) (string, error) {
	body, err := r.fetch(route, query)
	if err != nil {
		return "", err
	}
	if body == nil {
		return "", unavailable(op)
	}

	var w wireLabel
	if err := json.Unmarshal(body, &w); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrRemoteDecode, err)
	}
	if w.Label == "" {
		return "", unavailable(op)
	}
	return w.Label, nil
}

func (r *Remote) BirthDayClass(year, weekday int) (string, error) {
	return r.label(config.OpBirthDayClass, config.RouteMaharbote, url.Values{
		config.QueryYear:    {strconv.Itoa(year)},
		config.QueryWeekday: {strconv.Itoa(weekday)},
	})
}

func (r *Remote) Numerology(day int) (string, error) {
	return r.label(config.OpNumerology, config.RouteNumerology, url.Values{
		config.QueryDay: {strconv.Itoa(day)},
	})
}

func (r *Remote) ChineseZodiac(year int) (string, error) {
	return r.label(config.OpChineseZodiac, config.RouteChineseZodiac, url.Values{
		config.QueryYear: {strconv.Itoa(year)},
	})
}

func (r *Remote) MyanmarZodiac(day, month int) (string, error) {
	return r.label(config.OpMyanmarZodiac, config.RouteZodiac, url.Values{
		config.QueryDay:   {strconv.Itoa(day)},
		config.QueryMonth: {strconv.Itoa(month)},
	})
}
