package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"github.com/tartampluch/go-myancal/internal/export"
)

// rendition is one encoded form of the grid with its HTTP cache metadata.
type rendition struct {
	data []byte
	etag string
}

func newRendition(data []byte) rendition {
	hash := sha256.Sum256(data)
	return rendition{data: data, etag: fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))}
}

// snapshot holds every rendition of one grid so a reader never mixes two months.
type snapshot struct {
	ics          rendition
	json         rendition
	lastModified string // RFC1123 format required by HTTP headers
}

// CalendarServer publishes the currently displayed month on localhost.
type CalendarServer struct {
	// Read on every request, written on navigation only.
	cache atomic.Pointer[snapshot]
	Port  string
	Clock engine.Clock
}

// NewCalendarServer creates a new instance of the server.
func NewCalendarServer(port string) *CalendarServer {
	return &CalendarServer{
		Port:  port,
		Clock: engine.RealClock{},
	}
}

// Handler returns the routes of the server.
func (s *CalendarServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRootExact, s.handle(config.MimeTextCalendar, func(sn *snapshot) rendition { return sn.ics }))
	mux.HandleFunc(config.RouteGridJSON, s.handle(config.MimeJSON, func(sn *snapshot) rendition { return sn.json }))
	return mux
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *CalendarServer) Start(ctx context.Context) error {
	if s.Port == "" {
		return errors.New(config.ErrPortRequired)
	}

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update renders grid and atomically replaces the served content.
// Its signature matches the Navigator's change subscriber.
func (s *CalendarServer) Update(grid *engine.MonthGrid) {
	now := s.Clock.Now()

	ics, err := export.ICS(grid, now)
	if err != nil {
		slog.Error(config.ErrICalEncode, config.LogKeyComponent, config.CompServer, config.LogKeyError, err)
		return
	}
	var buf bytes.Buffer
	if err := export.JSON(&buf, grid); err != nil {
		slog.Error(config.ErrJSONEncode, config.LogKeyComponent, config.CompServer, config.LogKeyError, err)
		return
	}

	sn := &snapshot{
		ics:          newRendition(ics),
		json:         newRendition(buf.Bytes()),
		lastModified: now.UTC().Format(http.TimeFormat),
	}
	s.cache.Store(sn)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyMonth, grid.Month.String(),
		config.LogKeySizeBytes, len(sn.ics.data),
		config.LogKeyETag, sn.ics.etag,
	)
}

// handle serves the rendition chosen by pick with HTTP caching support.
func (s *CalendarServer) handle(mime string, pick func(*snapshot) rendition) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set(config.HeaderAllow, config.AllowedMethods)
			http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
			return
		}

		sn := s.cache.Load()
		if sn == nil {
			w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
			http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
			return
		}
		item := pick(sn)

		w.Header().Set(config.HeaderContentType, mime)
		w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
		w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
		w.Header().Set(config.HeaderETag, item.etag)
		w.Header().Set(config.HeaderLastModified, sn.lastModified)

		if match := r.Header.Get(config.HeaderIfNoneMatch); match != "" {
			if match == item.etag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		} else if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
			if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
				if serverTime, err := time.Parse(http.TimeFormat, sn.lastModified); err == nil {
					if !serverTime.After(clientTime) {
						w.WriteHeader(http.StatusNotModified)
						return
					}
				}
			}
		}

		if r.Method == http.MethodGet {
			if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
				slog.Error(config.ErrWriteResp,
					config.LogKeyComponent, config.CompServer,
					config.LogKeyError, err,
				)
			}
		}
	}
}
