package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-myancal/internal/config"
	"github.com/tartampluch/go-myancal/internal/engine"
	"github.com/tartampluch/go-myancal/internal/export"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestServer() *CalendarServer {
	srv := NewCalendarServer("0") // Port irrelevant for handler tests
	srv.Clock = fixedClock{time.Date(2024, time.February, 14, 9, 0, 0, 0, time.UTC)}
	return srv
}

// grid builds a month without collaborators: every Myanmar field is the sentinel.
func grid(y int, m time.Month) *engine.MonthGrid {
	return (&engine.Enricher{}).BuildMonthGrid(engine.YearMonth{Year: y, Month: m}, engine.CivilDate{Year: 2024, Month: time.February, Day: 14})
}

func serve(srv *CalendarServer, req *http.Request) *http.Response {
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w.Result()
}

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

func TestHandler_ServingICS(t *testing.T) {
	srv := newTestServer()
	srv.Update(grid(2024, time.February))

	resp := serve(srv, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
	assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
	assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")
	assert.Contains(t, string(body), "Myanmar Calendar 2024-02")
}

func TestHandler_ServingJSON(t *testing.T) {
	srv := newTestServer()
	srv.Update(grid(2024, time.February))

	resp := serve(srv, httptest.NewRequest(http.MethodGet, config.RouteGridJSON, nil))
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))

	var doc export.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2024-02", doc.Month)
	assert.Len(t, doc.Cells, config.GridCells)
}

func TestHandler_UnknownPath(t *testing.T) {
	srv := newTestServer()
	srv.Update(grid(2024, time.February))

	resp := serve(srv, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// TestHandler_Caching verifies ETag (If-None-Match) and Last-Modified handling.
func TestHandler_Caching(t *testing.T) {
	srv := newTestServer()
	srv.Update(grid(2024, time.February))

	first := serve(srv, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))
	etag := first.Header.Get(config.HeaderETag)
	lastMod := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag, "Server must provide an ETag")
	require.NotEmpty(t, lastMod)

	t.Run("Matching ETag", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
		req.Header.Set(config.HeaderIfNoneMatch, etag)
		resp := serve(srv, req)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Empty(t, body, "Body must be empty on 304 Not Modified")
	})

	t.Run("ETag is per representation", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteGridJSON, nil)
		req.Header.Set(config.HeaderIfNoneMatch, etag)
		resp := serve(srv, req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("If-Modified-Since", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
		req.Header.Set(config.HeaderIfModifiedSince, lastMod)
		resp := serve(srv, req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})

	t.Run("New month changes the ETag", func(t *testing.T) {
		srv.Update(grid(2024, time.March))
		req := httptest.NewRequest(http.MethodGet, config.RouteRoot, nil)
		req.Header.Set(config.HeaderIfNoneMatch, etag)
		resp := serve(srv, req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEqual(t, etag, resp.Header.Get(config.HeaderETag))
	})
}

func TestHandler_Head(t *testing.T) {
	srv := newTestServer()
	srv.Update(grid(2024, time.February))

	resp := serve(srv, httptest.NewRequest(http.MethodHead, config.RouteRoot, nil))
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := newTestServer()

	resp := serve(srv, httptest.NewRequest(http.MethodPost, config.RouteGridJSON, nil))
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(config.HeaderAllow))
}

// TestHandler_Initializing verifies the 503 behavior when no grid was published yet.
func TestHandler_Initializing(t *testing.T) {
	srv := newTestServer()

	for _, route := range []string{config.RouteRoot, config.RouteGridJSON} {
		resp := serve(srv, httptest.NewRequest(http.MethodGet, route, nil))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
		_ = resp.Body.Close()
	}
}

func TestUpdate_AsNavigatorSubscriber(t *testing.T) {
	srv := newTestServer()
	nav := engine.NewNavigator(&engine.Enricher{}, srv.Clock, srv.Update)

	nav.GoToNext()
	resp := serve(srv, httptest.NewRequest(http.MethodGet, config.RouteGridJSON, nil))
	defer func() { _ = resp.Body.Close() }()

	var doc export.Document
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2024-03", doc.Month)
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition runs writers and readers concurrently. Run with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := newTestServer()
	handler := srv.Handler()
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 3; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			m := time.Month(id + 1)
			for time.Now().Before(end) {
				srv.Update(grid(2024, m))
				m = m%12 + 1
			}
		}(w)
	}

	for r := 0; r < 10; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, config.RouteRoot, nil))

				if w.Code != http.StatusOK && w.Code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", w.Code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle binds a real TCP listener and checks graceful shutdown.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := NewCalendarServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + "/"

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update(grid(2024, time.February))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

func TestServer_PortRequired(t *testing.T) {
	err := NewCalendarServer("").Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrPortRequired)
}
