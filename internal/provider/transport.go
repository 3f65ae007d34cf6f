package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tartampluch/go-myancal/internal/config"
)

// errStatus wraps non-200 answers so callers can tell "no data" (404) from a broken service.
type errStatus struct {
	Code int
}

func (e *errStatus) Error() string {
	return fmt.Sprintf("%s: %d %s", config.ErrRemoteStatus, e.Code, http.StatusText(e.Code))
}

// IsNotFound reports whether err is a 404 answer from the transport.
func IsNotFound(err error) bool {
	var se *errStatus
	return errors.As(err, &se) && se.Code == http.StatusNotFound
}

// HTTPTransport performs the GET requests of both adapters.
type HTTPTransport struct {
	Client *http.Client
}

// NewHTTPTransport creates a transport with the given client timeout.
func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get retrieves targetURL, sending token as a bearer credential when set.
// It rejects non-HTTP schemes and limits the response size.
func (f *HTTPTransport) Get(ctx context.Context, targetURL, token string) (io.ReadCloser, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrInvalidURL, err)
	}

	if u.Scheme != config.SchemeHTTP && u.Scheme != config.SchemeHTTPS {
		return nil, fmt.Errorf("%s: %s", config.ErrProtocol, u.Scheme)
	}

	// Query strings may carry credentials; keep them out of the logs.
	safeURL := u.Scheme + "://" + u.Host + u.Path

	log := slog.With(
		slog.String(config.LogKeyComponent, config.CompProvider),
		slog.String(config.LogKeyURL, safeURL),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRemoteRequest, err)
	}

	req.Header.Set(config.HeaderUserAgent, config.UserAgent)
	req.Header.Set(config.HeaderAccept, config.MimeJSON)
	if token != "" {
		req.Header.Set(config.HeaderAuthorization, config.AuthBearerPrefix+token)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRemoteRequest, err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusNotFound {
			log.Warn(config.ErrRemoteStatus, slog.Int(config.LogKeyStatus, resp.StatusCode))
		}
		return nil, &errStatus{Code: resp.StatusCode}
	}

	return &limitedReadCloser{
		Reader: io.LimitReader(resp.Body, config.MaxHTTPResponseSize),
		Closer: resp.Body,
	}, nil
}

// limitedReadCloser pairs a size-limited reader with the original body closer.
type limitedReadCloser struct {
	io.Reader
	io.Closer
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	return l.Reader.Read(p)
}

func (l *limitedReadCloser) Close() error {
	return l.Closer.Close()
}
