package query

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	// AcceptHeader is required by the query endpoint; anything else yields 406.
	AcceptHeader     = "application/json"
	defaultUserAgent = "hyquery/0.1"
	defaultTimeout   = 5 * time.Second
	maxPort          = 65535
)

// Endpoint is the per-request snapshot of connection settings.
type Endpoint struct {
	Host     string
	Port     int
	Path     string
	UseHTTPS bool
	Timeout  time.Duration
}

// RawResponse is one HTTP exchange as received. Header lookups through
// http.Header are case-insensitive.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// ContentType returns the declared Content-Type header value.
func (r *RawResponse) ContentType() string {
	if r == nil {
		return ""
	}
	return r.Header.Get("Content-Type")
}

// Fetcher performs a single GET against an endpoint.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context, ep Endpoint) (*RawResponse, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the query endpoint. It keeps one http.Client per
// host/timeout pair so connections are reused between polls.
type Client struct {
	userAgent string

	mu      sync.Mutex
	key     clientKey
	current *http.Client
}

type clientKey struct {
	host    string
	timeout time.Duration
}

// NewClient builds a Client ready for use.
func NewClient() *Client {
	return &Client{userAgent: defaultUserAgent}
}

// BuildURL assembles {scheme}://{host}:{port}{path} from ep.
func BuildURL(ep Endpoint) (*url.URL, error) {
	host := strings.TrimSpace(ep.Host)
	if err := validateHost(host); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if ep.Port < 1 || ep.Port > maxPort {
		return nil, fmt.Errorf("%w: port %d out of range", ErrInvalidEndpoint, ep.Port)
	}
	if ep.Path != "" && !strings.HasPrefix(ep.Path, "/") {
		return nil, fmt.Errorf("%w: path %q must start with /", ErrInvalidEndpoint, ep.Path)
	}
	if hasControl(ep.Path) {
		return nil, fmt.Errorf("%w: path contains control characters", ErrInvalidEndpoint)
	}

	scheme := "http"
	if ep.UseHTTPS {
		scheme = "https"
	}
	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(strings.Trim(host, "[]"), strconv.Itoa(ep.Port)),
		Path:   ep.Path,
	}, nil
}

// Fetch issues one GET with Accept: application/json and returns whatever
// HTTP response arrives, including non-2xx statuses. No retries are made.
func (c *Client) Fetch(ctx context.Context, ep Endpoint) (*RawResponse, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	reqURL, err := BuildURL(ep)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrInvalidEndpoint, err)
	}
	req.Header.Set("Accept", AcceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient(ep).Do(req)
	if err != nil {
		return nil, classifyTransport(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport(fmt.Errorf("read body: %w", err))
	}
	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header.Clone(),
		Body:       body,
	}, nil
}

func (c *Client) httpClient(ep Endpoint) *http.Client {
	timeout := ep.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	key := clientKey{host: strings.TrimSpace(ep.Host), timeout: timeout}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current != nil && c.key == key {
		return c.current
	}
	if c.current != nil {
		c.current.CloseIdleConnections()
	}

	dialer := &net.Dialer{Timeout: timeout}
	c.current = &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			TLSClientConfig:       tlsConfigFor(key.host),
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			ForceAttemptHTTP2:     true,
			MaxIdleConns:          2,
			IdleConnTimeout:       90 * time.Second,
		},
	}
	c.key = key
	return c.current
}

func classifyTransport(err error) *TransportError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &TransportError{Kind: TransportTimeout, Err: err}
	case errors.As(err, &netErr) && netErr.Timeout():
		return &TransportError{Kind: TransportTimeout, Err: err}
	case isConnectionFailure(err):
		return &TransportError{Kind: TransportConnectionFailed, Err: err}
	default:
		return &TransportError{Kind: TransportOther, Err: err}
	}
}

func isConnectionFailure(err error) bool {
	var (
		opErr      *net.OpError
		dnsErr     *net.DNSError
		verifyErr  *tls.CertificateVerificationError
		unknownErr x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		recordErr  tls.RecordHeaderError
	)
	return errors.As(err, &opErr) ||
		errors.As(err, &dnsErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &unknownErr) ||
		errors.As(err, &hostErr) ||
		errors.As(err, &recordErr)
}

func validateHost(host string) error {
	if host == "" {
		return errors.New("host is empty")
	}
	if strings.Contains(host, ":") {
		if net.ParseIP(strings.Trim(host, "[]")) == nil {
			return fmt.Errorf("host %q is not a valid IPv6 address", host)
		}
		return nil
	}
	for _, r := range host {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '.', r == '_':
		default:
			return fmt.Errorf("host %q contains invalid character %q", host, r)
		}
	}
	if strings.HasPrefix(host, ".") || strings.Contains(host, "..") {
		return fmt.Errorf("host %q has an empty label", host)
	}
	return nil
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return true
		}
	}
	return false
}
