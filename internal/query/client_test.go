package query

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func endpointFor(t *testing.T, server *httptest.Server, path string) Endpoint {
	t.Helper()
	u, err := url.Parse(server.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	host, portStr, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("atoi port: %v", err)
	}
	return Endpoint{
		Host:     host,
		Port:     port,
		Path:     path,
		UseHTTPS: u.Scheme == "https",
		Timeout:  2 * time.Second,
	}
}

func TestBuildURL_SchemeFollowsHTTPSFlag(t *testing.T) {
	tests := []struct {
		name string
		ep   Endpoint
		want string
	}{
		{"https", Endpoint{Host: "192.168.0.203", Port: 5523, Path: "/Nitrado/Query", UseHTTPS: true}, "https://192.168.0.203:5523/Nitrado/Query"},
		{"http", Endpoint{Host: "nuctax.local", Port: 80, Path: "/q"}, "http://nuctax.local:80/q"},
		{"empty path", Endpoint{Host: "host", Port: 1, UseHTTPS: true}, "https://host:1"},
		{"ipv6", Endpoint{Host: "::1", Port: 8080, Path: "/x"}, "http://[::1]:8080/x"},
		{"bracketed ipv6", Endpoint{Host: "[fe80::1]", Port: 8080}, "http://[fe80::1]:8080"},
		{"max port", Endpoint{Host: "h", Port: 65535}, "http://h:65535"},
		{"trimmed host", Endpoint{Host: "  h  ", Port: 10}, "http://h:10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.ep)
			if err != nil {
				t.Fatalf("BuildURL returned error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("BuildURL = %q, want %q", got.String(), tt.want)
			}
			wantScheme := "http"
			if tt.ep.UseHTTPS {
				wantScheme = "https"
			}
			if got.Scheme != wantScheme {
				t.Fatalf("scheme = %q, want %q", got.Scheme, wantScheme)
			}
		})
	}
}

func TestBuildURL_InvalidEndpoint(t *testing.T) {
	tests := []struct {
		name string
		ep   Endpoint
	}{
		{"empty host", Endpoint{Host: "", Port: 5523}},
		{"blank host", Endpoint{Host: "   ", Port: 5523}},
		{"zero port", Endpoint{Host: "h", Port: 0}},
		{"negative port", Endpoint{Host: "h", Port: -1}},
		{"port too large", Endpoint{Host: "h", Port: 65536}},
		{"host with slash", Endpoint{Host: "a/b", Port: 1}},
		{"host with space", Endpoint{Host: "a b", Port: 1}},
		{"host with userinfo", Endpoint{Host: "u@h", Port: 1}},
		{"bad ipv6", Endpoint{Host: "h:1", Port: 1}},
		{"empty label", Endpoint{Host: "a..b", Port: 1}},
		{"relative path", Endpoint{Host: "h", Port: 1, Path: "Nitrado/Query"}},
		{"control char in path", Endpoint{Host: "h", Port: 1, Path: "/a\nb"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildURL(tt.ep)
			if !errors.Is(err, ErrInvalidEndpoint) {
				t.Fatalf("BuildURL error = %v, want ErrInvalidEndpoint", err)
			}
		})
	}
}

func TestClient_FetchSendsAcceptAndReturnsBody(t *testing.T) {
	t.Parallel()

	var gotAccept, gotUserAgent, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotUserAgent = r.Header.Get("User-Agent")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/x.hytale.nitrado.query+json;version=1;charset=iso-8859-1")
		_, _ = w.Write([]byte(`{"Server":{"Name":"x"}}`))
	}))
	t.Cleanup(server.Close)

	c := NewClient()
	resp, err := c.Fetch(context.Background(), endpointFor(t, server, "/Nitrado/Query"))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if !strings.HasPrefix(gotUserAgent, "hyquery/") {
		t.Fatalf("User-Agent = %q, want hyquery/*", gotUserAgent)
	}
	if gotPath != "/Nitrado/Query" {
		t.Fatalf("path = %q, want /Nitrado/Query", gotPath)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"Server":{"Name":"x"}}` {
		t.Fatalf("Body = %q", resp.Body)
	}
	if !IsLatin1(resp.ContentType()) {
		t.Fatalf("ContentType = %q, want latin-1 declaration", resp.ContentType())
	}
	if resp.Header.Get("content-type") != resp.ContentType() {
		t.Fatalf("header lookup should be case-insensitive")
	}
}

func TestClient_NonSuccessStatusIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not acceptable", http.StatusNotAcceptable)
	}))
	t.Cleanup(server.Close)

	resp, err := NewClient().Fetch(context.Background(), endpointFor(t, server, "/"))
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if resp.StatusCode != http.StatusNotAcceptable {
		t.Fatalf("StatusCode = %d, want 406", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "not acceptable") {
		t.Fatalf("Body = %q, want error text", resp.Body)
	}
}

func TestClient_InvalidEndpointShortCircuits(t *testing.T) {
	_, err := NewClient().Fetch(context.Background(), Endpoint{Host: "", Port: 5523})
	if !errors.Is(err, ErrInvalidEndpoint) {
		t.Fatalf("Fetch error = %v, want ErrInvalidEndpoint", err)
	}
}

func TestClient_TimeoutIsClassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(server.Close)

	ep := endpointFor(t, server, "/")
	ep.Timeout = 50 * time.Millisecond

	_, err := NewClient().Fetch(context.Background(), ep)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch error = %v, want *TransportError", err)
	}
	if terr.Kind != TransportTimeout {
		t.Fatalf("Kind = %v, want timeout (err=%v)", terr.Kind, err)
	}
}

func TestClient_ConnectionRefusedIsClassified(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	_ = ln.Close()

	_, err = NewClient().Fetch(context.Background(), Endpoint{Host: "127.0.0.1", Port: port, Timeout: time.Second})
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch error = %v, want *TransportError", err)
	}
	if terr.Kind != TransportConnectionFailed {
		t.Fatalf("Kind = %v, want connection failed (err=%v)", terr.Kind, err)
	}
}

func TestClient_UntrustedSelfSignedCertificateIsRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	ep := endpointFor(t, server, "/")
	if IsTrustedHost(ep.Host) {
		t.Fatalf("test server host %q unexpectedly trusted", ep.Host)
	}
	_, err := NewClient().Fetch(context.Background(), ep)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Fetch error = %v, want *TransportError", err)
	}
	if terr.Kind != TransportConnectionFailed {
		t.Fatalf("Kind = %v, want connection failed (err=%v)", terr.Kind, err)
	}
}

func TestClient_ReusesHTTPClientForSameHost(t *testing.T) {
	c := NewClient()
	ep := Endpoint{Host: "h", Port: 1, Timeout: time.Second}
	first := c.httpClient(ep)
	if c.httpClient(ep) != first {
		t.Fatalf("httpClient should be reused for identical host and timeout")
	}
	ep.Timeout = 2 * time.Second
	if c.httpClient(ep) == first {
		t.Fatalf("httpClient should be rebuilt when timeout changes")
	}
}

func TestHTTPError_HintOnlyFor406(t *testing.T) {
	if hint := (&HTTPError{StatusCode: 406}).Hint(); !strings.Contains(hint, "Accept") {
		t.Fatalf("406 hint = %q, want Accept guidance", hint)
	}
	if hint := (&HTTPError{StatusCode: 500}).Hint(); hint != "" {
		t.Fatalf("500 hint = %q, want empty", hint)
	}
	if msg := (&HTTPError{StatusCode: 406}).Error(); !strings.Contains(msg, "406") {
		t.Fatalf("Error = %q, want status code", msg)
	}
}
