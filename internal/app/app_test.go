package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/hyquery/internal/config"
	"github.com/five82/hyquery/internal/query"
)

func TestRun_OnceWritesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Server":{"Name":"Orbis","MaxPlayers":50},"Universe":{"CurrentPlayers":3}}`))
	}))
	t.Cleanup(server.Close)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := config.Save(path, configFor(t, server)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var buf bytes.Buffer
	if err := Run(context.Background(), Options{ConfigPath: path, Once: true, Stdout: &buf}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	var got struct {
		Reason   string          `json:"reason"`
		Status   int             `json:"status"`
		Class    string          `json:"class"`
		Response *query.Response `json:"response"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal output %q: %v", buf.String(), err)
	}
	if got.Class != "ok" || got.Status != 200 || got.Reason != ReasonManual {
		t.Fatalf("result = %+v, want ok/200/manual", got)
	}
	if got.Response == nil || got.Response.Server == nil || query.Str(got.Response.Server.Name, "") != "Orbis" {
		t.Fatalf("response = %+v, want server Orbis", got.Response)
	}
}

func TestRunOnce_FailureIncludesRawText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>nope</html>`))
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(query.NewClient(), nil, configFor(t, server), nil)
	var buf bytes.Buffer
	err := runOnce(context.Background(), f, &buf)
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Fatalf("runOnce err = %v, want decode failure", err)
	}
	if !strings.Contains(buf.String(), `"raw": "<html>nope</html>"`) {
		t.Fatalf("output missing raw text: %s", buf.String())
	}
}
