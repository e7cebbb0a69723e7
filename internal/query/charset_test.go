package query

import (
	"errors"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestIsLatin1(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"application/x.hytale.nitrado.query+json;version=1;charset=iso-8859-1", true},
		{"application/json; charset=ISO-8859-1", true},
		{"application/json; charset=latin1", true},
		{`application/json; charset="Latin1"`, true},
		{"application/json; charset=utf-8", false},
		{"application/json", false},
		{"", false},
		{"garbage;;charset=iso-8859-1", true},
	}
	for _, tt := range tests {
		if got := IsLatin1(tt.contentType); got != tt.want {
			t.Errorf("IsLatin1(%q) = %v, want %v", tt.contentType, got, tt.want)
		}
	}
}

func TestNormalize_Latin1MatchesTranscoding(t *testing.T) {
	body := []byte{'{', '"', 'N', '"', ':', '"', 'C', 0xE9, 'l', 'i', 'n', 'e', '"', '}'}
	want, err := charmap.ISO8859_1.NewDecoder().String(string(body))
	if err != nil {
		t.Fatalf("reference decode: %v", err)
	}

	got, err := Normalize(body, "application/json;charset=iso-8859-1")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != want {
		t.Fatalf("Normalize = %q, want %q", got, want)
	}
	if got != `{"N":"Céline"}` {
		t.Fatalf("Normalize = %q, want Céline in UTF-8", got)
	}
}

func TestNormalize_Latin1RoundTripASCII(t *testing.T) {
	const original = `{"Server":{"Name":"Hytale LAN"}}`
	encoded, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(original))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Normalize(encoded, "text/plain; charset=latin1")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != original {
		t.Fatalf("Normalize = %q, want %q", got, original)
	}
}

func TestNormalize_UTF8PassThrough(t *testing.T) {
	got, err := Normalize([]byte("{\"N\":\"Céline\"}"), "application/json")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "{\"N\":\"Céline\"}" {
		t.Fatalf("Normalize = %q", got)
	}
}

func TestNormalize_InvalidUTF8YieldsSentinel(t *testing.T) {
	got, err := Normalize([]byte{'{', 0xE9, '}'}, "application/json")
	if !errors.Is(err, ErrCharsetDecode) {
		t.Fatalf("Normalize error = %v, want ErrCharsetDecode", err)
	}
	if got != NonDecodableText {
		t.Fatalf("Normalize = %q, want %q", got, NonDecodableText)
	}
	if _, err := Decode(got); err == nil {
		t.Fatalf("Decode(sentinel) returned nil error, want decode failure")
	}
}
