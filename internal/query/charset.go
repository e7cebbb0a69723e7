package query

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// NonDecodableText stands in for a body that could not be decoded.
const NonDecodableText = "<non-decodable body>"

var latin1Names = map[string]bool{
	"iso-8859-1": true,
	"iso8859-1":  true,
	"iso_8859-1": true,
	"latin1":     true,
	"latin-1":    true,
}

// IsLatin1 reports whether contentType declares an ISO-8859-1 charset.
func IsLatin1(contentType string) bool {
	if contentType == "" {
		return false
	}
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		if cs, ok := params["charset"]; ok {
			return latin1Names[strings.ToLower(strings.TrimSpace(cs))]
		}
		return false
	}
	// Fall back to a substring scan for headers mime rejects.
	lower := strings.ToLower(contentType)
	for name := range latin1Names {
		if strings.Contains(lower, "charset="+name) {
			return true
		}
	}
	return false
}

// Normalize converts body to canonical UTF-8 text. Latin-1 bodies are
// transcoded; everything else must already be UTF-8. On failure the text is
// NonDecodableText and the error is ErrCharsetDecode.
func Normalize(body []byte, contentType string) (string, error) {
	if IsLatin1(contentType) {
		text, err := charmap.ISO8859_1.NewDecoder().Bytes(body)
		if err != nil {
			return NonDecodableText, ErrCharsetDecode
		}
		return string(text), nil
	}
	if !utf8.Valid(body) {
		return NonDecodableText, ErrCharsetDecode
	}
	return string(body), nil
}
