// Package query fetches and decodes the LAN server query endpoint.
//
// # Overview
//
// The query endpoint is a schema-loose JSON document served over HTTPS with a
// self-signed certificate. This package covers the full path from endpoint
// settings to a typed Response:
//
//	Endpoint ──> Client.Fetch ──> RawResponse ──> Normalize ──> text ──> Decode ──> Response
//
// # Files
//
//   - client.go: URL construction, the HTTP client and transport error classification
//   - trust.go: the compiled-in allow-list of self-signed hosts
//   - charset.go: ISO-8859-1 to UTF-8 normalization
//   - decode.go: tolerant multi-shape JSON decoding
//   - types.go: Response and its optional sections
//   - errors.go: the error taxonomy
//
// # Transport
//
// Every request is a single GET with Accept: application/json. The server
// answers 406 for any other Accept value. A non-2xx response is returned as a
// RawResponse, not an error; callers decide what it means. No retries are
// made here.
//
// The configured timeout bounds the dial, the TLS handshake, the wait for
// response headers, and the whole exchange including the body read.
//
// # TLS Trust
//
// Certificate chain validation is skipped only for the hosts returned true by
// IsTrustedHost: NUCTAX, nuctax.local and 192.168.0.203. Every other host gets
// standard system verification. The list cannot be changed at runtime.
//
// # Charset Handling
//
// The server commonly declares "charset=iso-8859-1". Normalize transcodes such
// bodies with golang.org/x/text so the JSON decoder always sees UTF-8. Bodies
// that cannot be decoded become NonDecodableText together with
// ErrCharsetDecode; the text then fails JSON decoding on its own.
//
// # Decoding
//
// Decode is best-effort per field. Missing sections are nil, mistyped fields
// are nil, and only invalid syntax or a non-object top level returns a
// *DecodeError.
//
// The Players section may be an array of records or an object wrapping that
// array under Players, Entries, List or Data. Anything else decodes to an
// empty list.
//
// The Plugins section additionally accepts a name to details mapping, either
// directly or under one of the wrapper keys. Mapped entries are sorted by name.
// A document without any known section whose values all look like plugin
// details is itself treated as the plugin mapping.
package query
