package util

import (
	"strings"
	"unicode/utf8"
)

// DecodeOctetString attempts to convert raw octet string bytes into a
// human-friendly UTF-8 string. It tries UTF-8 first, then falls back to a
// single-byte ISO-8859-1 style decoding (direct byte->rune mapping). It also
// strips common non-printable control characters and trims whitespace.
func DecodeOctetString(b []byte) string {
	if b == nil {
		return ""
	}
	// Prefer valid UTF-8
	if utf8.Valid(b) {
		return sanitizeString(string(b))
	}
	// Fallback: map bytes to runes (ISO-8859-1 / Windows-1252 best-effort)
	runes := make([]rune, 0, len(b))
	for _, by := range b {
		runes = append(runes, rune(by))
	}
	return sanitizeString(string(runes))
}

// sanitizeString removes C0 control characters (except newline, carriage
// return and tab) and trims surrounding whitespace.
func sanitizeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' {
			b.WriteRune(r)
			continue
		}
		if r < 0x20 {
			// skip other control chars
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
