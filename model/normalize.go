// Package model cleans and normalizes the device description strings that
// printers report over SNMP.
package model

import (
	"strings"
	"unicode"
)

// epsonCodes maps Epson interface-board codes to the printer model the board
// ships in. TM-series receipt printers frequently answer SNMP queries with
// the UB-* network board code instead of the printer model. Ordered so that
// longer codes match before their prefixes (TM-T82X before TM-T82).
var epsonCodes = []struct {
	code  string
	model string
}{
	{"UB-E04", "EPSON TM-U220IIB"},
	{"UB-E03", "EPSON TM-U220IIIB"},
	{"UB-U02", "EPSON TM-U220II"},
	{"UB-U03", "EPSON TM-U220III"},
	{"TM-T82X", "EPSON TM-T82X"},
	{"TM-T88", "EPSON TM-T88"},
	{"TM-T20", "EPSON TM-T20"},
	{"TM-T70", "EPSON TM-T70"},
	{"TM-T82", "EPSON TM-T82"},
	{"TM-U950", "EPSON TM-U950"},
	{"TM-U325", "EPSON TM-U325"},
	{"TM-L90", "EPSON TM-L90"},
	{"TM-P20", "EPSON TM-P20"},
	{"TM-P60", "EPSON TM-P60"},
	{"TM-P80", "EPSON TM-P80"},
}

// genericMarkers flag descriptions that identify the embedded print server
// hardware rather than the printer itself ("Ethernet Print Server", etc.).
var genericMarkers = []string{
	"PRINT SERVER",
	"ETHERNET",
	"BUILT-IN",
	"11B/G/N",
	"10/100",
}

// vendorPrefixes are brand names used to trim leading firmware noise from
// device descriptions. A value that already starts with one of these is
// considered a finished model string.
var vendorPrefixes = []string{"EPSON", "CANON", "HP", "BROTHER"}

// Clean strips non-printable characters, trims surrounding whitespace and
// collapses internal whitespace runs to single spaces. Cleaning an already
// clean string returns it unchanged.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// IsGenericDescription reports whether s describes print server hardware
// rather than a printer model.
func IsGenericDescription(s string) bool {
	upper := strings.ToUpper(s)
	for _, marker := range genericMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// Normalize converts a raw SNMP-reported description into a presentable
// model string: clean, trim leading junk before a known vendor name, and map
// bare Epson interface-board codes to their printer model. Returns an empty
// string when nothing usable remains.
func Normalize(raw string) string {
	s := Clean(raw)
	if s == "" {
		return ""
	}

	s = trimVendorPrefix(s)
	upper := strings.ToUpper(s)

	// Values already carrying a vendor name are kept verbatim.
	for _, vendor := range vendorPrefixes {
		if strings.HasPrefix(upper, vendor) {
			return s
		}
	}

	// Bare device codes: exact match first, then substring.
	for _, m := range epsonCodes {
		if upper == m.code {
			return m.model
		}
	}
	for _, m := range epsonCodes {
		if strings.Contains(upper, m.code) {
			return m.model
		}
	}

	// Looks like an Epson model line but lost its brand prefix.
	if strings.HasPrefix(upper, "TM-") || strings.HasPrefix(upper, "UB-") {
		return "EPSON " + s
	}

	return s
}

// trimVendorPrefix drops everything before the first word that is a known
// vendor name ("FW 1.2 EPSON TM-T88V" -> "EPSON TM-T88V"). Only whole words
// match, so "SHARP" is not mistaken for "HP" and neither is "HPX". The cut
// offset is tracked on s itself: case conversion can change rune byte
// lengths, so an index found in an upper-cased copy must never be used to
// slice the original.
func trimVendorPrefix(s string) string {
	start := 0
	for start < len(s) {
		end := strings.IndexByte(s[start:], ' ')
		word := s[start:]
		if end >= 0 {
			word = s[start : start+end]
		}
		if start > 0 && isVendorName(word) {
			return s[start:]
		}
		if end < 0 {
			break
		}
		start += end + 1
	}
	return s
}

func isVendorName(word string) bool {
	for _, vendor := range vendorPrefixes {
		if strings.EqualFold(word, vendor) {
			return true
		}
	}
	return false
}
