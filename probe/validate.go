package probe

import "net"

// ValidIP reports whether s is a syntactically valid IPv4 or IPv6 address.
// Hostnames, CIDR notation, out-of-range octets and empty strings are all
// rejected. No resolution or other network I/O happens here.
func ValidIP(s string) bool {
	if s == "" {
		return false
	}
	return net.ParseIP(s) != nil
}
