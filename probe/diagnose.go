package probe

import "net"

// Connectivity summarizes the transport-level checks behind the diagnose
// endpoint. The checks are best effort: a false value means "could not
// verify", not "definitely offline".
type Connectivity struct {
	Ping      bool `json:"ping"`
	SNMPPort  bool `json:"snmp_port"`
	Reachable bool `json:"reachable"`
	IsPrivate bool `json:"is_private"`
}

// TestConnectivity runs the ping and SNMP-port checks for ip. The host is
// considered reachable when either check succeeds.
func (p *Prober) TestConnectivity(ip string) Connectivity {
	c := Connectivity{IsPrivate: isPrivateIP(ip)}

	ping := p.cfg.PingFn
	if ping == nil {
		ping = DoPing
	}
	reach := p.cfg.ReachFn
	if reach == nil {
		reach = DoReach
	}

	c.Ping = ping(ip)
	c.SNMPPort = reach(ip, p.cfg.Port, p.cfg.ReachTimeout)
	c.Reachable = c.Ping || c.SNMPPort
	return c
}

// isPrivateIP reports whether ip is on a private or loopback range. Used to
// explain why a probe from a public server cannot reach a LAN printer.
func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback()
}
