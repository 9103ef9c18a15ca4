package probe

import (
	"net"
	"strconv"
	"time"
)

// tcpReach attempts a TCP connection to (ip, port) and reports whether the
// transport handshake completed within timeout. The check is best effort: a
// host can accept the connection yet still ignore SNMP. The socket is closed
// before returning on every path.
func tcpReach(ip string, port uint16, timeout time.Duration) bool {
	addr := net.JoinHostPort(ip, strconv.Itoa(int(port)))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// ReachFunc allows tests to override the transport-level reachability check.
type ReachFunc func(ip string, port uint16, timeout time.Duration) bool

// DoReach is the package-level reachability function used by the prober.
// Tests may replace this, or set Config.ReachFn per prober.
var DoReach ReachFunc = tcpReach
