package probe

import (
	"os/exec"
	"runtime"
	"strings"

	"printerid/logger"
)

// pingWithExec attempts to ping using the system ping command. Only the
// diagnose flow uses this; the probe itself relies on the TCP port check.
func pingWithExec(ip string) bool {
	pingPath, err := exec.LookPath("ping")
	if err != nil {
		if logger.Global != nil {
			logger.Global.Debug("ping executable not found in PATH")
		}
		return false
	}

	// Try a sequence of argument variants per platform to handle flag differences.
	var attempts [][]string
	switch runtime.GOOS {
	case "windows":
		attempts = [][]string{{"-n", "1", "-w", "1000", ip}}
	case "darwin":
		attempts = [][]string{{"-c", "1", "-W", "1000", ip}, {"-c", "1", ip}}
	default:
		// Linux: try per-packet timeout (-W), deadline (-w), then minimal
		attempts = [][]string{{"-c", "1", "-W", "1", ip}, {"-c", "1", "-w", "1", ip}, {"-c", "1", ip}}
	}

	for _, args := range attempts {
		cmd := exec.Command(pingPath, args...)
		out, err := cmd.CombinedOutput()
		if err == nil {
			return true
		}
		if logger.Global != nil {
			logger.Global.Debug("system ping attempt failed",
				"args", strings.Join(args, " "), "error", err.Error(), "output", string(out))
		}
	}
	return false
}

// PingFunc allows tests to override ping behavior.
type PingFunc func(ip string) bool

// DoPing is the package-level ping function used by the diagnose flow.
// Tests may replace this, or set Config.PingFn per prober.
var DoPing PingFunc = pingWithExec
