package main

import (
	"embed"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"printerid/logger"
	"printerid/probe"
)

//go:embed web
var webFS embed.FS

// API provides the HTTP handlers around a Prober.
type API struct {
	prober  *probe.Prober
	started time.Time
}

// NewAPI creates the HTTP API for the given prober.
func NewAPI(p *probe.Prober) *API {
	return &API{prober: p, started: time.Now()}
}

// RegisterRoutes registers all routes on mux.
func (a *API) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil {
		mux = http.DefaultServeMux
	}
	mux.HandleFunc("/", a.handleHome)
	mux.HandleFunc("/get-printer", a.handleGetPrinter)
	mux.HandleFunc("/get-printer-fast", a.handleGetPrinterFast)
	mux.HandleFunc("/diagnose", a.handleDiagnose)
	mux.HandleFunc("/health", a.handleHealth)
	mux.HandleFunc("/api/version", a.handleVersion)
	mux.HandleFunc("/ws/probe", a.handleProbeStream)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// probeResponse is the wire shape for success results.
type probeResponse struct {
	Success bool   `json:"success"`
	IP      string `json:"ip"`
	Model   string `json:"model"`
	OIDUsed string `json:"oid_used,omitempty"`
	Message string `json:"message"`
}

// errorResponse is the wire shape for failures.
type errorResponse struct {
	Error       string   `json:"error"`
	IP          string   `json:"ip,omitempty"`
	Hint        string   `json:"hint,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Usage       string   `json:"usage,omitempty"`
}

// handleGetPrinter handles GET /get-printer?ip=...&force=true - the main
// probe endpoint. force skips the connectivity pre-check.
func (a *API) handleGetPrinter(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "IP address not provided",
			Usage: "GET /get-printer?ip=192.168.1.100",
			Hint:  "Add &force=true to skip the connectivity test",
		})
		return
	}

	force := r.URL.Query().Get("force") == "true"
	res := a.prober.Probe(r.Context(), ip, probe.Options{SkipReachability: force})
	a.writeProbeResult(w, res)
}

// handleGetPrinterFast handles GET /get-printer-fast?ip=... - probes without
// the reachability pre-check.
func (a *API) handleGetPrinterFast(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "IP address not provided",
			Usage: "GET /get-printer-fast?ip=192.168.1.100",
		})
		return
	}

	res := a.prober.Probe(r.Context(), ip, probe.Options{SkipReachability: true})
	a.writeProbeResult(w, res)
}

func (a *API) writeProbeResult(w http.ResponseWriter, res probe.Result) {
	if res.Success {
		writeJSON(w, http.StatusOK, probeResponse{
			Success: true,
			IP:      res.IP,
			Model:   res.Model,
			OIDUsed: res.OIDUsed,
			Message: "Printer model detected successfully",
		})
		return
	}

	status := http.StatusInternalServerError
	if res.ErrorKind == probe.ErrorKindInvalidIP {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{
		Error:       errorMessage(res.ErrorKind),
		IP:          res.IP,
		Hint:        errorHint(res.ErrorKind),
		Suggestions: errorSuggestions(res.ErrorKind, res.IP),
	})
}

func errorMessage(kind probe.ErrorKind) string {
	switch kind {
	case probe.ErrorKindInvalidIP:
		return "Invalid IP address format"
	case probe.ErrorKindUnreachable:
		return "Cannot reach printer at this IP"
	case probe.ErrorKindEmptyModel:
		return "Printer answered but reported no model name"
	default:
		return "Could not detect printer model"
	}
}

func errorHint(kind probe.ErrorKind) string {
	switch kind {
	case probe.ErrorKindInvalidIP:
		return "Provide a dotted-decimal IPv4 or an IPv6 address"
	case probe.ErrorKindUnreachable:
		return "Make sure the printer is powered on and reachable from this server"
	case probe.ErrorKindEmptyModel:
		return "The device speaks SNMP but its description objects are blank"
	default:
		return "The device did not answer any of the model identifiers"
	}
}

func errorSuggestions(kind probe.ErrorKind, ip string) []string {
	switch kind {
	case probe.ErrorKindInvalidIP:
		return nil
	case probe.ErrorKindUnreachable:
		return []string{
			"Try force mode: add &force=true to skip the connectivity test",
			"Check diagnostic: /diagnose?ip=" + ip,
			"Private IPs (192.168.x.x, 10.x.x.x) are not reachable from a public server",
		}
	default:
		return []string{
			"Printer might not support SNMP",
			"SNMP might be disabled in printer settings",
			"Community string might not be 'public'",
			"Check diagnostic: /diagnose?ip=" + ip,
		}
	}
}

// diagnoseResponse is the wire shape of /diagnose.
type diagnoseResponse struct {
	IP              string             `json:"ip"`
	Connectivity    probe.Connectivity `json:"connectivity_test"`
	SNMPResult      *probe.Result      `json:"snmp_result,omitempty"`
	Recommendations []string           `json:"recommendations"`
}

// handleDiagnose handles GET /diagnose?ip=... - runs the connectivity checks
// and a forced probe, and explains the outcome.
func (a *API) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	ip := r.URL.Query().Get("ip")
	if ip == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "IP address not provided",
			Usage: "GET /diagnose?ip=192.168.1.100",
		})
		return
	}
	if !probe.ValidIP(ip) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "Invalid IP address format",
			IP:    ip,
		})
		return
	}

	conn := a.prober.TestConnectivity(ip)
	resp := diagnoseResponse{IP: ip, Connectivity: conn}

	if conn.IsPrivate && !conn.Ping {
		resp.Recommendations = append(resp.Recommendations,
			"This is a private IP address (local network)",
			"Internet-facing servers cannot reach private network IPs",
			"For testing, run this service inside the printer's network")
	} else if !conn.Ping {
		resp.Recommendations = append(resp.Recommendations,
			"Basic ping failed - device might be offline or unreachable")
	} else {
		resp.Recommendations = append(resp.Recommendations,
			"Basic ping successful - device is online")
	}

	if !conn.SNMPPort {
		resp.Recommendations = append(resp.Recommendations,
			"SNMP port 161 not accessible - SNMP might be disabled",
			"Check that the printer supports SNMP v1/v2c and that it is enabled")
	} else {
		resp.Recommendations = append(resp.Recommendations,
			"SNMP port 161 is accessible")
	}

	// Try SNMP regardless of the connectivity verdict.
	res := a.prober.Probe(r.Context(), ip, probe.Options{SkipReachability: true})
	resp.SNMPResult = &res
	if res.Success {
		resp.Recommendations = append(resp.Recommendations, "SNMP query successful")
	} else {
		resp.Recommendations = append(resp.Recommendations,
			"SNMP query failed",
			"Some printers use a community string other than 'public'")
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /health - simple liveness check. Performs no
// probing.
func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "printer-model-detector",
		"version":   Version,
		"timestamp": time.Now().UTC(),
	})
}

// handleVersion handles GET /api/version - returns build information.
func (a *API) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"uptime":     time.Since(a.started).String(),
	})
}

// handleHome serves the embedded web form.
func (a *API) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data, err := webFS.ReadFile("web/index.html")
	if err != nil {
		if logger.Global != nil {
			logger.Global.Error("failed to read embedded index", "error", err.Error())
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}
