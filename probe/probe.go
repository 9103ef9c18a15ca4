// Package probe identifies the model of a network printer by querying it
// over SNMP: a reachability pre-check on the SNMP port, then sequential GET
// attempts across a fixed priority list of identifiers until one returns a
// usable description string.
package probe

import (
	"context"
	"time"

	"printerid/logger"
	"printerid/snmp/oids"

	"github.com/gosnmp/gosnmp"
)

// ErrorKind classifies why a probe failed.
type ErrorKind string

const (
	// ErrorKindInvalidIP means the input was not a valid address; no network
	// I/O was performed.
	ErrorKindInvalidIP ErrorKind = "invalid_ip"
	// ErrorKindUnreachable means the TCP pre-check to the SNMP port failed.
	ErrorKindUnreachable ErrorKind = "unreachable"
	// ErrorKindNoResponse means every identifier attempt returned a protocol
	// error or no value.
	ErrorKindNoResponse ErrorKind = "no_response"
	// ErrorKindEmptyModel means the device answered the last identifier at
	// the protocol level but the value cleaned down to nothing.
	ErrorKindEmptyModel ErrorKind = "empty_model"
)

// Result is the outcome of a single probe. It lives for one request/response
// cycle; nothing is persisted.
type Result struct {
	IP        string    `json:"ip"`
	Model     string    `json:"model,omitempty"`
	OIDUsed   string    `json:"oid_used,omitempty"`
	Success   bool      `json:"success"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}

// Event describes one step of a probe for observers (debug logging, the live
// WebSocket stream).
type Event struct {
	Stage  string `json:"stage"` // validate | reachability | snmp_get | done
	OID    string `json:"oid,omitempty"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// Observer receives probe progress events. May be nil.
type Observer func(Event)

// Version selects the SNMP protocol version for probe traffic. The zero
// value means "use the default" (v2c), so a hand-built Config cannot
// silently downgrade to v1. gosnmp's own version constants start at v1 = 0
// and are unusable as zero-defaulted config fields.
type Version int

const (
	VersionDefault Version = iota
	Version1
	Version2c
)

// wire maps the config-level version onto gosnmp's constant.
func (v Version) wire() gosnmp.SnmpVersion {
	if v == Version1 {
		return gosnmp.Version1
	}
	return gosnmp.Version2c
}

// Config carries the process-wide probe defaults. It is constructed once at
// startup and treated as read-only afterwards.
type Config struct {
	Community    string
	Version      Version
	Port         uint16
	SNMPTimeout  time.Duration
	SNMPRetries  int
	ReachTimeout time.Duration
	OIDs         []string

	// Optional overrides, primarily for tests. Nil selects the package
	// defaults (DoReach, DoPing, NewSNMPClient).
	ReachFn       ReachFunc
	PingFn        PingFunc
	ClientFactory ClientFactory
}

// DefaultConfig returns the stock probe configuration: community "public",
// SNMP v2c, two-second timeouts, no protocol retries within an identifier,
// and the standard identifier priority list.
func DefaultConfig() Config {
	return Config{
		Community:    "public",
		Version:      Version2c,
		Port:         161,
		SNMPTimeout:  2 * time.Second,
		SNMPRetries:  0,
		ReachTimeout: 2 * time.Second,
		OIDs:         oids.ModelPriorityList(),
	}
}

// Prober runs single-target model probes. Safe for concurrent use; all
// fields are read-only after New.
type Prober struct {
	cfg Config
}

// New returns a Prober for the given configuration, filling in defaults for
// zero-valued fields.
func New(cfg Config) *Prober {
	def := DefaultConfig()
	if cfg.Community == "" {
		cfg.Community = def.Community
	}
	if cfg.Version == VersionDefault {
		cfg.Version = def.Version
	}
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.SNMPTimeout <= 0 {
		cfg.SNMPTimeout = def.SNMPTimeout
	}
	if cfg.ReachTimeout <= 0 {
		cfg.ReachTimeout = def.ReachTimeout
	}
	if len(cfg.OIDs) == 0 {
		cfg.OIDs = def.OIDs
	}
	return &Prober{cfg: cfg}
}

// Options modify a single probe invocation.
type Options struct {
	// SkipReachability skips the TCP port pre-check and goes straight to the
	// SNMP attempts. Used by the fast endpoint and force mode.
	SkipReachability bool
	// Observer, when non-nil, receives per-stage progress events.
	Observer Observer
}

// Probe identifies the printer at ip. All failures are reported as
// structured data in the Result; a probe never panics or returns a Go error
// to the caller.
func (p *Prober) Probe(ctx context.Context, ip string, opts Options) Result {
	res := Result{IP: ip}

	if !ValidIP(ip) {
		res.ErrorKind = ErrorKindInvalidIP
		emit(opts.Observer, Event{Stage: "validate", OK: false, Detail: "invalid IP address format"})
		return res
	}
	emit(opts.Observer, Event{Stage: "validate", OK: true})

	if !opts.SkipReachability {
		reach := p.cfg.ReachFn
		if reach == nil {
			reach = DoReach
		}
		ok := reach(ip, p.cfg.Port, p.cfg.ReachTimeout)
		emit(opts.Observer, Event{Stage: "reachability", OK: ok})
		if !ok {
			if logger.Global != nil {
				logger.Global.Debug("target unreachable on SNMP port", "ip", ip, "port", p.cfg.Port)
			}
			res.ErrorKind = ErrorKindUnreachable
			return res
		}
	}

	found, oidUsed, kind := p.queryModel(ctx, ip, opts.Observer)
	if kind != "" {
		res.ErrorKind = kind
		emit(opts.Observer, Event{Stage: "done", OK: false, Detail: string(kind)})
		return res
	}

	res.Model = found
	res.OIDUsed = oidUsed
	res.Success = true
	emit(opts.Observer, Event{Stage: "done", OK: true, Detail: found})
	if logger.Global != nil {
		logger.Global.Info("printer model detected", "ip", ip, "model", found, "oid", oidUsed)
	}
	return res
}

func emit(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}
