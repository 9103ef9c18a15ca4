package probe

import (
	"fmt"
	"time"

	"github.com/gosnmp/gosnmp"
)

// SNMPConfig holds the connection parameters for a single GET attempt.
type SNMPConfig struct {
	Community string
	Version   gosnmp.SnmpVersion
	Port      uint16
	Timeout   time.Duration
	Retries   int
}

// SNMPClient is the narrow slice of gosnmp the prober needs. Tests swap the
// factory below for fakes.
type SNMPClient interface {
	Get(oids []string) (*gosnmp.SnmpPacket, error)
	Close() error
}

// ClientFactory creates a connected SNMP client for a target.
type ClientFactory func(cfg SNMPConfig, target string) (SNMPClient, error)

// gosnmpClient wraps gosnmp.GoSNMP to implement SNMPClient.
type gosnmpClient struct {
	conn *gosnmp.GoSNMP
}

// Get performs an SNMP GET request.
func (c *gosnmpClient) Get(oids []string) (*gosnmp.SnmpPacket, error) {
	return c.conn.Get(oids)
}

// Close closes the SNMP connection.
func (c *gosnmpClient) Close() error {
	if c.conn != nil && c.conn.Conn != nil {
		return c.conn.Conn.Close()
	}
	return nil
}

// newSNMPClientImpl is the actual implementation of NewSNMPClient. One fresh
// client is dialed per identifier attempt; there is no session reuse.
func newSNMPClientImpl(cfg SNMPConfig, target string) (SNMPClient, error) {
	if target == "" {
		return nil, fmt.Errorf("target IP required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	port := cfg.Port
	if port == 0 {
		port = 161
	}
	community := cfg.Community
	if community == "" {
		community = "public"
	}

	conn := &gosnmp.GoSNMP{
		Target:    target,
		Port:      port,
		Community: community,
		Version:   cfg.Version,
		Timeout:   timeout,
		Retries:   cfg.Retries,
	}

	if err := conn.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target, err)
	}

	return &gosnmpClient{conn: conn}, nil
}

// NewSNMPClient is the factory used by production code; tests can replace
// this variable (or set Config.ClientFactory) to inject mock clients.
var NewSNMPClient ClientFactory = newSNMPClientImpl
