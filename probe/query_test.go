package probe

import (
	"context"
	"fmt"
	"testing"
	"time"

	"printerid/snmp/oids"

	"github.com/gosnmp/gosnmp"
)

// fakeClient serves canned responses keyed by OID. A missing entry behaves
// like a protocol error.
type fakeClient struct {
	responses map[string]fakeResponse
	closed    *int
}

type fakeResponse struct {
	value   interface{}
	pduType gosnmp.Asn1BER
	err     error
}

func (f *fakeClient) Get(requested []string) (*gosnmp.SnmpPacket, error) {
	if len(requested) != 1 {
		return nil, fmt.Errorf("expected single-OID GET, got %d", len(requested))
	}
	resp, ok := f.responses[requested[0]]
	if !ok {
		return nil, fmt.Errorf("request timeout")
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return &gosnmp.SnmpPacket{
		Error: gosnmp.NoError,
		Variables: []gosnmp.SnmpPDU{
			{Name: requested[0], Type: resp.pduType, Value: resp.value},
		},
	}, nil
}

func (f *fakeClient) Close() error {
	if f.closed != nil {
		*f.closed++
	}
	return nil
}

// newTestProber wires a Prober to a fake client factory and an
// always-reachable network. It returns counters for factory dials and
// client closes.
func newTestProber(responses map[string]fakeResponse) (*Prober, *int, *int) {
	dials := 0
	closes := 0
	cfg := DefaultConfig()
	cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool { return true }
	cfg.ClientFactory = func(c SNMPConfig, target string) (SNMPClient, error) {
		dials++
		return &fakeClient{responses: responses, closed: &closes}, nil
	}
	return New(cfg), &dials, &closes
}

func octets(s string) fakeResponse {
	return fakeResponse{value: []byte(s), pduType: gosnmp.OctetString}
}

func TestProbe_FirstIdentifierWins(t *testing.T) {
	t.Parallel()

	p, dials, closes := newTestProber(map[string]fakeResponse{
		oids.HrDeviceDescr: octets("EPSON TM-T82X Receipt\x00\x00"),
		oids.SysDescr:      octets("should never be asked"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success {
		t.Fatalf("expected success, got error kind %q", res.ErrorKind)
	}
	if res.Model != "EPSON TM-T82X Receipt" {
		t.Errorf("expected control bytes stripped, got %q", res.Model)
	}
	if res.OIDUsed != oids.HrDeviceDescr {
		t.Errorf("expected oid_used %s, got %s", oids.HrDeviceDescr, res.OIDUsed)
	}
	if *dials != 1 {
		t.Errorf("expected exactly 1 SNMP client, got %d", *dials)
	}
	if *closes != 1 {
		t.Errorf("expected the client closed once, got %d", *closes)
	}
}

func TestProbe_FallsThroughToLastIdentifier(t *testing.T) {
	t.Parallel()

	p, dials, closes := newTestProber(map[string]fakeResponse{
		// identifiers 1-2 missing (protocol error), 3 answers empty padding
		oids.EpsonModelName:        octets("\x00\x00"),
		oids.PrtGeneralPrinterName: octets("HP LaserJet 400"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success {
		t.Fatalf("expected success, got error kind %q", res.ErrorKind)
	}
	if res.Model != "HP LaserJet 400" {
		t.Errorf("expected HP LaserJet 400, got %q", res.Model)
	}
	if res.OIDUsed != oids.PrtGeneralPrinterName {
		t.Errorf("expected fourth identifier, got %s", res.OIDUsed)
	}
	if *dials != 4 {
		t.Errorf("expected 4 fresh clients (one per attempt), got %d", *dials)
	}
	if *closes != 4 {
		t.Errorf("expected every client closed, got %d closes", *closes)
	}
}

func TestProbe_AllIdentifiersFail(t *testing.T) {
	t.Parallel()

	p, dials, _ := newTestProber(map[string]fakeResponse{})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.ErrorKind != ErrorKindNoResponse {
		t.Errorf("expected no_response, got %q", res.ErrorKind)
	}
	if *dials != 4 {
		t.Errorf("expected all 4 identifiers attempted, got %d", *dials)
	}
}

func TestProbe_EmptyModelOnLastIdentifier(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		// Only the last identifier answers, and with padding only.
		oids.PrtGeneralPrinterName: octets("\x00 \x00"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if res.ErrorKind != ErrorKindEmptyModel {
		t.Errorf("expected empty_model, got %q", res.ErrorKind)
	}
}

func TestProbe_EmptyValueMidListIsNoResponse(t *testing.T) {
	t.Parallel()

	// Protocol-level success with an empty value on identifier 2, then
	// errors for the rest: the final classification follows the last
	// attempted identifier, so this is no_response.
	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.SysDescr: octets("\x00\x00"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if res.ErrorKind != ErrorKindNoResponse {
		t.Errorf("expected no_response, got %q", res.ErrorKind)
	}
}

func TestProbe_GenericDescriptionIsFallbackOnly(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.HrDeviceDescr: octets("EPSON Built-in 11b/g/n Print Server"),
		oids.SysDescr:      octets("EPSON TM-T88V"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success {
		t.Fatalf("expected success, got error kind %q", res.ErrorKind)
	}
	if res.Model != "EPSON TM-T88V" {
		t.Errorf("expected the specific model to beat the generic description, got %q", res.Model)
	}
	if res.OIDUsed != oids.SysDescr {
		t.Errorf("expected sysDescr, got %s", res.OIDUsed)
	}
}

func TestProbe_GenericDescriptionUsedWhenNothingBetter(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.HrDeviceDescr: octets("EPSON Built-in 11b/g/n Print Server"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success {
		t.Fatalf("expected the generic fallback to be returned, got %q", res.ErrorKind)
	}
	if res.Model != "EPSON Built-in 11b/g/n Print Server" {
		t.Errorf("unexpected model %q", res.Model)
	}
	if res.OIDUsed != oids.HrDeviceDescr {
		t.Errorf("expected hrDeviceDescr, got %s", res.OIDUsed)
	}
}

func TestProbe_NoSuchObjectTreatedAsMiss(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.HrDeviceDescr: {value: nil, pduType: gosnmp.NoSuchObject},
		oids.SysDescr:      octets("Canon LBP-2900"),
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success || res.Model != "Canon LBP-2900" {
		t.Fatalf("expected fall-through past NoSuchObject, got %+v", res)
	}
}

func TestProbe_InvalidIPDoesNoNetworkIO(t *testing.T) {
	t.Parallel()

	reachCalls := 0
	dials := 0
	cfg := DefaultConfig()
	cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool {
		reachCalls++
		return true
	}
	cfg.ClientFactory = func(c SNMPConfig, target string) (SNMPClient, error) {
		dials++
		return nil, fmt.Errorf("should not be called")
	}
	p := New(cfg)

	for _, ip := range []string{"", "256.1.1.1", "printer.local", "1.2.3"} {
		res := p.Probe(context.Background(), ip, Options{})
		if res.ErrorKind != ErrorKindInvalidIP {
			t.Errorf("ip %q: expected invalid_ip, got %q", ip, res.ErrorKind)
		}
	}

	if reachCalls != 0 {
		t.Errorf("expected zero reachability checks for invalid input, got %d", reachCalls)
	}
	if dials != 0 {
		t.Errorf("expected zero SNMP dials for invalid input, got %d", dials)
	}
}

func TestProbe_UnreachableSkipsSNMP(t *testing.T) {
	t.Parallel()

	dials := 0
	cfg := DefaultConfig()
	cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool { return false }
	cfg.ClientFactory = func(c SNMPConfig, target string) (SNMPClient, error) {
		dials++
		return nil, fmt.Errorf("should not be called")
	}
	p := New(cfg)

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if res.ErrorKind != ErrorKindUnreachable {
		t.Errorf("expected unreachable, got %q", res.ErrorKind)
	}
	if dials != 0 {
		t.Errorf("expected zero SNMP dials for unreachable host, got %d", dials)
	}
}

func TestProbe_SkipReachability(t *testing.T) {
	t.Parallel()

	reachCalls := 0
	cfg := DefaultConfig()
	cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool {
		reachCalls++
		return false
	}
	cfg.ClientFactory = func(c SNMPConfig, target string) (SNMPClient, error) {
		return &fakeClient{responses: map[string]fakeResponse{
			oids.HrDeviceDescr: octets("EPSON TM-T20"),
		}}, nil
	}
	p := New(cfg)

	res := p.Probe(context.Background(), "192.168.1.50", Options{SkipReachability: true})

	if !res.Success {
		t.Fatalf("expected success in force mode, got %q", res.ErrorKind)
	}
	if reachCalls != 0 {
		t.Errorf("expected reachability check skipped, got %d calls", reachCalls)
	}
}

func TestProbe_ObserverSeesStages(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.SysDescr: octets("HP LaserJet 400"),
	})

	var stages []string
	res := p.Probe(context.Background(), "192.168.1.50", Options{
		Observer: func(ev Event) { stages = append(stages, ev.Stage) },
	})

	if !res.Success {
		t.Fatalf("expected success, got %q", res.ErrorKind)
	}
	want := []string{"validate", "reachability", "snmp_get", "snmp_get", "done"}
	if len(stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d: expected %s, got %s", i, want[i], stages[i])
		}
	}
}

func TestProbe_CancelledContextStopsAttempts(t *testing.T) {
	t.Parallel()

	dials := 0
	cfg := DefaultConfig()
	cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool { return true }
	cfg.ClientFactory = func(c SNMPConfig, target string) (SNMPClient, error) {
		dials++
		return &fakeClient{responses: map[string]fakeResponse{}}, nil
	}
	p := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Probe(ctx, "192.168.1.50", Options{})

	if res.Success {
		t.Fatal("expected failure for cancelled context")
	}
	if dials != 0 {
		t.Errorf("expected no SNMP attempts after cancellation, got %d", dials)
	}
}

func TestProbe_StringValueAccepted(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestProber(map[string]fakeResponse{
		oids.HrDeviceDescr: {value: "Brother HL-L2350DW", pduType: gosnmp.OctetString},
	})

	res := p.Probe(context.Background(), "192.168.1.50", Options{})

	if !res.Success || res.Model != "Brother HL-L2350DW" {
		t.Fatalf("expected string PDU value accepted, got %+v", res)
	}
}

func TestTestConnectivity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ping     bool
		port     bool
		wantUp   bool
		ip       string
		wantPriv bool
	}{
		{"both up", true, true, true, "8.8.8.8", false},
		{"ping only", true, false, true, "192.168.1.50", true},
		{"port only", false, true, true, "10.0.0.9", true},
		{"both down", false, false, false, "203.0.113.7", false},
		{"loopback", false, false, false, "127.0.0.1", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.PingFn = func(ip string) bool { return tc.ping }
			cfg.ReachFn = func(ip string, port uint16, timeout time.Duration) bool { return tc.port }
			p := New(cfg)

			c := p.TestConnectivity(tc.ip)
			if c.Reachable != tc.wantUp {
				t.Errorf("Reachable = %v, want %v", c.Reachable, tc.wantUp)
			}
			if c.IsPrivate != tc.wantPriv {
				t.Errorf("IsPrivate = %v, want %v", c.IsPrivate, tc.wantPriv)
			}
		})
	}
}
