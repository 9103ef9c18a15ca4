package probe

import (
	"context"
	"fmt"

	"printerid/logger"
	"printerid/model"
	"printerid/util"

	"github.com/gosnmp/gosnmp"
)

// queryModel walks the identifier priority list and returns the first usable
// model string. Each identifier gets exactly one fresh stateless GET; a
// value that cleans down to nothing counts as a miss and the next identifier
// is tried. Generic print-server descriptions are held back as a fallback
// and only returned when no identifier yields anything better.
func (p *Prober) queryModel(ctx context.Context, ip string, obs Observer) (string, string, ErrorKind) {
	factory := p.cfg.ClientFactory
	if factory == nil {
		factory = NewSNMPClient
	}

	snmpCfg := SNMPConfig{
		Community: p.cfg.Community,
		Version:   p.cfg.Version.wire(),
		Port:      p.cfg.Port,
		Timeout:   p.cfg.SNMPTimeout,
		Retries:   p.cfg.SNMPRetries,
	}

	var fallbackModel, fallbackOID string
	lastEmpty := false

	for _, oid := range p.cfg.OIDs {
		select {
		case <-ctx.Done():
			return "", "", ErrorKindNoResponse
		default:
		}

		lastEmpty = false
		raw, ok := getOne(factory, snmpCfg, ip, oid)
		if !ok {
			emit(obs, Event{Stage: "snmp_get", OID: oid, OK: false, Detail: "no response"})
			continue
		}

		cleaned := model.Normalize(raw)
		if cleaned == "" {
			// Answered at the protocol level, but the value was padding only.
			lastEmpty = true
			emit(obs, Event{Stage: "snmp_get", OID: oid, OK: false, Detail: "empty after cleaning"})
			continue
		}

		if model.IsGenericDescription(cleaned) {
			if fallbackModel == "" {
				fallbackModel = cleaned
				fallbackOID = oid
			}
			emit(obs, Event{Stage: "snmp_get", OID: oid, OK: false, Detail: "generic description: " + cleaned})
			if logger.Global != nil {
				logger.Global.Debug("skipping generic description", "ip", ip, "oid", oid, "value", cleaned)
			}
			continue
		}

		emit(obs, Event{Stage: "snmp_get", OID: oid, OK: true, Detail: cleaned})
		return cleaned, oid, ""
	}

	// Nothing specific found; a generic print-server string beats nothing.
	if fallbackModel != "" {
		return fallbackModel, fallbackOID, ""
	}
	if lastEmpty {
		return "", "", ErrorKindEmptyModel
	}
	return "", "", ErrorKindNoResponse
}

// getOne issues a single GET for oid against ip. ok is false when the
// connection failed, the device answered with a protocol error, or the value
// was absent or not a string. The client is closed before returning.
func getOne(factory ClientFactory, cfg SNMPConfig, ip, oid string) (string, bool) {
	client, err := factory(cfg, ip)
	if err != nil {
		if logger.Global != nil {
			logger.Global.Debug("SNMP dial failed", "ip", ip, "oid", oid, "error", err.Error())
		}
		return "", false
	}
	defer client.Close()

	pkt, err := client.Get([]string{oid})
	if err != nil || pkt == nil || pkt.Error != gosnmp.NoError || len(pkt.Variables) == 0 {
		return "", false
	}

	pdu := pkt.Variables[0]
	switch pdu.Type {
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance, gosnmp.EndOfMibView:
		return "", false
	}

	switch v := pdu.Value.(type) {
	case []byte:
		return util.DecodeOctetString(v), true
	case string:
		return v, true
	default:
		if logger.Global != nil {
			logger.Global.Debug("SNMP value has unexpected type", "ip", ip, "oid", oid, "type", fmt.Sprintf("%T", pdu.Value))
		}
		return "", false
	}
}
