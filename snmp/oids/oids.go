package oids

// This package centralizes the SNMP OIDs the prober queries.  The constants
// mirror the structure documented in MIB-II, the Host Resources MIB, and the
// Printer MIB so callers can avoid scattering raw dotted strings.

const (
	// --- MIB-II / Host Resources (RFC 1213, RFC 2790) ---

	// SysDescr reports a human-readable system description string.
	SysDescr = "1.3.6.1.2.1.1.1.0"
	// SysObjectID contains the authoritative enterprise OID for the device.
	SysObjectID = "1.3.6.1.2.1.1.2.0"
	// HrDeviceDescr points at HOST-RESOURCES-MIB::hrDeviceDescr.1
	HrDeviceDescr = "1.3.6.1.2.1.25.3.2.1.3.1"
)

const (
	// --- Printer MIB (RFC 3805) ---

	// PrtGeneralPrinterName (prtGeneralPrinterName.1) is the admin-visible
	// printer name and often carries the model on devices that leave
	// hrDeviceDescr generic.
	PrtGeneralPrinterName = "1.3.6.1.2.1.43.5.1.1.16.1"
	// PrtGeneralSerialNumber (prtGeneralSerialNumber.1) is the canonical serial.
	PrtGeneralSerialNumber = "1.3.6.1.2.1.43.5.1.1.17.1"
)

const (
	// --- Epson enterprise MIB ---

	// EpsonEnterprise is the Seiko Epson enterprise root.
	EpsonEnterprise = "1.3.6.1.4.1.1248"
	// EpsonModelName returns the model name on Epson TM-series receipt
	// printers, which frequently report only the network board in sysDescr.
	EpsonModelName = "1.3.6.1.4.1.1248.1.2.2.1.1.1.1"
)

// ModelPriorityList returns the identifiers queried for a model string, in
// priority order: hrDeviceDescr is usually the most specific, sysDescr can be
// generic, the Epson enterprise OID catches TM-series receipt printers, and
// prtGeneralPrinterName is the last-chance fallback.
func ModelPriorityList() []string {
	return []string{HrDeviceDescr, SysDescr, EpsonModelName, PrtGeneralPrinterName}
}
