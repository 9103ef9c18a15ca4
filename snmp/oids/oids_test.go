package oids

import (
	"strings"
	"testing"
)

func TestOIDsAreValidFormat(t *testing.T) {
	t.Parallel()

	// All OIDs should be valid dotted decimal format
	oids := []struct {
		name string
		oid  string
	}{
		{"SysDescr", SysDescr},
		{"SysObjectID", SysObjectID},
		{"HrDeviceDescr", HrDeviceDescr},
		{"PrtGeneralPrinterName", PrtGeneralPrinterName},
		{"PrtGeneralSerialNumber", PrtGeneralSerialNumber},
		{"EpsonEnterprise", EpsonEnterprise},
		{"EpsonModelName", EpsonModelName},
	}

	for _, tc := range oids {
		t.Run(tc.name, func(t *testing.T) {
			if tc.oid == "" {
				t.Fatalf("%s is empty", tc.name)
			}
			if strings.HasPrefix(tc.oid, ".") || strings.HasSuffix(tc.oid, ".") {
				t.Errorf("%s has a leading or trailing dot: %q", tc.name, tc.oid)
			}
			for _, part := range strings.Split(tc.oid, ".") {
				if part == "" {
					t.Errorf("%s contains an empty segment: %q", tc.name, tc.oid)
					continue
				}
				for _, r := range part {
					if r < '0' || r > '9' {
						t.Errorf("%s contains non-numeric segment %q", tc.name, part)
						break
					}
				}
			}
		})
	}
}

func TestModelPriorityListOrder(t *testing.T) {
	t.Parallel()

	list := ModelPriorityList()
	want := []string{HrDeviceDescr, SysDescr, EpsonModelName, PrtGeneralPrinterName}

	if len(list) != len(want) {
		t.Fatalf("expected %d identifiers, got %d", len(want), len(list))
	}
	for i, oid := range want {
		if list[i] != oid {
			t.Errorf("position %d: expected %s, got %s", i, oid, list[i])
		}
	}
}

func TestEpsonModelNameUnderEnterpriseRoot(t *testing.T) {
	t.Parallel()

	if !strings.HasPrefix(EpsonModelName, EpsonEnterprise+".") {
		t.Errorf("EpsonModelName %q is not under EpsonEnterprise %q", EpsonModelName, EpsonEnterprise)
	}
}
