package util

import (
	"testing"
)

func TestDecodeOctetString_UTF8(t *testing.T) {
	b := []byte("EPSON TM-T88V")
	got := DecodeOctetString(b)
	want := "EPSON TM-T88V"
	if got != want {
		t.Fatalf("DecodeOctetString UTF8: got %q want %q", got, want)
	}
}

func TestDecodeOctetString_NonUTF8(t *testing.T) {
	// invalid UTF-8 single byte > 127 should be mapped to the same codepoint
	b := []byte{0xff, 0x20, 0x41}
	got := DecodeOctetString(b)
	if got == "" {
		t.Fatalf("expected non-empty string for non-UTF8 input")
	}
}

func TestDecodeOctetString_ControlPadding(t *testing.T) {
	b := []byte("HP LaserJet 400\x00\x00\x00")
	got := DecodeOctetString(b)
	want := "HP LaserJet 400"
	if got != want {
		t.Fatalf("DecodeOctetString control padding: got %q want %q", got, want)
	}
}

func TestDecodeOctetString_OnlyControlBytes(t *testing.T) {
	b := []byte{0x00, 0x01, 0x02, 0x1f}
	got := DecodeOctetString(b)
	if got != "" {
		t.Fatalf("expected empty string for control-only input, got %q", got)
	}
}

func TestDecodeOctetString_Nil(t *testing.T) {
	if got := DecodeOctetString(nil); got != "" {
		t.Fatalf("expected empty string for nil input, got %q", got)
	}
}
