package chronoid

import (
	"errors"
	"testing"
)

func TestHexFormatting(t *testing.T) {
	cases := []struct {
		v    *Variant
		raw  uint64
		want string
	}{
		{UChrono64ms, 0xB9DCE5C002AB, "0000-B9DC-E5C0-02AB"},
		{UClassic64, 0, "0000-0000-0000-0000"},
		{UClassic64, ^uint64(0), "FFFF-FFFF-FFFF-FFFF"},
		{UClassic32, 0x1A2B3C4D, "1A2B-3C4D"},
		{UChrono32bs, 7, "0000-0007"},
	}
	for _, c := range cases {
		if got := c.v.FromRaw(c.raw).Hex(); got != c.want {
			t.Errorf("%s: Hex(%#x) = %q, want %q", c.v.Name, c.raw, got, c.want)
		}
	}
}

func TestHexRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xDEADBEEF, 0x7FFFFFFFFFFFFFFF, ^uint64(0)}
	for _, raw := range values {
		id := UClassic64.FromRaw(raw)
		back, err := UClassic64.FromHex(id.Hex())
		if err != nil {
			t.Fatalf("FromHex(%q): %v", id.Hex(), err)
		}
		if back.Raw() != raw {
			t.Errorf("round trip %#x -> %q -> %#x", raw, id.Hex(), back.Raw())
		}
	}
}

func TestHexParseForms(t *testing.T) {
	// Hyphens and spaces are separators; case is accepted on input.
	for _, s := range []string{"1A2B-3C4D", "1A2B 3C4D", "1a2b3c4d"} {
		id, err := UClassic32.FromHex(s)
		if err != nil {
			t.Fatalf("FromHex(%q): %v", s, err)
		}
		if id.Raw() != 0x1A2B3C4D {
			t.Errorf("FromHex(%q) = %#x, want 0x1A2B3C4D", s, id.Raw())
		}
	}
}

func TestHexParseErrors(t *testing.T) {
	bad := []string{
		"1A2B-3C",             // too short
		"1A2B-3C4D-5E6F",      // too long for 32-bit
		"1A2B-3C4G",           // non-hex character
		"0000-0000-0000-000Z", // non-hex character, 64-bit length
	}
	for _, s := range bad {
		if _, err := UClassic32.FromHex(s); !errors.Is(err, ErrHexFormat) {
			t.Errorf("FromHex(%q) err = %v, want HexFormatError", s, err)
		}
	}
	if _, err := UClassic64.FromHex("1A2B-3C4D"); !errors.Is(err, ErrHexFormat) {
		t.Errorf("64-bit FromHex of 8 digits err = %v, want HexFormatError", err)
	}
	if _, err := UClassic64.FromHex(""); !errors.Is(err, ErrNullInput) {
		t.Errorf("empty FromHex err = %v, want NullOrEmptyInput", err)
	}
}

func TestHexRoundTripAllVariantWidths(t *testing.T) {
	for _, v := range Variants() {
		id, err := v.FromISOEntropy("2021-03-03T03:03:03Z", 0x3)
		if err != nil {
			t.Fatalf("%s: parse: %v", v.Name, err)
		}
		back, err := v.FromHex(id.Hex())
		if err != nil {
			t.Fatalf("%s: FromHex(%q): %v", v.Name, id.Hex(), err)
		}
		if back.Raw() != id.Raw() {
			t.Errorf("%s: hex round trip %#x -> %q -> %#x", v.Name, id.Raw(), id.Hex(), back.Raw())
		}
	}
}
