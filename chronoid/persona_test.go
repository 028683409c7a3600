package chronoid

import "testing"

func TestMixVectors(t *testing.T) {
	// Fixed expectations computed independently from the multiplier table.
	cases := []struct {
		value uint64
		bits  uint8
		idx   uint8
		salt  uint32
		want  uint64
	}{
		{5, 16, 3, 0xDEADBEEF, 0xF346},
		{5, 16, 4, 0xDEADBEEF, 0xE134},
		{0, 16, 0, 0, 0},
		{7, 64, 0, 0, 0x538454127B096653},
		{1, 8, 131, 0, Mix(1, 8, 3, 0)}, // idx wraps mod 128
	}
	for _, c := range cases {
		if got := Mix(c.value, c.bits, c.idx, c.salt); got != c.want {
			t.Errorf("Mix(%d, %d, %d, %#x) = %#x, want %#x",
				c.value, c.bits, c.idx, c.salt, got, c.want)
		}
	}
}

func TestMixZeroWidth(t *testing.T) {
	if got := Mix(12345, 0, 7, 0xFFFF); got != 0 {
		t.Errorf("zero-width Mix = %d, want 0", got)
	}
}

func TestDerivedMultipliersAreOdd(t *testing.T) {
	for bits := uint8(1); bits <= 64; bits++ {
		for i := 0; i < 128; i++ {
			mult := (weylMultipliers[i] >> (64 - bits)) | 1
			if mult%2 == 0 {
				t.Fatalf("multiplier[%d] at %d bits is even", i, bits)
			}
		}
	}
}

func TestMixIsBijective(t *testing.T) {
	// An odd multiplier makes mixing a bijection modulo 2^bits: every 8-bit
	// input must land on a distinct output.
	seen := make(map[uint64]bool, 256)
	for v := uint64(0); v < 256; v++ {
		out := Mix(v, 8, 17, 0xAB)
		if seen[out] {
			t.Fatalf("Mix collision at input %d", v)
		}
		seen[out] = true
	}
}

func TestFromPersonaUnitsVector(t *testing.T) {
	p := Persona{NodeIdx: 3, NodeSalt: 0x1234, SeqIdx: 7, SeqSalt: 0x5678, SeqOffset: 9}
	id := UChrono64s.FromPersonaUnits(100, 42, 7, p)
	if id.Raw() != 0x321BE37588 {
		t.Fatalf("Raw = %#x, want 0x321BE37588", id.Raw())
	}
	if id.Units() != 100 {
		t.Errorf("Units = %d, want 100", id.Units())
	}
}

func TestFromPersonaUnitsDeterminism(t *testing.T) {
	p := Persona{NodeIdx: 11, NodeSalt: 0xCAFE, SeqIdx: 92, SeqSalt: 0xBEEF, SeqOffset: 3}
	a := UChrono64ms.FromPersonaUnits(5000, 17, 29, p)
	b := UChrono64ms.FromPersonaUnits(5000, 17, 29, p)
	if a.Raw() != b.Raw() {
		t.Fatalf("identical inputs produced %#x and %#x", a.Raw(), b.Raw())
	}
}

func TestFromPersonaUnitsSensitivity(t *testing.T) {
	base := Persona{NodeIdx: 11, NodeSalt: 0xCAFE, SeqIdx: 92, SeqSalt: 0xBEEF, SeqOffset: 3}
	ref := UChrono64s.FromPersonaUnits(5000, 17, 29, base).Raw()

	variants := []Persona{
		{NodeIdx: 12, NodeSalt: 0xCAFE, SeqIdx: 92, SeqSalt: 0xBEEF, SeqOffset: 3},
		{NodeIdx: 11, NodeSalt: 0xCAFF, SeqIdx: 92, SeqSalt: 0xBEEF, SeqOffset: 3},
		{NodeIdx: 11, NodeSalt: 0xCAFE, SeqIdx: 93, SeqSalt: 0xBEEF, SeqOffset: 3},
		{NodeIdx: 11, NodeSalt: 0xCAFE, SeqIdx: 92, SeqSalt: 0xBEF0, SeqOffset: 3},
		{NodeIdx: 11, NodeSalt: 0xCAFE, SeqIdx: 92, SeqSalt: 0xBEEF, SeqOffset: 4},
	}
	for i, p := range variants {
		if got := UChrono64s.FromPersonaUnits(5000, 17, 29, p).Raw(); got == ref {
			t.Errorf("persona variation %d produced the same value %#x", i, ref)
		}
	}
}

func TestZeroBitFieldsContributeNothing(t *testing.T) {
	// uchrono32bs has no entropy fields: any persona and coordinates yield
	// the bare time units.
	p := Persona{NodeIdx: 99, NodeSalt: 0xFFFFFFFF, SeqIdx: 1, SeqSalt: 0xFFFFFFFF, SeqOffset: 0xFFFFFFFF}
	id := UChrono32bs.FromPersonaUnits(777, 0xFFFF, 0xFFFF, p)
	if id.Raw() != 777 {
		t.Fatalf("Raw = %d, want 777", id.Raw())
	}
	if id.Entropy() != 0 {
		t.Errorf("Entropy = %d, want 0", id.Entropy())
	}
}

func TestZeroPersonaAtEpochIsZero(t *testing.T) {
	units, err := UChrono64s.parseISOUnits("2020-01-01T00:00:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if units != 0 {
		t.Fatalf("units = %d, want 0", units)
	}
	id := UChrono64s.FromPersonaUnits(units, 0, 0, Persona{})
	if id.Raw() != 0 {
		t.Fatalf("Raw = %#x, want 0x0", id.Raw())
	}
}

func TestNewPersonaIndicesInRange(t *testing.T) {
	src := &fixedEntropy{vals: []uint64{0xFFFFFFFFFFFFFFFF, 0x123456789ABCDEF0}}
	p := NewPersona(src, 15)
	if p.NodeIdx > 127 || p.SeqIdx > 127 {
		t.Errorf("indices out of range: node %d, seq %d", p.NodeIdx, p.SeqIdx)
	}
	if p.SeqOffset > (1<<15)-1 {
		t.Errorf("SeqOffset = %d exceeds 15 bits", p.SeqOffset)
	}
}
