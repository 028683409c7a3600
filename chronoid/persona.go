package chronoid

import "time"

// Persona identifies one generator's entropy "lane". It parameterizes the
// deterministic Weyl mixing of node and sequence values, so uncoordinated
// nodes holding distinct Personas spread overlapping (nodeID, seq) ranges
// across disjoint regions of the entropy space without runtime coordination.
//
// A Persona is created once per generating node, held for the node's
// lifetime, and never itself encoded into an ID. It is purely a parameter to
// pure mixing functions: identical inputs always yield identical IDs.
type Persona struct {
	// NodeIdx selects the Weyl multiplier for the node field (mod 128).
	NodeIdx uint8
	// NodeSalt is XORed into the mixed node field.
	NodeSalt uint32
	// SeqIdx selects the Weyl multiplier for the sequence field (mod 128).
	SeqIdx uint8
	// SeqSalt is XORed into the mixed sequence field.
	SeqSalt uint32
	// SeqOffset shifts the sequence start so lanes that reset their counters
	// to zero still begin at different points.
	SeqOffset uint32
}

// NewPersona draws a fresh Persona from src. seqBits should be the SeqBits
// of the variant the Persona will serve, so the sequence offset covers the
// whole sequence field.
func NewPersona(src EntropySource, seqBits uint8) Persona {
	pool := src.Uint64()
	return Persona{
		NodeIdx:   uint8(pool & 0x7F),
		NodeSalt:  uint32(pool >> 7),
		SeqIdx:    uint8((pool >> 39) & 0x7F),
		SeqSalt:   uint32(src.Uint64()),
		SeqOffset: uint32(randomBits(src, seqBits)),
	}
}

// mix maps a value into a fixed-width pseudo-random bit field: multiply by
// the selected Weyl multiplier, XOR the salt, mask to width. The derived
// multiplier is forced odd, making the multiplication a bijection modulo
// 2^bits. A zero-width field contributes exactly 0 bits and performs no
// shift by the full word width.
func mix(value uint64, bits uint8, idx uint8, salt uint32) uint64 {
	if bits == 0 {
		return 0
	}
	mult := (weylMultipliers[idx%128] >> (64 - bits)) | 1
	return ((value * mult) ^ uint64(salt)) & mask(bits)
}

// Mix exposes the Weyl mixing primitive for a single field.
func Mix(value uint64, bits uint8, personaIdx uint8, salt uint32) uint64 {
	return mix(value, bits, personaIdx, salt)
}

// FromPersonaUnits assembles an ID from precomputed time units and a
// (nodeID, seq) coordinate mixed through the Persona. This is the hot path
// for coordinated-free distributed generation; it is pure and never fails,
// masking oversized inputs like FromUnits does.
func (v *Variant) FromPersonaUnits(units, nodeID, seq uint64, p Persona) ID {
	nodeField := mix(nodeID, v.NodeBits, p.NodeIdx, p.NodeSalt)
	seqField := mix(seq+uint64(p.SeqOffset), v.SeqBits, p.SeqIdx, p.SeqSalt)
	raw := ((units & v.timeMask) << v.timeShift) | (nodeField << v.SeqBits) | seqField
	return ID{raw: raw, variant: v}
}

// FromPersonaTime computes units for the instant and assembles the ID via
// FromPersonaUnits.
func (v *Variant) FromPersonaTime(t time.Time, nodeID, seq uint64, p Persona) (ID, error) {
	units, err := v.UnitsAt(t)
	if err != nil {
		return ID{}, err
	}
	return v.FromPersonaUnits(units, nodeID, seq, p), nil
}
