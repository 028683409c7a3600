package chronoid

import "time"

// ID is one Chrono-ID value: the packed raw integer plus the variant that
// defines its layout. The raw integer is the sole persisted representation;
// an ID is immutable once produced.
type ID struct {
	raw     uint64
	variant *Variant
}

// Raw returns the raw integer as an unsigned 64-bit value. For 32-bit
// variants only the low 32 bits are populated.
func (id ID) Raw() uint64 { return id.raw }

// Int64 returns the raw integer reinterpreted as a signed value of the
// variant's width. Catalog variants reserve the sign bit, so this is
// non-negative for values they produce; arbitrary raw inputs round-trip
// bit-exactly either way.
func (id ID) Int64() int64 {
	if id.variant.Width == 32 {
		return int64(int32(uint32(id.raw)))
	}
	return int64(id.raw)
}

// Units returns the time component: units elapsed since the variant epoch.
func (id ID) Units() uint64 {
	return (id.raw >> id.variant.timeShift) & id.variant.timeMask
}

// Entropy returns the entropy component (the mixed node and sequence fields,
// or plain random bits).
func (id ID) Entropy() uint64 {
	return id.raw & id.variant.entropyMask
}

// Time decodes the embedded timestamp as a UTC instant at the start of the
// ID's time unit.
func (id ID) Time() time.Time {
	ct := id.variant.unitsToCivil(id.Units())
	return time.Unix(ct.totalMicros/1_000_000, ct.totalMicros%1_000_000*1_000).UTC()
}

// Variant returns the variant that defines this ID's layout.
func (id ID) Variant() *Variant { return id.variant }

// String returns the hyphenated hex form.
func (id ID) String() string { return id.Hex() }

// FromRaw wraps an existing raw integer in the variant's layout. For 32-bit
// variants the value is masked to 32 bits.
func (v *Variant) FromRaw(raw uint64) ID {
	if v.Width == 32 {
		raw &= 0xFFFFFFFF
	}
	return ID{raw: raw, variant: v}
}

// FromInt64 wraps a signed raw integer, the form a database integer column
// yields. Negative 32-bit values are truncated to their 32-bit pattern.
func (v *Variant) FromInt64(raw int64) ID {
	return v.FromRaw(uint64(raw))
}

// FromUnits packs precomputed time units with explicit entropy bits. Units
// that do not fit the time field are silently truncated by masking: the
// resulting wraparound keeps K-sortability within the variant's bounded span
// and is part of the contract. Because units bypass any clock conversion,
// this also constructs IDs for instants outside the host clock's range.
func (v *Variant) FromUnits(units, entropy uint64) ID {
	raw := ((units & v.timeMask) << v.timeShift) | (entropy & v.entropyMask)
	return ID{raw: raw, variant: v}
}

// FromUnitsRandom packs precomputed time units with fresh random entropy
// drawn from src (TimeShift bits).
func (v *Variant) FromUnitsRandom(units uint64, src EntropySource) ID {
	return v.FromUnits(units, randomBits(src, v.timeShift))
}

// FromTime builds an ID for the given instant with fresh random entropy.
func (v *Variant) FromTime(t time.Time) (ID, error) {
	return v.FromTimeEntropy(t, randomBits(defaultEntropy, v.timeShift))
}

// FromTimeEntropy builds an ID for the given instant with fixed entropy bits.
func (v *Variant) FromTimeEntropy(t time.Time, entropy uint64) (ID, error) {
	units, err := v.UnitsAt(t)
	if err != nil {
		return ID{}, err
	}
	return v.FromUnits(units, entropy), nil
}

// New builds an ID for the current instant with fresh random entropy.
func (v *Variant) New() (ID, error) {
	return v.FromTime(time.Now())
}
