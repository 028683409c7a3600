package chronoid

import (
	"fmt"
	"time"
)

// Variant fixes one member of the Chrono-ID family: integer width and
// signedness, epoch, precision, and the node/sequence bit split. All IDs of a
// variant share one bit layout:
//
//	[sign?][time: timeBits][node: NodeBits][seq: SeqBits]
//
// The time field occupies whatever the entropy fields (and the reserved sign
// bit, for signed variants) leave free.
type Variant struct {
	// Name is the catalog name (e.g., "uchrono64ms").
	Name string
	// Width is the total bit width, 32 or 64.
	Width uint8
	// Signed reserves the top bit so the raw value maps onto a signed
	// integer column without becoming negative.
	Signed bool
	// EpochSeconds is the variant epoch in whole seconds since 1970-01-01 UTC.
	EpochSeconds uint64
	// Precision selects the time unit.
	Precision Precision
	// NodeBits is the width of the mixed node field.
	NodeBits uint8
	// SeqBits is the width of the mixed sequence field.
	SeqBits uint8

	timeBits    uint8
	timeShift   uint8
	timeMask    uint64
	entropyMask uint64
	nodeMask    uint64
	seqMask     uint64
	epochMicros uint64
	epochYear   int
	epochDate   string
	hexDigits   int
}

// NewVariant builds a Variant from its configuration and precomputes the
// masks and shifts used on every pack/unpack. The entropy fields (plus the
// sign bit, when signed) must leave at least one bit for the time component.
func NewVariant(name string, width uint8, signed bool, epochSeconds uint64, precision Precision, nodeBits, seqBits uint8) (*Variant, error) {
	if width != 32 && width != 64 {
		return nil, fmt.Errorf("variant %s: width must be 32 or 64, got %d", name, width)
	}
	reserved := int(nodeBits) + int(seqBits)
	if signed {
		reserved++
	}
	if reserved >= int(width) {
		return nil, fmt.Errorf("variant %s: node+seq bits leave no room for time (%d of %d bits)", name, reserved, width)
	}

	v := &Variant{
		Name:         name,
		Width:        width,
		Signed:       signed,
		EpochSeconds: epochSeconds,
		Precision:    precision,
		NodeBits:     nodeBits,
		SeqBits:      seqBits,
	}
	v.timeShift = nodeBits + seqBits
	v.timeBits = width - v.timeShift
	if signed {
		v.timeBits--
	}
	v.timeMask = mask(v.timeBits)
	v.entropyMask = mask(v.timeShift)
	v.nodeMask = mask(nodeBits)
	v.seqMask = mask(seqBits)
	v.epochMicros = epochSeconds * 1_000_000
	ey, em, ed := civilFromDays(int64(epochSeconds / 86400))
	v.epochYear = ey
	v.epochDate = fmt.Sprintf("%04d-%02d-%02d", ey, em, ed)
	v.hexDigits = int(width) / 4
	return v, nil
}

func mustVariant(name string, width uint8, signed bool, epochSeconds uint64, precision Precision, nodeBits, seqBits uint8) *Variant {
	v, err := NewVariant(name, width, signed, epochSeconds, precision, nodeBits, seqBits)
	if err != nil {
		panic(err)
	}
	return v
}

// mask returns a bitmask covering the low bits. Zero-width fields get a zero
// mask and 64-bit fields the full word, with no shift by the word width.
func mask(bits uint8) uint64 {
	switch {
	case bits == 0:
		return 0
	case bits >= 64:
		return ^uint64(0)
	default:
		return (uint64(1) << bits) - 1
	}
}

// TimeShift returns the left shift applied to the time component
// (NodeBits + SeqBits).
func (v *Variant) TimeShift() uint8 { return v.timeShift }

// TimeBits returns the width of the time component.
func (v *Variant) TimeBits() uint8 { return v.timeBits }

// EpochDate returns the variant epoch as a "YYYY-MM-DD" string.
func (v *Variant) EpochDate() string { return v.epochDate }

// UnitsAt converts a UTC instant to time units since the variant epoch.
// Fails with a TimestampUnderflow error if the instant precedes 1970-01-01
// or the variant epoch.
func (v *Variant) UnitsAt(t time.Time) (uint64, error) {
	t = t.UTC()
	sec := t.Unix()
	if sec < 0 {
		return 0, unixUnderflow()
	}
	micros := uint64(sec)*1_000_000 + uint64(t.Nanosecond()/1_000)
	return v.unitsFromCivil(civilAt(micros))
}

// unitsFromCivil is the single unit calculator behind both instant and ISO
// paths. Calendar precisions derive units from the civil year/month fields;
// fixed-duration precisions divide the microsecond offset from the epoch.
func (v *Variant) unitsFromCivil(ct civil) (uint64, error) {
	if ct.totalMicros < 0 {
		return 0, unixUnderflow()
	}
	micros := uint64(ct.totalMicros)
	if micros < v.epochMicros {
		return 0, epochUnderflow(v.epochDate)
	}

	switch v.Precision {
	case Year:
		return uint64(ct.year - v.epochYear), nil
	case HalfYear:
		half := 0
		if ct.month >= 7 {
			half = 1
		}
		return uint64((ct.year-v.epochYear)*2 + half), nil
	case Quarter:
		return uint64((ct.year-v.epochYear)*4 + (ct.month-1)/3), nil
	case Month:
		return uint64((ct.year-v.epochYear)*12 + (ct.month - 1)), nil
	default:
		return (micros - v.epochMicros) / v.Precision.UnitMicros(), nil
	}
}

// unitsToCivil reverses unitsFromCivil: it reconstructs the UTC instant at
// the start of the given unit.
func (v *Variant) unitsToCivil(units uint64) civil {
	switch v.Precision {
	case Year:
		return v.civilYearMonth(v.epochYear+int(units), 1)
	case HalfYear:
		month := 1
		if units%2 == 1 {
			month = 7
		}
		return v.civilYearMonth(v.epochYear+int(units/2), month)
	case Quarter:
		return v.civilYearMonth(v.epochYear+int(units/4), int(units%4)*3+1)
	case Month:
		return v.civilYearMonth(v.epochYear+int(units/12), int(units%12)+1)
	default:
		return civilAt(v.epochMicros + units*v.Precision.UnitMicros())
	}
}

// civilYearMonth builds the civil instant for midnight on the first day of
// the given month.
func (v *Variant) civilYearMonth(year, month int) civil {
	days := daysFromCivil(year, month, 1)
	return civil{
		year:        year,
		month:       month,
		day:         1,
		totalMicros: days * 86_400_000_000,
	}
}
