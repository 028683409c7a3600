package chronoid

import (
	"fmt"
	"strings"
)

// ISO renders the ID's embedded time as an ISO 8601 UTC string:
// zero-padded "YYYY-MM-DDTHH:MM:SS", a 3-digit fraction for millisecond
// precision or a 6-digit fraction for microsecond precision, and a trailing
// "Z". Coarser precisions carry no fraction.
func (id ID) ISO() string {
	ct := id.variant.unitsToCivil(id.Units())
	var b strings.Builder
	fmt.Fprintf(&b, "%04d-%02d-%02dT%02d:%02d:%02d",
		ct.year, ct.month, ct.day, ct.hour, ct.minute, ct.second)
	switch id.variant.Precision {
	case Millisecond:
		fmt.Fprintf(&b, ".%03d", ct.micro/1_000)
	case Microsecond:
		fmt.Fprintf(&b, ".%06d", ct.micro)
	}
	b.WriteByte('Z')
	return b.String()
}

// FromISO parses an ISO 8601 string and packs the instant with fresh random
// entropy.
func (v *Variant) FromISO(s string) (ID, error) {
	return v.FromISOEntropy(s, randomBits(defaultEntropy, v.timeShift))
}

// FromISOEntropy parses an ISO 8601 string and packs the instant with fixed
// entropy bits.
//
// Accepted shape: "YYYY-MM-DDTHH:MM:SS[.fraction][Z|±HH[:MM]]". A space may
// stand in for the 'T'. Strings without a timezone marker are treated as
// UTC; a numeric offset is recognized but its value is not honored, so any
// input is interpreted as UTC.
//
// The fraction is right-padded with zeros to 6 digits when shorter and
// truncated (not rounded) to 6 digits when longer. Instants before
// 1970-01-01 fail first; instants on or after 1970-01-01 but before the
// variant epoch fail with a message naming the variant's epoch date.
func (v *Variant) FromISOEntropy(s string, entropy uint64) (ID, error) {
	units, err := v.parseISOUnits(s)
	if err != nil {
		return ID{}, err
	}
	return v.FromUnits(units, entropy), nil
}

// parseISOUnits runs the single-pass parse and unit calculation.
func (v *Variant) parseISOUnits(s string) (uint64, error) {
	if s == "" {
		return 0, ErrNullInput
	}

	p := isoScanner{s: s}
	year := p.digits(4)
	p.expect('-')
	month := p.digits(2)
	p.expect('-')
	day := p.digits(2)
	p.dateTimeSep()
	hour := p.digits(2)
	p.expect(':')
	minute := p.digits(2)
	p.expect(':')
	second := p.digits(2)
	micro := p.fraction()
	p.timezone()
	if p.failed || p.i != len(p.s) {
		return 0, ErrInvalidFormat
	}

	if month < 1 || month > 12 || day < 1 || day > 31 ||
		hour > 23 || minute > 59 || second > 59 {
		return 0, ErrInvalidFormat
	}

	totalSec := daysFromCivil(year, month, day)*86400 +
		int64(hour)*3600 + int64(minute)*60 + int64(second)
	if totalSec < 0 {
		return 0, unixUnderflow()
	}

	return v.unitsFromCivil(civil{
		year:        year,
		month:       month,
		day:         day,
		hour:        hour,
		minute:      minute,
		second:      second,
		micro:       micro,
		totalMicros: totalSec*1_000_000 + micro,
	})
}

// isoScanner is a minimal cursor over the input; any mismatch latches the
// failed flag so the caller checks once at the end.
type isoScanner struct {
	s      string
	i      int
	failed bool
}

func (p *isoScanner) digits(n int) int {
	if p.failed || p.i+n > len(p.s) {
		p.failed = true
		return 0
	}
	val := 0
	for k := 0; k < n; k++ {
		c := p.s[p.i+k]
		if c < '0' || c > '9' {
			p.failed = true
			return 0
		}
		val = val*10 + int(c-'0')
	}
	p.i += n
	return val
}

func (p *isoScanner) expect(c byte) {
	if p.failed || p.i >= len(p.s) || p.s[p.i] != c {
		p.failed = true
		return
	}
	p.i++
}

// dateTimeSep consumes the date/time separator: 'T' or a single space.
func (p *isoScanner) dateTimeSep() {
	if p.failed || p.i >= len(p.s) || (p.s[p.i] != 'T' && p.s[p.i] != ' ') {
		p.failed = true
		return
	}
	p.i++
}

// fraction consumes an optional ".digits" part and normalizes it to
// microseconds: right-padded to 6 digits, truncated past 6.
func (p *isoScanner) fraction() int64 {
	if p.failed || p.i >= len(p.s) || p.s[p.i] != '.' {
		return 0
	}
	p.i++
	start := p.i
	for p.i < len(p.s) && p.s[p.i] >= '0' && p.s[p.i] <= '9' {
		p.i++
	}
	if p.i == start {
		p.failed = true
		return 0
	}
	var micro int64
	for k := 0; k < 6; k++ {
		micro *= 10
		if start+k < p.i {
			micro += int64(p.s[start+k] - '0')
		}
	}
	return micro
}

// timezone consumes an optional trailing marker: 'Z' or a numeric
// "±HH[:MM]" offset. The offset value is detected only, never applied.
func (p *isoScanner) timezone() {
	if p.failed || p.i >= len(p.s) {
		return
	}
	switch p.s[p.i] {
	case 'Z', 'z':
		p.i++
	case '+', '-':
		p.i++
		p.digits(2)
		if !p.failed && p.i < len(p.s) && p.s[p.i] == ':' {
			p.i++
			p.digits(2)
		} else if !p.failed && p.i+2 <= len(p.s) {
			p.digits(2)
		}
	}
}
