package chronoid

// Precision selects the time-resolution level of a variant. It controls both
// the duration of one time unit and whether units are computed from calendar
// fields (Y, HY, Q, MO) or by fixed-duration division (W through US).
type Precision uint8

// Supported precisions, ordered from lowest resolution (year) to highest
// (microsecond). The ordinal values are part of the wire-compatible contract
// and must not be reordered.
const (
	Year Precision = iota
	HalfYear
	Quarter
	Month
	Week
	Day
	Hour
	TenMinute
	Minute
	BinarySecond
	Second
	Decisecond
	Centisecond
	Millisecond
	Microsecond
)

// precisionNames maps each precision to its short mnemonic.
var precisionNames = [...]string{
	Year:         "Y",
	HalfYear:     "HY",
	Quarter:      "Q",
	Month:        "MO",
	Week:         "W",
	Day:          "D",
	Hour:         "H",
	TenMinute:    "TM",
	Minute:       "M",
	BinarySecond: "BS",
	Second:       "S",
	Decisecond:   "DS",
	Centisecond:  "CS",
	Millisecond:  "MS",
	Microsecond:  "US",
}

// String returns the short mnemonic for the precision (e.g., "MS").
func (p Precision) String() string {
	if int(p) < len(precisionNames) {
		return precisionNames[p]
	}
	return "?"
}

// Calendar reports whether units for this precision are derived from civil
// year/month fields rather than by fixed-duration division.
func (p Precision) Calendar() bool {
	return p <= Month
}

// UnitMicros returns the duration of one unit in microseconds for
// fixed-duration precisions, and 0 for calendar precisions whose units have
// variable length.
func (p Precision) UnitMicros() uint64 {
	switch p {
	case Week:
		return 604_800_000_000
	case Day:
		return 86_400_000_000
	case Hour:
		return 3_600_000_000
	case TenMinute:
		return 600_000_000
	case Minute:
		return 60_000_000
	case BinarySecond:
		return 2_000_000
	case Second:
		return 1_000_000
	case Decisecond:
		return 100_000
	case Centisecond:
		return 10_000
	case Millisecond:
		return 1_000
	case Microsecond:
		return 1
	default:
		return 0
	}
}
