package chronoid

// Proleptic-Gregorian civil date arithmetic. Both directions are exact for
// all years, positive and negative, so no codec path depends on the host
// clock's representable range.

// daysFromCivil converts a civil date to days since the Unix epoch
// (1970-01-01). Howard Hinnant's era-based algorithm.
func daysFromCivil(y, m, d int) int64 {
	if m <= 2 {
		y--
	}
	var era int64
	if y >= 0 {
		era = int64(y) / 400
	} else {
		era = (int64(y) - 399) / 400
	}
	yoe := int64(y) - era*400 // [0, 399]
	var mp int64
	if m > 2 {
		mp = int64(m) - 3
	} else {
		mp = int64(m) + 9
	}
	doy := (153*mp+2)/5 + int64(d) - 1      // [0, 365]
	doe := yoe*365 + yoe/4 - yoe/100 + doy // [0, 146096]
	return era*146097 + doe - 719468
}

// civilFromDays converts days since the Unix epoch back to a civil date.
// Inverse of daysFromCivil.
func civilFromDays(z int64) (y, m, d int) {
	z += 719468
	var era int64
	if z >= 0 {
		era = z / 146097
	} else {
		era = (z - 146096) / 146097
	}
	doe := z - era*146097                                    // [0, 146096]
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365   // [0, 399]
	yy := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100) // [0, 365]
	mp := (5*doy + 2) / 153                  // [0, 11]
	d = int(doy - (153*mp+2)/5 + 1)
	if mp < 10 {
		m = int(mp + 3)
	} else {
		m = int(mp - 9)
	}
	y = int(yy)
	if m <= 2 {
		y++
	}
	return y, m, d
}

// civil holds a parsed or decoded UTC instant broken into calendar fields
// plus total microseconds since the Unix epoch.
type civil struct {
	year, month, day     int
	hour, minute, second int
	micro                int64
	totalMicros          int64
}

// civilAt rebuilds the calendar fields for a microsecond offset from the
// Unix epoch. The offset must be non-negative.
func civilAt(totalMicros uint64) civil {
	days := int64(totalMicros / 86_400_000_000)
	rem := int64(totalMicros % 86_400_000_000)
	y, m, d := civilFromDays(days)
	return civil{
		year:        y,
		month:       m,
		day:         d,
		hour:        int(rem / 3_600_000_000),
		minute:      int(rem / 60_000_000 % 60),
		second:      int(rem / 1_000_000 % 60),
		micro:       rem % 1_000_000,
		totalMicros: int64(totalMicros),
	}
}
