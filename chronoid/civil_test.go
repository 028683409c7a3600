package chronoid

import "testing"

func TestDaysFromCivilKnownDates(t *testing.T) {
	cases := []struct {
		y, m, d int
		want    int64
	}{
		{1970, 1, 1, 0},
		{1970, 1, 2, 1},
		{1969, 12, 31, -1},
		{2000, 1, 1, 10957},
		{2000, 2, 29, 11016},
		{2020, 1, 1, 18262},
		{2024, 2, 29, 19782},
		{1600, 3, 1, -135080},
		{-400, 3, 1, -865566},
	}
	for _, c := range cases {
		if got := daysFromCivil(c.y, c.m, c.d); got != c.want {
			t.Errorf("daysFromCivil(%d, %d, %d) = %d, want %d", c.y, c.m, c.d, got, c.want)
		}
	}
}

func TestCivilRoundTrip(t *testing.T) {
	// Exhaustively round-trip a wide band of days, covering leap centuries
	// and negative years.
	for z := int64(-800000); z <= 800000; z += 13 {
		y, m, d := civilFromDays(z)
		if back := daysFromCivil(y, m, d); back != z {
			t.Fatalf("civilFromDays(%d) = %d-%02d-%02d, daysFromCivil back = %d", z, y, m, d, back)
		}
		if m < 1 || m > 12 || d < 1 || d > 31 {
			t.Fatalf("civilFromDays(%d) produced invalid date %d-%02d-%02d", z, y, m, d)
		}
	}
}

func TestCivilAt(t *testing.T) {
	// 2020-06-15T12:30:45.500000Z
	ct := civilAt(1592224245_500000)
	if ct.year != 2020 || ct.month != 6 || ct.day != 15 {
		t.Errorf("date = %d-%02d-%02d, want 2020-06-15", ct.year, ct.month, ct.day)
	}
	if ct.hour != 12 || ct.minute != 30 || ct.second != 45 || ct.micro != 500000 {
		t.Errorf("time = %02d:%02d:%02d.%06d, want 12:30:45.500000", ct.hour, ct.minute, ct.second, ct.micro)
	}
}
