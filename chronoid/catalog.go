package chronoid

import "strings"

// Variant epochs, in whole seconds since 1970-01-01T00:00:00Z.
const (
	// Epoch2000 anchors the classic 32-bit family.
	Epoch2000 uint64 = 946684800
	// Epoch2020 anchors the chrono (persona-mixed) family.
	Epoch2020 uint64 = 1577836800
)

// Chrono family: 2020-epoch, persona-mixed variants. The comment on each
// gives the bit split [time/node/seq]; signed variants reserve the top bit.
var (
	// 64-bit identity tier.
	UChrono64mo = mustVariant("uchrono64mo", 64, false, Epoch2020, Month, 26, 26)       // [12/26/26]
	Chrono64mo  = mustVariant("chrono64mo", 64, true, Epoch2020, Month, 25, 26)         // [12/25/26]
	UChrono64w  = mustVariant("uchrono64w", 64, false, Epoch2020, Week, 26, 24)         // [14/26/24]
	Chrono64w   = mustVariant("chrono64w", 64, true, Epoch2020, Week, 25, 24)           // [14/25/24]
	UChrono64d  = mustVariant("uchrono64d", 64, false, Epoch2020, Day, 24, 23)          // [17/24/23]
	Chrono64d   = mustVariant("chrono64d", 64, true, Epoch2020, Day, 23, 23)            // [17/23/23]
	UChrono64h  = mustVariant("uchrono64h", 64, false, Epoch2020, Hour, 22, 21)         // [21/22/21]
	Chrono64h   = mustVariant("chrono64h", 64, true, Epoch2020, Hour, 21, 21)           // [21/21/21]
	UChrono64m  = mustVariant("uchrono64m", 64, false, Epoch2020, Minute, 19, 18)       // [27/19/18]
	Chrono64m   = mustVariant("chrono64m", 64, true, Epoch2020, Minute, 18, 18)         // [27/18/18]
	UChrono64s  = mustVariant("uchrono64s", 64, false, Epoch2020, Second, 16, 15)       // [33/16/15]
	Chrono64s   = mustVariant("chrono64s", 64, true, Epoch2020, Second, 15, 15)         // [33/15/15]

	// 64-bit high-frequency tier.
	UChrono64ds = mustVariant("uchrono64ds", 64, false, Epoch2020, Decisecond, 15, 13)  // [36/15/13]
	Chrono64ds  = mustVariant("chrono64ds", 64, true, Epoch2020, Decisecond, 14, 13)    // [36/14/13]
	UChrono64cs = mustVariant("uchrono64cs", 64, false, Epoch2020, Centisecond, 12, 12) // [40/12/12]
	Chrono64cs  = mustVariant("chrono64cs", 64, true, Epoch2020, Centisecond, 11, 12)   // [40/11/12]
	UChrono64ms = mustVariant("uchrono64ms", 64, false, Epoch2020, Millisecond, 11, 10) // [43/11/10]
	Chrono64ms  = mustVariant("chrono64ms", 64, true, Epoch2020, Millisecond, 10, 10)   // [43/10/10]
	UChrono64us = mustVariant("uchrono64us", 64, false, Epoch2020, Microsecond, 6, 5)   // [53/6/5]
	Chrono64us  = mustVariant("chrono64us", 64, true, Epoch2020, Microsecond, 5, 5)     // [53/5/5]

	// 32-bit identity tier.
	UChrono32y  = mustVariant("uchrono32y", 32, false, Epoch2020, Year, 13, 11)         // [8/13/11]
	Chrono32y   = mustVariant("chrono32y", 32, true, Epoch2020, Year, 12, 11)           // [8/12/11]
	UChrono32hy = mustVariant("uchrono32hy", 32, false, Epoch2020, HalfYear, 12, 11)    // [9/12/11]
	Chrono32hy  = mustVariant("chrono32hy", 32, true, Epoch2020, HalfYear, 11, 11)      // [9/11/11]
	UChrono32q  = mustVariant("uchrono32q", 32, false, Epoch2020, Quarter, 11, 11)      // [10/11/11]
	Chrono32q   = mustVariant("chrono32q", 32, true, Epoch2020, Quarter, 10, 11)        // [10/10/11]
	UChrono32mo = mustVariant("uchrono32mo", 32, false, Epoch2020, Month, 10, 10)       // [12/10/10]
	Chrono32mo  = mustVariant("chrono32mo", 32, true, Epoch2020, Month, 9, 10)          // [12/9/10]
	UChrono32w  = mustVariant("uchrono32w", 32, false, Epoch2020, Week, 9, 9)           // [14/9/9]
	Chrono32w   = mustVariant("chrono32w", 32, true, Epoch2020, Week, 8, 9)             // [14/8/9]
	UChrono32d  = mustVariant("uchrono32d", 32, false, Epoch2020, Day, 8, 7)            // [17/8/7]
	Chrono32d   = mustVariant("chrono32d", 32, true, Epoch2020, Day, 7, 7)              // [17/7/7]

	// 32-bit sort-key tier.
	UChrono32h  = mustVariant("uchrono32h", 32, false, Epoch2020, Hour, 5, 5)           // [22/5/5]
	Chrono32h   = mustVariant("chrono32h", 32, true, Epoch2020, Hour, 4, 5)             // [22/4/5]
	UChrono32tm = mustVariant("uchrono32tm", 32, false, Epoch2020, TenMinute, 4, 4)     // [24/4/4]
	Chrono32tm  = mustVariant("chrono32tm", 32, true, Epoch2020, TenMinute, 3, 4)       // [24/3/4]
	UChrono32m  = mustVariant("uchrono32m", 32, false, Epoch2020, Minute, 2, 2)         // [28/2/2]
	Chrono32m   = mustVariant("chrono32m", 32, true, Epoch2020, Minute, 1, 2)           // [28/1/2]
	UChrono32bs = mustVariant("uchrono32bs", 32, false, Epoch2020, BinarySecond, 0, 0)  // [32/0/0]
	Chrono32bs  = mustVariant("chrono32bs", 32, true, Epoch2020, BinarySecond, 0, 0)    // [31/0/0]
)

// Classic family: the plain-entropy variants (2000-epoch 32-bit, 1970-epoch
// 64-bit). They predate the node/seq split, so all entropy bits sit in the
// sequence field; default generation draws them as one random block.
var (
	UClassic32   = mustVariant("uclassic32", 32, false, Epoch2000, Day, 0, 14)    // [18/0/14]
	Classic32    = mustVariant("classic32", 32, true, Epoch2000, Day, 0, 13)      // [18/0/13]
	UClassic32h  = mustVariant("uclassic32h", 32, false, Epoch2000, Hour, 0, 11)  // [21/0/11]
	Classic32h   = mustVariant("classic32h", 32, true, Epoch2000, Hour, 0, 10)    // [21/0/10]
	UClassic32m  = mustVariant("uclassic32m", 32, false, Epoch2000, Minute, 0, 5) // [27/0/5]
	Classic32m   = mustVariant("classic32m", 32, true, Epoch2000, Minute, 0, 4)   // [27/0/4]
	UClassic32w  = mustVariant("uclassic32w", 32, false, Epoch2000, Week, 0, 18)  // [14/0/18]
	Classic32w   = mustVariant("classic32w", 32, true, Epoch2000, Week, 0, 17)    // [14/0/17]
	UClassic64   = mustVariant("uclassic64", 64, false, 0, Second, 0, 28)         // [36/0/28]
	Classic64    = mustVariant("classic64", 64, true, 0, Second, 0, 27)           // [36/0/27]
	UClassic64ms = mustVariant("uclassic64ms", 64, false, 0, Millisecond, 0, 20)  // [44/0/20]
	Classic64ms  = mustVariant("classic64ms", 64, true, 0, Millisecond, 0, 19)    // [44/0/19]
	UClassic64us = mustVariant("uclassic64us", 64, false, 0, Microsecond, 0, 10)  // [54/0/10]
	Classic64us  = mustVariant("classic64us", 64, true, 0, Microsecond, 0, 9)     // [54/0/9]
)

// catalog maps variant names (and short aliases) to their configurations.
var catalog = buildCatalog()

func buildCatalog() map[string]*Variant {
	all := []*Variant{
		UChrono64mo, Chrono64mo, UChrono64w, Chrono64w, UChrono64d, Chrono64d,
		UChrono64h, Chrono64h, UChrono64m, Chrono64m, UChrono64s, Chrono64s,
		UChrono64ds, Chrono64ds, UChrono64cs, Chrono64cs, UChrono64ms, Chrono64ms,
		UChrono64us, Chrono64us,
		UChrono32y, Chrono32y, UChrono32hy, Chrono32hy, UChrono32q, Chrono32q,
		UChrono32mo, Chrono32mo, UChrono32w, Chrono32w, UChrono32d, Chrono32d,
		UChrono32h, Chrono32h, UChrono32tm, Chrono32tm, UChrono32m, Chrono32m,
		UChrono32bs, Chrono32bs,
		UClassic32, Classic32, UClassic32h, Classic32h, UClassic32m, Classic32m,
		UClassic32w, Classic32w, UClassic64, Classic64, UClassic64ms, Classic64ms,
		UClassic64us, Classic64us,
	}
	m := make(map[string]*Variant, len(all)*2)
	for _, v := range all {
		m[v.Name] = v
		// Short aliases: "uchrono64ms" -> "u64ms", "chrono32y" -> "32y".
		if short, ok := strings.CutPrefix(v.Name, "uchrono"); ok {
			m["u"+short] = v
		} else if short, ok := strings.CutPrefix(v.Name, "chrono"); ok {
			m[short] = v
		}
	}
	return m
}

// Lookup resolves a variant by catalog name or short alias,
// case-insensitively. The second return is false for unknown names.
func Lookup(name string) (*Variant, bool) {
	v, ok := catalog[strings.ToLower(name)]
	return v, ok
}

// Variants returns the full catalog in an unspecified order.
func Variants() []*Variant {
	seen := make(map[*Variant]bool, len(catalog))
	out := make([]*Variant, 0, len(catalog))
	for _, v := range catalog {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
