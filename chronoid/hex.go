package chronoid

import "strings"

const hexUpper = "0123456789ABCDEF"

// Hex returns the canonical hex form: the raw integer zero-padded to the
// variant's full width in uppercase hex, grouped into 4-digit blocks joined
// by hyphens ("XXXX-XXXX" for 32-bit, "XXXX-XXXX-XXXX-XXXX" for 64-bit).
func (id ID) Hex() string {
	digits := id.variant.hexDigits
	var b strings.Builder
	b.Grow(digits + digits/4 - 1)
	for i := 0; i < digits; i++ {
		if i > 0 && i%4 == 0 {
			b.WriteByte('-')
		}
		shift := uint((digits - 1 - i) * 4)
		b.WriteByte(hexUpper[(id.raw>>shift)&0xF])
	}
	return b.String()
}

// FromHex parses a hyphen-grouped (or plain, or space-grouped) hex string.
// After separators are stripped the input must hold exactly the variant's
// full width in hex digits; any other length or a non-hex character fails
// with a HexFormatError.
func (v *Variant) FromHex(s string) (ID, error) {
	if s == "" {
		return ID{}, ErrNullInput
	}
	var raw uint64
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '-' || c == ' ' {
			continue
		}
		var nib uint64
		switch {
		case c >= '0' && c <= '9':
			nib = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			nib = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			nib = uint64(c-'A') + 10
		default:
			return ID{}, hexFormatError(v.Name, s)
		}
		if n == v.hexDigits {
			return ID{}, hexFormatError(v.Name, s)
		}
		raw = raw<<4 | nib
		n++
	}
	if n != v.hexDigits {
		return ID{}, hexFormatError(v.Name, s)
	}
	return ID{raw: raw, variant: v}, nil
}
