package chronoid

import "math/rand"

// EntropySource supplies random words for default (non-Persona) entropy bits
// and for Persona creation. Implementations must be safe for concurrent use;
// tests inject deterministic sources.
type EntropySource interface {
	Uint64() uint64
}

// systemEntropy is the process-wide default source. math/rand's top-level
// generator is seeded at startup and safe for concurrent use.
type systemEntropy struct{}

func (systemEntropy) Uint64() uint64 { return rand.Uint64() }

var defaultEntropy EntropySource = systemEntropy{}

// DefaultEntropy returns the process-wide entropy source used when no
// explicit source is supplied.
func DefaultEntropy() EntropySource { return defaultEntropy }

// randomBits draws the requested number of low bits from src.
func randomBits(src EntropySource, bits uint8) uint64 {
	if bits == 0 {
		return 0
	}
	return src.Uint64() & mask(bits)
}
