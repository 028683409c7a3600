package chronoid

import (
	"sync"
	"time"
)

// personaRotateInterval bounds how long a generator keeps one entropy lane.
const personaRotateInterval = 60 * time.Second

// Generator is the stateful, high-frequency ID source for one variant. It
// holds a Persona plus a sequence counter: calls within the same time unit
// increment the sequence, sequence overflow and clock rollback rotate the
// Persona onto a fresh lane, and lanes are also rotated on a fixed interval.
//
// All codec functions underneath remain pure; the Generator is the only
// stateful layer and is safe for concurrent use.
type Generator struct {
	mu         sync.Mutex
	variant    *Variant
	src        EntropySource
	persona    Persona
	nodeID     uint64
	lastUnits  uint64
	seq        uint64
	lastRotate time.Time

	// now is swappable in tests.
	now func() time.Time
}

// NewGenerator creates a Generator with a fresh random Persona drawn from
// the default entropy source.
func NewGenerator(v *Variant) *Generator {
	return NewGeneratorSource(v, defaultEntropy)
}

// NewGeneratorSource creates a Generator drawing Personas and node IDs from
// the given source.
func NewGeneratorSource(v *Variant, src EntropySource) *Generator {
	g := &Generator{variant: v, src: src, now: time.Now}
	g.persona = NewPersona(src, v.SeqBits)
	g.nodeID = randomBits(src, 16)
	g.lastRotate = g.now()
	return g
}

// NewGeneratorPersona creates a Generator seeded with a known Persona and
// node ID, e.g. one restored from a persona registry. Rotations triggered by
// overflow or rollback still replace it.
func NewGeneratorPersona(v *Variant, src EntropySource, p Persona, nodeID uint64) *Generator {
	g := &Generator{variant: v, src: src, now: time.Now, persona: p, nodeID: nodeID}
	g.lastRotate = g.now()
	return g
}

// Next generates an ID for the current instant.
func (g *Generator) Next() (ID, error) {
	return g.NextAt(g.now())
}

// NextAt generates an ID for the given instant, advancing the sequence
// within a time unit and rotating the Persona on overflow or rollback.
func (g *Generator) NextAt(t time.Time) (ID, error) {
	units, err := g.variant.UnitsAt(t)
	if err != nil {
		return ID{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case units > g.lastUnits:
		g.lastUnits = units
		g.seq = 0
	case units == g.lastUnits:
		g.seq = (g.seq + 1) & g.variant.seqMask
		if g.seq == 0 {
			g.rotateLocked(t)
		}
	default:
		// Clock rollback: the (units, seq) coordinate may repeat, so a fresh
		// lane keeps the value unique.
		g.rotateLocked(t)
		g.seq = (g.seq + 1) & g.variant.seqMask
	}

	if t.Sub(g.lastRotate) > personaRotateInterval {
		g.rotateLocked(t)
	}

	return g.variant.FromPersonaUnits(units, g.nodeID, g.seq, g.persona), nil
}

// Persona returns the generator's current Persona.
func (g *Generator) Persona() Persona {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.persona
}

// NodeID returns the generator's current node ID.
func (g *Generator) NodeID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodeID
}

// Rotate forces the generator onto a fresh entropy lane.
func (g *Generator) Rotate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rotateLocked(g.now())
}

func (g *Generator) rotateLocked(t time.Time) {
	g.persona = NewPersona(g.src, g.variant.SeqBits)
	g.nodeID = randomBits(g.src, 16)
	g.lastRotate = t
}
