// Package transcript implements the Fiat-Shamir duplex the inner-product
// argument drives its challenges from. It absorbs domain separators, points,
// and labels, and squeezes challenge bytes, in the label sequencing fixed by
// the protocol (domain-sep, then per round "L", "R", "u").
//
// The duplex is built on SHAKE256: every absorb writes a length-prefixed,
// labeled frame into the running XOF state; every squeeze reads output bytes
// from a clone of that state and then re-absorbs those bytes, so that no two
// challenges are derived from the same XOF output window and the running
// state keeps accumulating everything seen so far.
package transcript

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/takakv/ipa-core/group"
)

// Point is the minimal capability the transcript needs from a group element:
// a canonical byte encoding to absorb.
type Point interface {
	MarshalBinary() ([]byte, error)
}

// Transcript is a stateful Fiat-Shamir accumulator. It is not safe for
// concurrent use; a single prover or verifier invocation must drive it from
// one goroutine only.
type Transcript struct {
	state sha3.ShakeHash
}

// New starts a fresh transcript under a top-level protocol label, analogous
// to merlin's Transcript::new.
func New(label string) *Transcript {
	t := &Transcript{state: sha3.NewShake256()}
	writeFrame(t.state, "transcript", []byte(label))
	return t
}

func writeFrame(h sha3.ShakeHash, label string, data []byte) {
	// Absorb label length, label, data length, data: this prevents a
	// label/data boundary from being ambiguous (e.g. label="ab",data="c"
	// colliding with label="a",data="bc").
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(label)))
	h.Write(lenBuf[:])
	h.Write([]byte(label))
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(data)))
	h.Write(lenBuf[:])
	h.Write(data)
}

// DomainSep absorbs a protocol label together with n encoded as 8
// big-endian bytes. Call this once, first, before any AppendPoint or
// ChallengeBytes call for the proof it scopes.
func (t *Transcript) DomainSep(label string, n uint64) {
	var nBuf [8]byte
	binary.BigEndian.PutUint64(nBuf[:], n)
	writeFrame(t.state, "dom-sep-"+label, nBuf[:])
}

// AppendPoint absorbs a labeled point's canonical encoding.
func (t *Transcript) AppendPoint(label string, p Point) {
	b, err := p.MarshalBinary()
	if err != nil {
		panic("transcript: point failed to marshal: " + err.Error())
	}
	writeFrame(t.state, label, b)
}

// ValidateAndAppendPoint absorbs a labeled point only after confirming its
// canonical encoding actually decodes back to a valid element of grp —
// re-parsing it into a freshly allocated Element via UnmarshalBinary, the
// same check the wire codec applies to every point it reads off the
// network. Validation happens before absorption: letting a malformed point
// influence the running transcript state would make later challenges
// depend on bytes that were never confirmed to be a real group element.
func (t *Transcript) ValidateAndAppendPoint(label string, grp group.Group, p group.Element) error {
	b, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	if err := grp.Element().UnmarshalBinary(b); err != nil {
		return err
	}
	writeFrame(t.state, label, b)
	return nil
}

// ChallengeBytes squeezes n labeled challenge bytes. Each call first absorbs
// the label (so the challenge depends on which label requested it), reads n
// bytes from a clone of the duplex state (so the running transcript itself
// is never consumed by the read), then re-absorbs those bytes into the real
// state so the same output window can never be produced twice.
func (t *Transcript) ChallengeBytes(label string, n int) []byte {
	writeFrame(t.state, "challenge-"+label, nil)
	out := make([]byte, n)
	reader := t.state.Clone()
	if _, err := reader.Read(out); err != nil {
		panic("transcript: squeeze failed: " + err.Error())
	}
	writeFrame(t.state, "challenge-out-"+label, out)
	return out
}
