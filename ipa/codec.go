package ipa

import (
	"strconv"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
)

// MarshalBinary encodes a proof as L_0‖R_0‖…‖L_{k-1}‖R_{k-1}‖a‖b, where
// each point is the backing group's fixed PointBytes width and each scalar
// is the field's fixed ScalarBytes width.
func (p *Proof) MarshalBinary() ([]byte, error) {
	k := len(p.L)
	pointBytes := 0
	if k > 0 {
		pb, err := p.L[0].MarshalBinary()
		if err != nil {
			return nil, err
		}
		pointBytes = len(pb)
	}
	scalarBytes := len(p.A.ToBytes())

	out := make([]byte, 0, 2*k*pointBytes+2*scalarBytes)
	for i := 0; i < k; i++ {
		lb, err := p.L[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		rb, err := p.R[i].MarshalBinary()
		if err != nil {
			return nil, err
		}
		out = append(out, lb...)
		out = append(out, rb...)
	}
	out = append(out, p.A.ToBytes()...)
	out = append(out, p.B.ToBytes()...)
	return out, nil
}

// ProofFromBytes decodes a proof produced by MarshalBinary. pointBytes and
// scalarBytes must match the backing group/field the proof was created
// with (group.Group.PointBytes / scalarfield.Field.ScalarBytes); grp is
// used to construct fresh Element values to decode into, and field to
// reduce the trailing scalars modulo its order.
//
// A malformed slice — wrong overall length, a non-decodable point, or an
// inferred round count k >= 32 — returns a *FormatError rather than a
// generic error.
func ProofFromBytes(pointBytes, scalarBytes int, grp group.Group, field *scalarfield.Field, data []byte) (*Proof, error) {
	if len(data) < 2*scalarBytes {
		return nil, &FormatError{Msg: "slice shorter than two scalars"}
	}
	pointsLen := len(data) - 2*scalarBytes
	var numPoints int
	if pointsLen > 0 {
		if pointBytes == 0 || pointsLen%pointBytes != 0 {
			return nil, &FormatError{Msg: "point section is not a multiple of PointBytes"}
		}
		numPoints = pointsLen / pointBytes
	}
	if numPoints%2 != 0 {
		return nil, &FormatError{Msg: "point section does not contain an even number of points"}
	}
	k := numPoints / 2
	if k >= 32 {
		return nil, &FormatError{Msg: "round count at or above the hard cap"}
	}

	L := make([]group.Element, k)
	R := make([]group.Element, k)
	off := 0
	for i := 0; i < k; i++ {
		L[i] = grp.Element()
		if err := L[i].UnmarshalBinary(data[off : off+pointBytes]); err != nil {
			return nil, &FormatError{Msg: "L[" + strconv.Itoa(i) + "] does not decode to a valid point: " + err.Error()}
		}
		off += pointBytes

		R[i] = grp.Element()
		if err := R[i].UnmarshalBinary(data[off : off+pointBytes]); err != nil {
			return nil, &FormatError{Msg: "R[" + strconv.Itoa(i) + "] does not decode to a valid point: " + err.Error()}
		}
		off += pointBytes
	}

	a := field.FromBytesModOrder(data[off : off+scalarBytes])
	off += scalarBytes
	b := field.FromBytesModOrder(data[off : off+scalarBytes])

	return &Proof{L: L, R: R, A: a, B: b}, nil
}

// SerializedSize returns 2*k*POINT_BYTES + 2*SCALAR_BYTES for p, matching
// the size of the slice MarshalBinary would produce.
func (p *Proof) SerializedSize(pointBytes int) int {
	return 2*len(p.L)*pointBytes + 2*len(p.A.ToBytes())
}
