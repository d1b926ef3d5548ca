package ipa

import (
	"math/bits"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
	"github.com/takakv/ipa-core/transcript"
)

// Proof is the opaque witness create emits and Verify consumes: an ordered
// pair of group-element vectors of length k = log2(n), plus the two final
// scalars the recursion collapses to.
type Proof struct {
	L []group.Element
	R []group.Element
	A scalarfield.Scalar
	B scalarfield.Scalar
}

// Create runs the prover side of the inner-product argument. t must be a
// fresh-for-this-proof transcript (or one already synchronized with the
// verifier's expected prefix); Q, gFactors, hFactors, G, H, a, and b must
// all describe the same length n, a power of two. Create reslices G, H, a,
// and b but never writes to their backing arrays: every weighting and fold
// step allocates fresh vectors.
//
// Create panics on malformed input (mismatched lengths, n not a power of
// two, n == 0) — these are programmer errors, not recoverable conditions.
func Create(
	t *transcript.Transcript,
	field *scalarfield.Field,
	grp group.Group,
	Q group.Element,
	gFactors, hFactors []scalarfield.Scalar,
	G, H []group.Element,
	a, b []scalarfield.Scalar,
) *Proof {
	n := len(a)
	if n == 0 {
		panic("ipa: Create requires n >= 1")
	}
	if len(b) != n || len(gFactors) != n || len(hFactors) != n || len(G) != n || len(H) != n {
		panic("ipa: Create called with mismatched vector lengths")
	}
	if n&(n-1) != 0 {
		panic("ipa: Create requires n to be a power of two")
	}

	t.DomainSep("inner-product", uint64(n))

	k := bits.Len(uint(n)) - 1
	L := make([]group.Element, 0, k)
	R := make([]group.Element, 0, k)

	for round := 0; n > 1; round++ {
		nHalf := n / 2
		aL, aR := a[:nHalf], a[nHalf:]
		bL, bR := b[:nHalf], b[nHalf:]
		GL, GR := G[:nHalf], G[nHalf:]
		HL, HR := H[:nHalf], H[nHalf:]

		cL := InnerProduct(aL, bR)
		cR := InnerProduct(aR, bL)

		var Lpoint, Rpoint group.Element
		if round == 0 {
			gFL, gFR := gFactors[:nHalf], gFactors[nHalf:]
			hFL, hFR := hFactors[:nHalf], hFactors[nHalf:]

			Lpoint = msm(grp,
				concatScalars(mulEach(aL, gFR), mulEach(bR, hFL), cL),
				concatPoints(GR, HL, Q))
			Rpoint = msm(grp,
				concatScalars(mulEach(aR, gFL), mulEach(bL, hFR), cR),
				concatPoints(GL, HR, Q))
		} else {
			Lpoint = msm(grp, concatScalars(aL, bR, cL), concatPoints(GR, HL, Q))
			Rpoint = msm(grp, concatScalars(aR, bL, cR), concatPoints(GL, HR, Q))
		}

		L = append(L, Lpoint)
		R = append(R, Rpoint)
		t.AppendPoint("L", Lpoint)
		t.AppendPoint("R", Rpoint)

		u := field.FromBytesModOrder(t.ChallengeBytes("u", field.ScalarBytes()))
		uInv := u.Inverse()

		if round == 0 {
			GL, GR = weightBases(grp, GL, gFactors[:nHalf]), weightBases(grp, GR, gFactors[nHalf:])
			HL, HR = weightBases(grp, HL, hFactors[:nHalf]), weightBases(grp, HR, hFactors[nHalf:])
		}

		a, b, G, H = fold(grp, u, uInv, aL, aR, bL, bR, GL, GR, HL, HR)
		n = nHalf
	}

	return &Proof{L: L, R: R, A: a[0], B: b[0]}
}

func mulEach(xs, ys []scalarfield.Scalar) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, len(xs))
	for i := range xs {
		out[i] = xs[i].Mul(ys[i])
	}
	return out
}

func weightBases(grp group.Group, bases []group.Element, weights []scalarfield.Scalar) []group.Element {
	out := make([]group.Element, len(bases))
	for i := range bases {
		out[i] = grp.Element().Scale(bases[i], weights[i].BigInt())
	}
	return out
}

func concatScalars(head, mid []scalarfield.Scalar, tail scalarfield.Scalar) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, 0, len(head)+len(mid)+1)
	out = append(out, head...)
	out = append(out, mid...)
	out = append(out, tail)
	return out
}

func concatPoints(head, mid []group.Element, tail group.Element) []group.Element {
	out := make([]group.Element, 0, len(head)+len(mid)+1)
	out = append(out, head...)
	out = append(out, mid...)
	out = append(out, tail)
	return out
}
