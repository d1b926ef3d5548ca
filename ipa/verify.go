package ipa

import (
	"math/bits"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
	"github.com/takakv/ipa-core/transcript"
)

// VerificationScalars re-derives the challenges the prover would have
// squeezed for an n-element inner-product argument with k = len(L) rounds,
// and from them computes the three scalar vectors the single combined MSM
// in Verify needs: u^2, u^-2 (one entry per round), and s (length n). Each
// L[i]/R[i] is validated against grp before it is absorbed; an L or R that
// does not decode to a genuine element of grp yields a *VerificationError
// rather than corrupting the transcript with unvalidated bytes.
//
// t must be in the same initial state the prover's transcript was in
// before Create ran.
func VerificationScalars(
	n int,
	t *transcript.Transcript,
	field *scalarfield.Field,
	grp group.Group,
	L, R []group.Element,
) (uSq, uInvSq, s []scalarfield.Scalar, err error) {
	k := len(L)
	if len(R) != k {
		return nil, nil, nil, &VerificationError{Msg: "mismatched L/R vector lengths"}
	}
	if k >= 32 {
		return nil, nil, nil, &VerificationError{Msg: "proof round count at or above the hard cap"}
	}
	if n != 1<<uint(k) {
		return nil, nil, nil, &VerificationError{Msg: "n does not match 2^k implied by the proof"}
	}

	t.DomainSep("inner-product", uint64(n))

	challenges := make([]scalarfield.Scalar, k)
	for i := 0; i < k; i++ {
		if err := t.ValidateAndAppendPoint("L", grp, L[i]); err != nil {
			return nil, nil, nil, &VerificationError{Msg: "invalid point in transcript absorb: " + err.Error()}
		}
		if err := t.ValidateAndAppendPoint("R", grp, R[i]); err != nil {
			return nil, nil, nil, &VerificationError{Msg: "invalid point in transcript absorb: " + err.Error()}
		}
		challenges[i] = field.FromBytesModOrder(t.ChallengeBytes("u", field.ScalarBytes()))
	}

	challengesInv := make([]scalarfield.Scalar, k)
	copy(challengesInv, challenges)
	scalarfield.BatchInverse(challengesInv)

	allInv := field.FromUint64(1)
	for _, ci := range challengesInv {
		allInv = allInv.Mul(ci)
	}

	uSq = make([]scalarfield.Scalar, k)
	uInvSq = make([]scalarfield.Scalar, k)
	for i := 0; i < k; i++ {
		uSq[i] = challenges[i].Mul(challenges[i])
		uInvSq[i] = challengesInv[i].Mul(challengesInv[i])
	}

	s = make([]scalarfield.Scalar, n)
	s[0] = allInv
	for i := 1; i < n; i++ {
		lgI := bits.Len(uint(i)) - 1
		kPrime := 1 << uint(lgI)
		s[i] = s[i-kPrime].Mul(uSq[(k-1)-lgI])
	}

	return uSq, uInvSq, s, nil
}

// Verify checks that proof is a valid inner-product argument for
// commitment P relative to base Q, weighted base vectors G, H (weighted by
// gFactors, hFactors respectively), over n = len(G) = len(H).
//
// t must be in the same initial state the prover's transcript was in
// before Create ran. Verify returns ErrVerificationFailed if the combined
// MSM identity does not hold, or a distinct *VerificationError for earlier
// problems (size mismatch, oversized proof, an L/R point that fails
// validation) — see FormatError
// for wire-decoding failures instead.
func Verify(
	n int,
	t *transcript.Transcript,
	field *scalarfield.Field,
	grp group.Group,
	gFactors, hFactors []scalarfield.Scalar,
	P, Q group.Element,
	G, H []group.Element,
	proof *Proof,
) error {
	if len(G) != n || len(H) != n || len(gFactors) != n || len(hFactors) != n {
		return &VerificationError{Msg: "mismatched base or weight vector length"}
	}

	uSq, uInvSq, s, err := VerificationScalars(n, t, field, grp, proof.L, proof.R)
	if err != nil {
		return err
	}
	k := len(proof.L)

	scalars := make([]scalarfield.Scalar, 0, 1+2*n+2*k)
	points := make([]group.Element, 0, 1+2*n+2*k)

	scalars = append(scalars, proof.A.Mul(proof.B))
	points = append(points, Q)

	for i := 0; i < n; i++ {
		scalars = append(scalars, proof.A.Mul(s[i]).Mul(gFactors[i]))
		points = append(points, G[i])
	}
	for i := 0; i < n; i++ {
		scalars = append(scalars, proof.B.Mul(s[n-1-i]).Mul(hFactors[i]))
		points = append(points, H[i])
	}
	for j := 0; j < k; j++ {
		scalars = append(scalars, uSq[j].Neg())
		points = append(points, proof.L[j])
	}
	for j := 0; j < k; j++ {
		scalars = append(scalars, uInvSq[j].Neg())
		points = append(points, proof.R[j])
	}

	got := msm(grp, scalars, points)
	if !got.IsEqual(P) {
		return ErrVerificationFailed
	}
	return nil
}
