// Command ipademo builds a random inner-product argument instance over
// Ristretto255, runs the prover and verifier end-to-end, and reports the
// proof's serialized size and verification result.
package main

import (
	"fmt"
	"math/big"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/ipa"
	"github.com/takakv/ipa-core/scalarfield"
	"github.com/takakv/ipa-core/transcript"
	"github.com/takakv/ipa-core/util"
)

// demoParameters bundles the public instance a verifier would hold:
// bases, weights, and the commitment the proof is checked against.
type demoParameters struct {
	grp      group.Group
	field    *scalarfield.Field
	n        int
	G, H     []group.Element
	Q        group.Element
	gFactors []scalarfield.Scalar
	hFactors []scalarfield.Scalar
	P        group.Element
}

// setup builds a size-n demo instance: random generators G, H, Q, a random
// transfer weight y (so H_factors = (1, y^-1, y^-2, ...), matching a
// Bulletproofs range-proof's weighted basis), random witness vectors a, b,
// and the commitment P = <a,G> + <b*H_factors,H> + <a,b>*Q, blinded with a
// Pedersen commitment to the inner product itself.
func setup(n int) (demoParameters, []scalarfield.Scalar, []scalarfield.Scalar) {
	grp := group.Ristretto255()
	field := scalarfield.NewField(grp.N())

	G := make([]group.Element, n)
	H := make([]group.Element, n)
	for i := range G {
		G[i] = grp.Random()
		H[i] = grp.Random()
	}
	Q := grp.Random()

	a := make([]scalarfield.Scalar, n)
	b := make([]scalarfield.Scalar, n)
	for i := range a {
		a[i] = field.Random()
		b[i] = field.Random()
	}

	gFactors := make([]scalarfield.Scalar, n)
	hFactors := make([]scalarfield.Scalar, n)
	y := field.Random()
	yInv := y.Inverse()
	gFactors[0] = field.FromUint64(1)
	hFactors[0] = field.FromUint64(1)
	for i := 1; i < n; i++ {
		gFactors[i] = field.FromUint64(1)
		hFactors[i] = hFactors[i-1].Mul(yInv)
	}

	P := grp.Identity()
	term := grp.Element()
	for i := 0; i < n; i++ {
		term.Scale(G[i], a[i].BigInt())
		P.Add(P, term)
		term.Scale(H[i], b[i].Mul(hFactors[i]).BigInt())
		P.Add(P, term)
	}
	// Fold <a,b>*Q into P via a Pedersen-style commitment with a zero
	// secret and <a,b> as the blinding factor against base Q, exercising
	// the same helper a range proof would use to commit to the claimed
	// inner product.
	ab := ipa.InnerProduct(a, b)
	P = grp.Element().Add(P, util.PedersenCommit(big.NewInt(0), ab.BigInt(), Q, grp))

	return demoParameters{
		grp: grp, field: field, n: n,
		G: G, H: H, Q: Q,
		gFactors: gFactors, hFactors: hFactors, P: P,
	}, a, b
}

func main() {
	const n = 16

	fmt.Println("Building inner-product argument instance")
	params, a, b := setup(n)

	fmt.Println("Running prover")
	proveTranscript := transcript.New("ipademo")
	proof := ipa.Create(proveTranscript, params.field, params.grp, params.Q,
		params.gFactors, params.hFactors, params.G, params.H, a, b)

	raw, err := proof.MarshalBinary()
	if err != nil {
		fmt.Println("failed to serialize proof:", err)
		return
	}
	fmt.Printf("Proof size: %d bytes (n=%d, rounds=%d)\n", len(raw), n, len(proof.L))

	decoded, err := ipa.ProofFromBytes(params.grp.PointBytes(), params.field.ScalarBytes(), params.grp, params.field, raw)
	if err != nil {
		fmt.Println("failed to deserialize proof:", err)
		return
	}

	fmt.Println("Running verifier")
	verifyTranscript := transcript.New("ipademo")
	err = ipa.Verify(n, verifyTranscript, params.field, params.grp,
		params.gFactors, params.hFactors, params.P, params.Q, params.G, params.H, decoded)
	if err != nil {
		fmt.Println("Verification failed:", err)
		return
	}
	fmt.Println("Verification succeeded")
}
