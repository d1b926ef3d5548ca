// Package ipa implements the core of a Bulletproofs-style inner-product
// argument: a non-interactive proof that a prover knows vectors a, b with
// <a,b> = c, consistent with a committed group element. The package covers
// the recursive halving protocol, its Fiat-Shamir transcript discipline,
// MSM accounting, the verifier's s-vector derivation, and the wire codec.
// The underlying group, scalar field, and transcript primitive are taken as
// external collaborators (packages group, scalarfield, transcript); base
// construction and the surrounding range-proof protocol are not this
// package's concern.
package ipa

import "github.com/takakv/ipa-core/scalarfield"

// InnerProduct returns <a,b> = sum_i a_i*b_i over the scalar field a and b
// are defined over, or the zero value if both are empty. a and b must have
// equal length; a mismatch is a programmer error and panics rather than
// returning an error.
func InnerProduct(a, b []scalarfield.Scalar) scalarfield.Scalar {
	if len(a) != len(b) {
		panic("ipa: InnerProduct called with mismatched vector lengths")
	}

	var sum scalarfield.Scalar
	for i := range a {
		if i == 0 {
			sum = a[i].Mul(b[i])
		} else {
			sum = sum.Add(a[i].Mul(b[i]))
		}
	}
	return sum
}
