package ipa

import (
	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
)

// msm computes the multi-scalar multiplication sum_i scalars[i]*points[i].
// scalars and points must have equal length. A plain sequential
// accumulation; the parallel path lives in the folding engine (fold.go),
// not here.
func msm(grp group.Group, scalars []scalarfield.Scalar, points []group.Element) group.Element {
	if len(scalars) != len(points) {
		panic("ipa: msm called with mismatched scalar/point counts")
	}
	acc := grp.Identity()
	term := grp.Element()
	for i := range scalars {
		term.Scale(points[i], scalars[i].BigInt())
		acc.Add(acc, term)
	}
	return acc
}

// weightedSum2 returns s1*p1 + s2*p2, the 2-term MSM every folding update
// (G'_i, H'_i) performs.
func weightedSum2(grp group.Group, s1 scalarfield.Scalar, p1 group.Element, s2 scalarfield.Scalar, p2 group.Element) group.Element {
	t1 := grp.Element().Scale(p1, s1.BigInt())
	t2 := grp.Element().Scale(p2, s2.BigInt())
	return grp.Element().Add(t1, t2)
}
