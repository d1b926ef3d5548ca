package ipa

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
)

// parallelThreshold is the vector length at or above which fold switches
// from a serial loop to a goroutine-per-chunk parallel one. A performance
// knob, not part of the protocol; 10 is small enough that goroutine
// overhead only pays off once there's real work per chunk.
const parallelThreshold = 10

// fold performs one halving round: given round challenge u and its inverse,
// it reduces (aL,aR,bL,bR,GL,GR,HL,HR), each of length m, to length-m
// vectors (a',b',G',H') via:
//
//	a'_i = u*aL_i + u^-1*aR_i
//	b'_i = u^-1*bL_i + u*bR_i
//	G'_i = u^-1*GL_i + u*GR_i
//	H'_i = u*HL_i + u^-1*HR_i
//
// The result is bit-identical whether computed serially or in parallel:
// each worker owns a disjoint, contiguous slice of indices and writes only
// to its own slice of the preallocated outputs.
func fold(
	grp group.Group,
	u, uInv scalarfield.Scalar,
	aL, aR, bL, bR []scalarfield.Scalar,
	GL, GR, HL, HR []group.Element,
) (a, b []scalarfield.Scalar, G, H []group.Element) {
	m := len(aL)
	a = make([]scalarfield.Scalar, m)
	b = make([]scalarfield.Scalar, m)
	G = make([]group.Element, m)
	H = make([]group.Element, m)

	foldOne := func(i int) {
		a[i] = aL[i].Mul(u).Add(aR[i].Mul(uInv))
		b[i] = bL[i].Mul(uInv).Add(bR[i].Mul(u))
		G[i] = weightedSum2(grp, uInv, GL[i], u, GR[i])
		H[i] = weightedSum2(grp, u, HL[i], uInv, HR[i])
	}

	if m < parallelThreshold {
		for i := 0; i < m; i++ {
			foldOne(i)
		}
		return a, b, G, H
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > m {
		workers = m
	}
	chunk := (m + workers - 1) / workers

	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= m {
			break
		}
		end := start + chunk
		if end > m {
			end = m
		}
		eg.Go(func() error {
			for i := start; i < end; i++ {
				foldOne(i)
			}
			return nil
		})
	}
	// foldOne never errors; the errgroup is used purely for its
	// wait-for-all-goroutines semantics.
	_ = eg.Wait()

	return a, b, G, H
}
