package ipa

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/takakv/ipa-core/group"
	"github.com/takakv/ipa-core/scalarfield"
	"github.com/takakv/ipa-core/transcript"
)

// backing bundles everything a test needs to run the protocol over one
// concrete group, so the property tests in this file iterate the same
// logic across Ristretto255, P-256, and P-384.
type backing struct {
	name string
	grp  group.Group
}

func backings() []backing {
	return []backing{
		{"ristretto255", group.Ristretto255()},
		{"p256", group.P256()},
		{"p384", group.P384()},
	}
}

func fieldFor(grp group.Group) *scalarfield.Field {
	return scalarfield.NewField(grp.N())
}

// randomVector returns n fresh random scalars.
func randomVector(field *scalarfield.Field, n int) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, n)
	for i := range out {
		out[i] = field.Random()
	}
	return out
}

func randomBases(grp group.Group, n int) []group.Element {
	out := make([]group.Element, n)
	for i := range out {
		out[i] = grp.Random()
	}
	return out
}

// onesVector returns n copies of the field's multiplicative identity.
func onesVector(field *scalarfield.Field, n int) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, n)
	for i := range out {
		out[i] = field.FromUint64(1)
	}
	return out
}

// powersOfInverse returns (1, y^-1, y^-2, ..., y^-(n-1)).
func powersOfInverse(field *scalarfield.Field, y scalarfield.Scalar, n int) []scalarfield.Scalar {
	yInv := y.Inverse()
	out := make([]scalarfield.Scalar, n)
	out[0] = field.FromUint64(1)
	for i := 1; i < n; i++ {
		out[i] = out[i-1].Mul(yInv)
	}
	return out
}

// vectorCommit returns sum_i a_i*bases_i.
func vectorCommit(grp group.Group, a []scalarfield.Scalar, bases []group.Element) group.Element {
	acc := grp.Identity()
	term := grp.Element()
	for i := range a {
		term.Scale(bases[i], a[i].BigInt())
		acc.Add(acc, term)
	}
	return acc
}

// hadamard returns the elementwise product of a and b.
func hadamard(a, b []scalarfield.Scalar) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, len(a))
	for i := range a {
		out[i] = a[i].Mul(b[i])
	}
	return out
}

func cloneScalars(xs []scalarfield.Scalar) []scalarfield.Scalar {
	out := make([]scalarfield.Scalar, len(xs))
	copy(out, xs)
	return out
}

func cloneElements(xs []group.Element) []group.Element {
	out := make([]group.Element, len(xs))
	copy(out, xs)
	return out
}

// scenario builds a random completeness instance of size n for grp: random
// a, b, y, G, H, Q, the weight vectors G_factors = 1 and H_factors =
// (1,y^-1,y^-2,...), and the commitment P = <a,G> + <b∘H_factors,H> +
// <a,b>*Q.
type scenario struct {
	grp              group.Group
	field            *scalarfield.Field
	n                int
	a, b             []scalarfield.Scalar
	G, H             []group.Element
	Q                group.Element
	gFactors         []scalarfield.Scalar
	hFactors         []scalarfield.Scalar
	P                group.Element
}

func newScenario(grp group.Group, n int) *scenario {
	field := fieldFor(grp)
	a := randomVector(field, n)
	b := randomVector(field, n)
	G := randomBases(grp, n)
	H := randomBases(grp, n)
	Q := grp.Random()
	y := field.Random()

	gFactors := onesVector(field, n)
	hFactors := powersOfInverse(field, y, n)

	bWeighted := hadamard(b, hFactors)

	P := grp.Element().Add(vectorCommit(grp, a, G), vectorCommit(grp, bWeighted, H))
	abQ := grp.Element().Scale(Q, InnerProduct(a, b).BigInt())
	P.Add(P, abQ)

	return &scenario{
		grp: grp, field: field, n: n,
		a: a, b: b, G: G, H: H, Q: Q,
		gFactors: gFactors, hFactors: hFactors, P: P,
	}
}

func (s *scenario) create() *Proof {
	tr := transcript.New("ipa-test")
	return Create(tr, s.field, s.grp,
		s.Q, cloneScalars(s.gFactors), cloneScalars(s.hFactors),
		cloneElements(s.G), cloneElements(s.H),
		cloneScalars(s.a), cloneScalars(s.b))
}

func (s *scenario) verify(proof *Proof) error {
	tr := transcript.New("ipa-test")
	return Verify(s.n, tr, s.field, s.grp, s.gFactors, s.hFactors, s.P, s.Q, s.G, s.H, proof)
}

func TestCompletenessAcrossBackingsAndSizes(t *testing.T) {
	for _, bk := range backings() {
		bk := bk
		for _, n := range []int{1, 2, 4, 8, 16, 32, 64} {
			n := n
			t.Run(bk.name+"/n="+strconv.Itoa(n), func(t *testing.T) {
				s := newScenario(bk.grp, n)
				proof := s.create()
				require.NoError(t, s.verify(proof))
			})
		}
	}
}

func TestProofSizeLaw(t *testing.T) {
	grp := group.Ristretto255()
	s := newScenario(grp, 16)
	proof := s.create()

	wantK := 4
	require.Len(t, proof.L, wantK)
	require.Len(t, proof.R, wantK)

	b, err := proof.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, proof.SerializedSize(grp.PointBytes()), len(b))
	require.Equal(t, 2*wantK*grp.PointBytes()+2*s.field.ScalarBytes(), len(b))
}

func TestCodecRoundTrip(t *testing.T) {
	for _, bk := range backings() {
		s := newScenario(bk.grp, 8)
		proof := s.create()

		raw, err := proof.MarshalBinary()
		require.NoError(t, err)

		decoded, err := ProofFromBytes(bk.grp.PointBytes(), s.field.ScalarBytes(), bk.grp, s.field, raw)
		require.NoError(t, err)

		require.True(t, decoded.A.Equal(proof.A))
		require.True(t, decoded.B.Equal(proof.B))
		require.Len(t, decoded.L, len(proof.L))
		for i := range proof.L {
			require.True(t, decoded.L[i].IsEqual(proof.L[i]))
			require.True(t, decoded.R[i].IsEqual(proof.R[i]))
		}

		require.NoError(t, s.verify(decoded))
	}
}

func TestCodecRejectsOversizedRoundCount(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	pointBytes := grp.PointBytes()
	scalarBytes := field.ScalarBytes()

	// 32 rounds worth of L/R points plus two scalars: k == 32 must be
	// rejected (the hard cap is k < 32).
	data := make([]byte, 2*32*pointBytes+2*scalarBytes)
	_, err := ProofFromBytes(pointBytes, scalarBytes, grp, field, data)
	require.Error(t, err)
	var fe *FormatError
	require.ErrorAs(t, err, &fe)
}

func TestCodecRejectsTruncation(t *testing.T) {
	grp := group.Ristretto255()
	s := newScenario(grp, 4)
	proof := s.create()

	raw, err := proof.MarshalBinary()
	require.NoError(t, err)

	truncated := raw[:len(raw)-1]
	_, err = ProofFromBytes(grp.PointBytes(), s.field.ScalarBytes(), grp, s.field, truncated)
	require.Error(t, err)
}

func TestSoundnessRejectsTamperedScalar(t *testing.T) {
	grp := group.Ristretto255()
	s := newScenario(grp, 4)
	proof := s.create()

	raw, err := proof.MarshalBinary()
	require.NoError(t, err)

	raw[len(raw)-1] ^= 0x01

	decoded, err := ProofFromBytes(grp.PointBytes(), s.field.ScalarBytes(), grp, s.field, raw)
	require.NoError(t, err, "flipping a scalar bit must still decode")

	err = s.verify(decoded)
	require.ErrorIs(t, err, ErrVerificationFailed)
}

func TestTranscriptDeterminism(t *testing.T) {
	grp := group.Ristretto255()
	s := newScenario(grp, 8)

	p1 := s.create()
	p2 := s.create()

	b1, err := p1.MarshalBinary()
	require.NoError(t, err)
	b2, err := p2.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, b1, b2)
}

func TestSVectorIdentity(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	s := newScenario(grp, 4)
	proof := s.create()

	tr := transcript.New("ipa-test")
	_, _, sVec, err := VerificationScalars(4, tr, field, grp, proof.L, proof.R)
	require.NoError(t, err)

	one := field.FromUint64(1)
	require.True(t, sVec[0].Mul(sVec[3]).Equal(one))
	require.True(t, sVec[1].Mul(sVec[2]).Equal(one))
}

func TestInnerProductLiteral(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	a := []scalarfield.Scalar{field.FromUint64(1), field.FromUint64(2), field.FromUint64(3), field.FromUint64(4)}
	b := []scalarfield.Scalar{field.FromUint64(2), field.FromUint64(3), field.FromUint64(4), field.FromUint64(5)}
	require.True(t, InnerProduct(a, b).Equal(field.FromUint64(40)))
}

func TestInnerProductMismatchPanics(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	a := []scalarfield.Scalar{field.FromUint64(1)}
	b := []scalarfield.Scalar{field.FromUint64(1), field.FromUint64(2)}
	require.Panics(t, func() { InnerProduct(a, b) })
}

func TestCreateRejectsNonPowerOfTwo(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	n := 3
	a := randomVector(field, n)
	b := randomVector(field, n)
	G := randomBases(grp, n)
	H := randomBases(grp, n)
	ones := onesVector(field, n)
	Q := grp.Random()

	require.Panics(t, func() {
		tr := transcript.New("ipa-test")
		Create(tr, field, grp, Q, ones, ones, G, H, a, b)
	})
}

func TestCreateRejectsZeroLength(t *testing.T) {
	grp := group.Ristretto255()
	field := fieldFor(grp)
	Q := grp.Random()

	require.Panics(t, func() {
		tr := transcript.New("ipa-test")
		Create(tr, field, grp, Q, nil, nil, nil, nil, nil, nil)
	})
}

func TestNTrivialCase(t *testing.T) {
	grp := group.Ristretto255()
	s := newScenario(grp, 1)
	proof := s.create()

	require.Empty(t, proof.L)
	require.Empty(t, proof.R)

	raw, err := proof.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, 2*s.field.ScalarBytes(), len(raw))

	require.NoError(t, s.verify(proof))
}
