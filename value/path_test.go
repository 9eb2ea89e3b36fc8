package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByPathIdentity(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":1}`))
	got, err := GetByPath(v, "$")
	require.NoError(t, err)
	assert.True(t, Equal(v, got))

	got, err = GetByPath(v, "")
	require.NoError(t, err)
	assert.True(t, Equal(v, got))
}

func TestGetByPathDescendsMapAndSeq(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":{"b":[10,20,30]}}`))
	got, err := GetByPath(v, "$.a.b.1")
	require.NoError(t, err)
	assert.Equal(t, float64(20), got.AsNumber())
}

func TestGetByPathMissingYieldsNull(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":1}`))
	got, err := GetByPath(v, "$.nope.deeper")
	require.NoError(t, err)
	assert.True(t, got.IsNull())

	got, err = GetByPath(v, "$.a.9")
	require.NoError(t, err)
	assert.True(t, got.IsNull())
}

func TestSplitPathRejectsMalformed(t *testing.T) {
	_, err := SplitPath("a.b")
	assert.Error(t, err)

	_, err = SplitPath("$.")
	assert.Error(t, err)

	_, err = SplitPath("$.a..b")
	assert.Error(t, err)
}

func TestPlaceByPathMaterializesIntermediates(t *testing.T) {
	root := Null()
	out, err := PlaceByPath(root, "$.a.b.2", String("x"))
	require.NoError(t, err)

	seq, err := GetByPath(out, "$.a.b")
	require.NoError(t, err)
	require.Equal(t, KindSeq, seq.Kind())
	require.Len(t, seq.AsSeq(), 3)
	assert.True(t, seq.AsSeq()[0].IsNull())
	assert.True(t, seq.AsSeq()[1].IsNull())
	assert.Equal(t, "x", seq.AsSeq()[2].AsString())
}

func TestPlaceByPathWholeRoot(t *testing.T) {
	root, _ := FromJSON([]byte(`{"old":1}`))
	replacement := String("new")
	out, err := PlaceByPath(root, "$", replacement)
	require.NoError(t, err)
	assert.Equal(t, "new", out.AsString())
}

func TestPlaceByPathDoesNotMutateRoot(t *testing.T) {
	root, _ := FromJSON([]byte(`{"a":1}`))
	_, err := PlaceByPath(root, "$.b", Number(2))
	require.NoError(t, err)

	_, ok := root.AsObject().Get("b")
	assert.False(t, ok, "PlaceByPath must not mutate its input root")
}

// TestPathRoundTrip verifies §8 property 1: for any value and path whose
// segments all exist, PlaceByPath(v, p, GetByPath(v, p)) == v.
func TestPathRoundTrip(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":{"b":[1,2,{"c":"deep"}]}}`))
	paths := []string{"$.a.b.2.c", "$.a.b.0", "$.a"}

	for _, p := range paths {
		got, err := GetByPath(v, p)
		require.NoError(t, err)
		back, err := PlaceByPath(v, p, got)
		require.NoError(t, err)
		assert.True(t, Equal(v, back), "round trip failed for path %q", p)
	}
}

func TestMergeObjectsNullSides(t *testing.T) {
	v, _ := FromJSON([]byte(`{"a":1}`))
	assert.True(t, Equal(v, MergeObjects(Null(), v)))
	assert.True(t, Equal(v, MergeObjects(v, Null())))
}

func TestMergeObjectsRecursiveRightWins(t *testing.T) {
	a, _ := FromJSON([]byte(`{"x":1,"nested":{"p":1,"q":2}}`))
	b, _ := FromJSON([]byte(`{"x":2,"nested":{"q":99,"r":3}}`))
	merged := MergeObjects(a, b)

	x, _ := GetByPath(merged, "$.x")
	assert.Equal(t, float64(2), x.AsNumber())

	p, _ := GetByPath(merged, "$.nested.p")
	assert.Equal(t, float64(1), p.AsNumber())
	q, _ := GetByPath(merged, "$.nested.q")
	assert.Equal(t, float64(99), q.AsNumber())
	r, _ := GetByPath(merged, "$.nested.r")
	assert.Equal(t, float64(3), r.AsNumber())
}

func TestMergeObjectsSeqConcatenation(t *testing.T) {
	a := Seq(Number(1), Number(2))
	b := Seq(Number(3))
	merged := MergeObjects(a, b)
	require.Equal(t, KindSeq, merged.Kind())
	assert.Len(t, merged.AsSeq(), 3)
	assert.Equal(t, float64(1), merged.AsSeq()[0].AsNumber())
	assert.Equal(t, float64(3), merged.AsSeq()[2].AsNumber())
}

func TestMergeObjectsDisjointKeysCommutative(t *testing.T) {
	left, _ := FromJSON([]byte(`{"left":1}`))
	right, _ := FromJSON([]byte(`{"right":2}`))
	merged := MergeObjects(left, right)

	l, _ := GetByPath(merged, "$.left")
	r, _ := GetByPath(merged, "$.right")
	assert.Equal(t, float64(1), l.AsNumber())
	assert.Equal(t, float64(2), r.AsNumber())

	swapped := MergeObjects(right, left)
	assert.True(t, Equal(merged, swapped))
}
