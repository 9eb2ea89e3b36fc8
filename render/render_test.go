package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatScalar(t *testing.T) {
	assert.Equal(t, "42", Format(42))
	assert.Equal(t, "true", Format(true))
	assert.Equal(t, "hello", Format("hello"))
	assert.Equal(t, "3.5", Format(3.5))
}

func TestFormatTimeUsesFixedLayout(t *testing.T) {
	ts := time.Date(2026, 7, 30, 9, 15, 0, 0, time.UTC)
	assert.Equal(t, "2026-07-30 09:15:00Z", Format(ts))
}

type point struct {
	X int
	Y int
}

func TestFormatStructAsDictionary(t *testing.T) {
	p := point{X: 1, Y: 2}
	assert.Equal(t, "X: 1\nY: 2", Format(p))
}

func TestFormatMapAsDictionary(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1}
	assert.Equal(t, "a: 1\nb: 2", Format(m))
}

func TestFormatEmptyDictionary(t *testing.T) {
	assert.Equal(t, "(empty)", Format(struct{}{}))
}

func TestFormatHomogeneousStructSliceAsTable(t *testing.T) {
	pts := []point{{X: 1, Y: 2}, {X: 3, Y: 4}}
	assert.Equal(t, "X\tY\n1\t2\n3\t4", Format(pts))
}

type mixed struct {
	Name string
	Tags []string
}

func TestFormatNonHomogeneousSliceFallsBack(t *testing.T) {
	items := []mixed{
		{Name: "a", Tags: []string{"x"}},
		{Name: "b", Tags: []string{"y", "z"}},
	}
	got := Format(items)
	assert.Contains(t, got, "Name: a")
	assert.Contains(t, got, "Name: b")
	assert.NotContains(t, got, "Name\tTags")
}

func TestFormatEmptySequence(t *testing.T) {
	assert.Equal(t, "(empty)", Format([]int{}))
}

type node struct {
	Name string
	Next *node
}

func TestFormatPointerCycleRendersInfinity(t *testing.T) {
	a := &node{Name: "a"}
	b := &node{Name: "b"}
	a.Next = b
	b.Next = a

	got := Format(a)
	assert.Contains(t, got, "Name: a")
	assert.Contains(t, got, "Name: b")
	assert.Contains(t, got, "∞")
}

func TestFormatSharedPointerWithoutCycleIsNotInfinity(t *testing.T) {
	shared := &node{Name: "shared"}
	type pair struct {
		First  *node
		Second *node
	}
	p := pair{First: shared, Second: shared}

	got := Format(p)
	assert.NotContains(t, got, "∞")
}
