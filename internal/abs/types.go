package abs

import (
	"sort"
	"strconv"
	"strings"
)

// Element is one member of a rank: the indices of its subelements in
// the rank below. Superelements are not stored on partial structures;
// Builder derives them when a full polytope is assembled.
type Element struct {
	Subs []int
}

// NewElement returns an element with a copy of the given subelements.
func NewElement(subs ...int) Element {
	out := make([]int, len(subs))
	copy(out, subs)
	return Element{Subs: out}
}

// Clone returns an independent copy of the element.
func (e Element) Clone() Element {
	return NewElement(e.Subs...)
}

// ElementList is every element of a single rank.
type ElementList []Element

// Clone returns a deep copy of the list.
func (l ElementList) Clone() ElementList {
	out := make(ElementList, len(l))
	for i, e := range l {
		out[i] = e.Clone()
	}
	return out
}

// Ranks is a rank structure: Ranks[0] is the null element, Ranks[1]
// the vertices, Ranks[2] the edges, and so on. A full polytope of rank
// n has length n+1 (the last rank being the single body); the faceting
// search also passes around partial structures cut off below the body.
type Ranks []ElementList

// Clone returns a deep copy of the structure.
func (r Ranks) Clone() Ranks {
	out := make(Ranks, len(r))
	for i, l := range r {
		out[i] = l.Clone()
	}
	return out
}

// Dyad returns the rank structure of a segment: two vertices joined by
// one edge. It is the base case of the faceting recursion.
func Dyad() Ranks {
	return Ranks{
		{NewElement()},
		{NewElement(0), NewElement(0)},
		{NewElement(0, 1)},
	}
}

// Key returns a deterministic string encoding of the structure,
// suitable as a map key. Two structures that have been canonicalized
// with SortStrong compare equal under Key exactly when they are
// structurally identical.
func (r Ranks) Key() string {
	var b strings.Builder
	for rank, l := range r {
		if rank > 0 {
			b.WriteByte('|')
		}
		for i, e := range l {
			if i > 0 {
				b.WriteByte(';')
			}
			for j, s := range e.Subs {
				if j > 0 {
					b.WriteByte(',')
				}
				b.WriteString(strconv.Itoa(s))
			}
		}
	}
	return b.String()
}

// Compare orders two structures by their Key encoding.
func Compare(a, b Ranks) int {
	return strings.Compare(a.Key(), b.Key())
}

// compareSubs orders two subelement lists lexicographically.
func compareSubs(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// sortSubsLists sorts a slice of subelement lists lexicographically.
func sortSubsLists(lists [][]int) {
	sort.Slice(lists, func(i, j int) bool {
		return compareSubs(lists[i], lists[j]) < 0
	})
}
