package geom

import "math"

// Subspace is an affine subspace: an origin point plus an orthonormal
// basis of direction vectors. The zero value is the empty subspace.
type Subspace struct {
	origin Point
	basis  []Point
}

// FromPoints builds the affine span of the given points using modified
// Gram-Schmidt. Directions whose residual against the current basis is
// below Eps are discarded, so nearly-coplanar inputs collapse to the
// true span.
func FromPoints(points []Point) Subspace {
	if len(points) == 0 {
		return Subspace{}
	}
	s := Subspace{origin: points[0].Clone()}
	for _, p := range points[1:] {
		v := s.residual(p.Sub(s.origin))
		if n := v.Norm(); n > Eps {
			s.basis = append(s.basis, v.Scale(1/n))
		}
	}
	return s
}

// residual subtracts from v its projection onto every basis vector.
func (s Subspace) residual(v Point) Point {
	out := v.Clone()
	for _, b := range s.basis {
		d := out.Dot(b)
		for i := range out {
			out[i] -= d * b[i]
		}
	}
	return out
}

// Rank returns the linear dimension of the subspace.
func (s Subspace) Rank() int {
	return len(s.basis)
}

// Dim returns the dimension of the ambient space.
func (s Subspace) Dim() int {
	return len(s.origin)
}

// IsHyperplane reports whether the subspace has codimension 1.
func (s Subspace) IsHyperplane() bool {
	return len(s.origin) > 0 && len(s.basis) == len(s.origin)-1
}

// Distance returns the Euclidean distance from p to the subspace.
func (s Subspace) Distance(p Point) float64 {
	if s.origin == nil {
		return math.Inf(1)
	}
	return s.residual(p.Sub(s.origin)).Norm()
}

// Contains reports whether p lies on the subspace within Eps.
func (s Subspace) Contains(p Point) bool {
	return s.Distance(p) < Eps
}

// Flatten returns the coordinates of p expressed in the subspace's own
// basis. The result has dimension Rank(); the component of p normal to
// the subspace is dropped.
func (s Subspace) Flatten(p Point) Point {
	v := p.Sub(s.origin)
	out := make(Point, len(s.basis))
	for i, b := range s.basis {
		out[i] = v.Dot(b)
	}
	return out
}
