package geom

import "math"

// Eps is the tolerance used for all geometric comparisons.
const Eps = 1e-9

// Point is a point (or vector) in real space. The dimension is the
// slice length; all points handled together must share it.
type Point []float64

// Clone returns an independent copy of p.
func (p Point) Clone() Point {
	out := make(Point, len(p))
	copy(out, p)
	return out
}

// Zero returns the origin of the given dimension.
func Zero(dim int) Point {
	return make(Point, dim)
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	out := make(Point, len(p))
	for i := range p {
		out[i] = p[i] + q[i]
	}
	return out
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	out := make(Point, len(p))
	for i := range p {
		out[i] = p[i] - q[i]
	}
	return out
}

// Scale returns p scaled by s.
func (p Point) Scale(s float64) Point {
	out := make(Point, len(p))
	for i := range p {
		out[i] = p[i] * s
	}
	return out
}

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 {
	var sum float64
	for i := range p {
		sum += p[i] * q[i]
	}
	return sum
}

// Norm returns the Euclidean norm of p.
func (p Point) Norm() float64 {
	return math.Sqrt(p.Dot(p))
}

// Dist returns the Euclidean distance between p and q.
func Dist(p, q Point) float64 {
	var sum float64
	for i := range p {
		d := p[i] - q[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Centroid returns the arithmetic mean of the given points.
// Returns nil for an empty input.
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return nil
	}
	sum := Zero(len(points[0]))
	for _, p := range points {
		for i := range p {
			sum[i] += p[i]
		}
	}
	return sum.Scale(1 / float64(len(points)))
}
