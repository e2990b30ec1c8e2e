package polytope

import (
	"github.com/apeirotope/facet/internal/abs"
	"github.com/apeirotope/facet/internal/geom"
)

// Concrete is an abstract polytope realized by coordinates: vertex i
// of the rank structure sits at Vertices[i].
type Concrete struct {
	Vertices []geom.Point
	Abs      *abs.Abstract
}

// New pairs coordinates with a validated structure.
func New(vertices []geom.Point, a *abs.Abstract) *Concrete {
	return &Concrete{Vertices: vertices, Abs: a}
}

// Recenter translates the polytope so its vertex centroid is the
// origin.
func (c *Concrete) Recenter() {
	center := geom.Centroid(c.Vertices)
	if center == nil {
		return
	}
	c.RecenterWith(center)
}

// RecenterWith translates the polytope so the given point is the
// origin.
func (c *Concrete) RecenterWith(center geom.Point) {
	for i, v := range c.Vertices {
		c.Vertices[i] = v.Sub(center)
	}
}

// RecenterOnCircumsphere centers on the circumsphere when one exists,
// falling back to the centroid. Saved facet polytopes use this so
// coincident facet orbits line up.
func (c *Concrete) RecenterOnCircumsphere() {
	if center, ok := geom.Circumsphere(c.Vertices); ok {
		c.RecenterWith(center)
		return
	}
	c.Recenter()
}

// Flatten projects the vertices into the coordinates of their own
// affine span, dropping dimensions the polytope does not use.
func (c *Concrete) Flatten() {
	span := geom.FromPoints(c.Vertices)
	if span.Rank() == 0 || span.Rank() == span.Dim() {
		return
	}
	for i, v := range c.Vertices {
		c.Vertices[i] = span.Flatten(v)
	}
}

// Facet extracts facet idx as a standalone polytope of one lower
// rank, restricted to the vertices it uses.
func (c *Concrete) Facet(idx int) (*Concrete, error) {
	sub, verts := c.Abs.Subtree(c.Abs.Rank()-1, idx)
	a, err := abs.Build(sub)
	if err != nil {
		return nil, err
	}
	coords := make([]geom.Point, len(verts))
	for i, v := range verts {
		coords[i] = c.Vertices[v].Clone()
	}
	return &Concrete{Vertices: coords, Abs: a}, nil
}
