package jobfile

import (
	"fmt"

	"github.com/apeirotope/facet/internal/faceting"
	"github.com/apeirotope/facet/internal/geom"
)

// Job is one faceting run: the seed vertices, the symmetry choice, and
// every search knob the enumerator takes.
type Job struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Rank     int         `json:"rank" yaml:"rank"`
	Vertices [][]float64 `json:"vertices" yaml:"vertices"`

	// Symmetry selects the vertex map: "full" (default) or "rotation"
	// for the orientation-preserving subgroup.
	Symmetry string `json:"symmetry,omitempty" yaml:"symmetry,omitempty"`

	// EdgeLength pins both ends of the edge-length window. Mutually
	// exclusive with the min/max pair and with AnySingleEdgeLength.
	EdgeLength          *float64 `json:"edge_length,omitempty" yaml:"edge_length,omitempty"`
	MinEdgeLength       *float64 `json:"min_edge_length,omitempty" yaml:"min_edge_length,omitempty"`
	MaxEdgeLength       *float64 `json:"max_edge_length,omitempty" yaml:"max_edge_length,omitempty"`
	AnySingleEdgeLength bool     `json:"any_single_edge_length,omitempty" yaml:"any_single_edge_length,omitempty"`

	MinInradius  *float64 `json:"min_inradius,omitempty" yaml:"min_inradius,omitempty"`
	MaxInradius  *float64 `json:"max_inradius,omitempty" yaml:"max_inradius,omitempty"`
	ExcludeHemis bool     `json:"exclude_hemis,omitempty" yaml:"exclude_hemis,omitempty"`

	OnlyBelowVertex  bool `json:"only_below_vertex,omitempty" yaml:"only_below_vertex,omitempty"`
	Noble            int  `json:"noble,omitempty" yaml:"noble,omitempty"`
	MaxPerHyperplane int  `json:"max_per_hyperplane,omitempty" yaml:"max_per_hyperplane,omitempty"`
	Uniform          bool `json:"uniform,omitempty" yaml:"uniform,omitempty"`
	IncludeCompounds bool `json:"include_compounds,omitempty" yaml:"include_compounds,omitempty"`
	MarkFissary      bool `json:"mark_fissary,omitempty" yaml:"mark_fissary,omitempty"`
	LabelFacets      bool `json:"label_facets,omitempty" yaml:"label_facets,omitempty"`
	SaveFacets       bool `json:"save_facets,omitempty" yaml:"save_facets,omitempty"`

	// OutputDir, when set, receives one OFF file per result.
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Database, when set, is the SQLite catalog the run is recorded in.
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

// Error is a job validation failure tied to one field.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("job %s: %s", e.Field, e.Message)
}

// Validate checks the semantic constraints the schema cannot express.
// All failures are collected.
func (j *Job) Validate() []Error {
	var errs []Error

	if j.Rank < 1 {
		errs = append(errs, Error{Field: "rank", Message: "rank must be at least 1"})
	}
	if len(j.Vertices) == 0 {
		errs = append(errs, Error{Field: "vertices", Message: "at least one vertex is required"})
	}
	for i, v := range j.Vertices {
		if len(v) == 0 {
			errs = append(errs, Error{Field: "vertices", Message: fmt.Sprintf("vertex %d has no coordinates", i)})
			break
		}
		if len(v) != len(j.Vertices[0]) {
			errs = append(errs, Error{
				Field:   "vertices",
				Message: fmt.Sprintf("vertex %d has %d coordinates, vertex 0 has %d", i, len(v), len(j.Vertices[0])),
			})
			break
		}
	}

	switch j.Symmetry {
	case "", "full", "rotation":
	default:
		errs = append(errs, Error{Field: "symmetry", Message: fmt.Sprintf("unknown symmetry %q (want full or rotation)", j.Symmetry)})
	}

	windowed := j.MinEdgeLength != nil || j.MaxEdgeLength != nil
	if j.EdgeLength != nil && windowed {
		errs = append(errs, Error{Field: "edge_length", Message: "edge_length and min/max_edge_length are mutually exclusive"})
	}
	if j.AnySingleEdgeLength && (j.EdgeLength != nil || windowed) {
		errs = append(errs, Error{Field: "any_single_edge_length", Message: "any_single_edge_length overrides the edge-length window; set one or the other"})
	}
	if j.MinEdgeLength != nil && j.MaxEdgeLength != nil && *j.MinEdgeLength > *j.MaxEdgeLength {
		errs = append(errs, Error{Field: "min_edge_length", Message: "min_edge_length exceeds max_edge_length"})
	}
	if j.MinInradius != nil && j.MaxInradius != nil && *j.MinInradius > *j.MaxInradius {
		errs = append(errs, Error{Field: "min_inradius", Message: "min_inradius exceeds max_inradius"})
	}
	if j.Noble < 0 {
		errs = append(errs, Error{Field: "noble", Message: "noble must not be negative"})
	}
	if j.MaxPerHyperplane < 0 {
		errs = append(errs, Error{Field: "max_per_hyperplane", Message: "max_per_hyperplane must not be negative"})
	}

	return errs
}

// Points returns the vertex coordinates as geometry points.
func (j *Job) Points() []geom.Point {
	out := make([]geom.Point, len(j.Vertices))
	for i, v := range j.Vertices {
		out[i] = geom.Point(v).Clone()
	}
	return out
}

// FacetingOptions translates the job into enumerator options. The
// observer and emit hook stay with the caller.
func (j *Job) FacetingOptions() faceting.Options {
	opts := faceting.Options{
		Rank:                j.Rank,
		AnySingleEdgeLength: j.AnySingleEdgeLength,
		MinEdgeLength:       j.MinEdgeLength,
		MaxEdgeLength:       j.MaxEdgeLength,
		MinInradius:         j.MinInradius,
		MaxInradius:         j.MaxInradius,
		ExcludeHemis:        j.ExcludeHemis,
		OnlyBelowVertex:     j.OnlyBelowVertex,
		Noble:               j.Noble,
		MaxPerHyperplane:    j.MaxPerHyperplane,
		Uniform:             j.Uniform,
		IncludeCompounds:    j.IncludeCompounds,
		MarkFissary:         j.MarkFissary,
		LabelFacets:         j.LabelFacets,
		SaveFacets:          j.SaveFacets,
	}
	if j.EdgeLength != nil {
		opts.MinEdgeLength = j.EdgeLength
		opts.MaxEdgeLength = j.EdgeLength
	}
	return opts
}
