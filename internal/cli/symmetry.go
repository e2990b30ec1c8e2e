package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/apeirotope/facet/internal/geom"
	"github.com/apeirotope/facet/internal/jobfile"
	"github.com/apeirotope/facet/internal/orbit"
)

// SymmetryReport describes a vertex set's symmetry group and the
// quantities the faceting search derives from it.
type SymmetryReport struct {
	Job          string    `json:"job"`
	GroupOrder   int       `json:"group_order"`
	VertexOrbits [][]int   `json:"vertex_orbits"`
	EdgeLengths  []float64 `json:"edge_lengths"`
}

// NewSymmetryCommand creates the symmetry command.
func NewSymmetryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symmetry <job-file>",
		Short: "Report a job's symmetry group and vertex orbits",
		Long: `Derive the symmetry group of a job's vertex set and report its order,
the vertex orbit partition, and the distinct candidate edge lengths.
Useful for sizing a search before running it.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSymmetry(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runSymmetry(opts *RootOptions, jobPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	job, err := jobfile.Load(jobPath)
	if err != nil {
		_ = formatter.Error(jobErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load job", err)
	}

	points := job.Points()
	vm := deriveVertexMap(job)
	report := SymmetryReport{
		Job:          job.Name,
		GroupOrder:   len(vm),
		VertexOrbits: orbit.Vertices(len(points), vm),
		EdgeLengths:  distinctLengths(points),
	}

	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "job: %s\n", report.Job)
	fmt.Fprintf(formatter.Writer, "symmetry group order: %d\n", report.GroupOrder)
	fmt.Fprintf(formatter.Writer, "vertex orbits: %d\n", len(report.VertexOrbits))
	for i, o := range report.VertexOrbits {
		fmt.Fprintf(formatter.Writer, "  orbit %d: %d vertices\n", i, len(o))
	}
	fmt.Fprintf(formatter.Writer, "distinct edge lengths: %d\n", len(report.EdgeLengths))
	for _, l := range report.EdgeLengths {
		fmt.Fprintf(formatter.Writer, "  %g\n", l)
	}
	return nil
}

// distinctLengths returns the sorted distinct pairwise distances,
// merged within the geometric tolerance.
func distinctLengths(points []geom.Point) []float64 {
	var all []float64
	for i := range points {
		for j := i + 1; j < len(points); j++ {
			all = append(all, geom.Dist(points[i], points[j]))
		}
	}
	sort.Float64s(all)

	var out []float64
	for _, l := range all {
		if len(out) == 0 || l-out[len(out)-1] > geom.Eps {
			out = append(out, l)
		}
	}
	return out
}
