package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/apeirotope/facet/internal/faceting"
	"github.com/apeirotope/facet/internal/jobfile"
	"github.com/apeirotope/facet/internal/off"
	"github.com/apeirotope/facet/internal/orbit"
	"github.com/apeirotope/facet/internal/store"
	"github.com/apeirotope/facet/internal/symmetry"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	OutputDir string
	Database  string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <job-file>",
		Short: "Enumerate the facetings a job describes",
		Long: `Load a job file (.cue or .yaml), derive the symmetry group of its
vertex set, and enumerate the facetings that satisfy its filters.

Results stream to stdout as they are found. With --out, each result is
also written as an OFF file; with --db, the run and its results are
recorded in a SQLite catalog.

Example:
  facet run square.yaml
  facet run --out ./results --db ./facet.db pentagon.cue --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.OutputDir, "out", "", "directory for OFF output (overrides the job's output_dir)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite catalog (overrides the job's database)")

	return cmd
}

// resultEntry is one result row in JSON output.
type resultEntry struct {
	Name          string `json:"name"`
	ElementCounts []int  `json:"element_counts"`
	VertexCount   int    `json:"vertex_count"`
}

// runReport is the JSON payload of a completed run.
type runReport struct {
	Job     string        `json:"job"`
	RunID   string        `json:"run_id,omitempty"`
	Results []resultEntry `json:"results"`
	Count   int           `json:"count"`
}

func runJob(opts *RunOptions, jobPath string, cmd *cobra.Command) error {
	configureLogging(opts.Verbose, cmd)

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	slog.Info("loading job", "path", jobPath)
	job, err := jobfile.Load(jobPath)
	if err != nil {
		_ = formatter.Error(jobErrorCode(err), err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load job", err)
	}

	points := job.Points()
	vm := deriveVertexMap(job)
	slog.Info("symmetry group derived", "order", len(vm), "vertices", len(points))

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = job.OutputDir
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			_ = formatter.Error(ErrCodeWrite, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to create output directory", err)
		}
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = job.Database
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var st *store.Store
	runID := ""
	if dbPath != "" {
		st, err = store.Open(dbPath)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open catalog", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing catalog", "error", closeErr)
			}
		}()

		runID, err = st.BeginRun(ctx, job.Name, job.Rank, len(points), job)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		slog.Info("run recorded", "id", runID)
	}

	facetingOpts := job.FacetingOptions()
	if opts.Verbose {
		facetingOpts.Observer = faceting.Throttle(slogObserver{}, time.Second)
	}

	var entries []resultEntry
	facetingOpts.Emit = func(res faceting.Result) error {
		counts := res.Polytope.Abs.Counts()
		entry := resultEntry{
			Name:          res.Name,
			ElementCounts: counts,
			VertexCount:   len(res.Polytope.Vertices),
		}
		entries = append(entries, entry)

		if formatter.Format != "json" {
			fmt.Fprintf(formatter.Writer, "%s  %v\n", res.Name, counts)
		}

		if outDir != "" {
			path, writeErr := off.WriteFile(outDir, res.Name, res.Polytope)
			if writeErr != nil {
				return WrapExitError(ExitCommandError, "failed to write OFF file", writeErr)
			}
			slog.Debug("wrote OFF file", "path", path)
		}

		if st != nil {
			rank := res.Polytope.Abs.Rank()
			recordErr := st.RecordFaceting(ctx, store.Faceting{
				RunID:         runID,
				Name:          res.Name,
				ElementCounts: counts,
				VertexCount:   len(res.Polytope.Vertices),
				FacetCount:    counts[rank-1],
			})
			if recordErr != nil {
				return WrapExitError(ExitCommandError, "failed to record faceting", recordErr)
			}
		}

		return nil
	}

	slog.Info("enumerating", "job", job.Name, "rank", job.Rank)
	_, err = faceting.Enumerate(points, vm, facetingOpts)
	switch {
	case err == nil:
	case errors.Is(err, faceting.ErrRankTooLow):
		fmt.Fprintf(formatter.GetErrWriter(), "Notice: rank %d is below the supported minimum of 3; nothing to enumerate.\n", job.Rank)
		return emitSummary(formatter, job.Name, runID, entries)
	default:
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			_ = formatter.Error(exitCodeToErrCode(exitErr.Code), exitErr.Error(), nil)
			return exitErr
		}
		if faceting.IsInternal(err) {
			_ = formatter.Error(ErrCodeInternal, err.Error(), nil)
			return WrapExitError(ExitFailure, "enumeration aborted", err)
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "enumeration failed", err)
	}

	return emitSummary(formatter, job.Name, runID, entries)
}

func emitSummary(formatter *OutputFormatter, jobName, runID string, entries []resultEntry) error {
	if formatter.Format == "json" {
		if entries == nil {
			entries = []resultEntry{}
		}
		return formatter.Success(runReport{
			Job:     jobName,
			RunID:   runID,
			Results: entries,
			Count:   len(entries),
		})
	}
	fmt.Fprintf(formatter.Writer, "%d result(s)\n", len(entries))
	return nil
}

// deriveVertexMap builds the job's symmetry group from coordinates.
func deriveVertexMap(job *jobfile.Job) orbit.VertexMap {
	points := job.Points()
	if job.Symmetry == "rotation" {
		return symmetry.RotationVertexMap(points)
	}
	return symmetry.VertexMap(points)
}

// configureLogging points slog at stderr, debug level when verbose.
func configureLogging(verbose bool, cmd *cobra.Command) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// exitCodeToErrCode maps an exit code to the closest error code for
// display.
func exitCodeToErrCode(code int) string {
	if code == ExitCommandError {
		return ErrCodeWrite
	}
	return ErrCodeGeneric
}

// jobErrorCode classifies a job load failure.
func jobErrorCode(err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return ErrCodeNotFound
	}
	var jobErr *jobfile.Error
	if errors.As(err, &jobErr) {
		return ErrCodeParse
	}
	return ErrCodeGeneric
}

// slogObserver forwards enumeration progress to the default logger.
type slogObserver struct{}

func (slogObserver) Phase(name string) {
	slog.Debug("phase", "name", name)
}

func (slogObserver) Progress(label string, count int) {
	slog.Debug("progress", "label", label, "count", count)
}
