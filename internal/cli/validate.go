package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/apeirotope/facet/internal/jobfile"
)

// ValidationResult holds job validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Job    string            `json:"job,omitempty"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one job validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <job-file>",
		Short: "Check a job file without running it",
		Long: `Parse a job file and run every semantic check the run command would,
without enumerating anything. Faster feedback while writing jobs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, jobPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	job, err := jobfile.Parse(jobPath)
	if err != nil {
		code := jobErrorCode(err)
		_ = formatter.Error(code, err.Error(), nil)
		return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, err.Error()), err)
	}

	formatter.VerboseLog("Parsed job %q (rank %d, %d vertices)", job.Name, job.Rank, len(job.Vertices))

	if errs := job.Validate(); len(errs) > 0 {
		return outputValidationErrors(formatter, job.Name, errs)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Job: job.Name})
	}
	fmt.Fprintf(formatter.Writer, "✓ job %q valid\n", job.Name)
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, jobName string, errs []jobfile.Error) error {
	converted := make([]ValidationError, len(errs))
	for i, e := range errs {
		converted[i] = ValidationError{Field: e.Field, Message: e.Message, Code: ErrCodeInvalid}
	}

	if formatter.Format == "json" {
		enc := json.NewEncoder(formatter.Writer)
		enc.SetIndent("", "  ")
		_ = enc.Encode(CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Job: jobName, Errors: converted},
			Error:  &CLIError{Code: converted[0].Code, Message: converted[0].Message},
		})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range converted {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
