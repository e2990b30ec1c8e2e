package jobfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// schema is the CUE contract a .cue job file must satisfy. The file
// defines a top-level "job" struct; unknown fields are rejected by the
// closed definition.
const schema = `
#Job: {
	name?:                   string & !=""
	rank:                    int & >=1
	vertices:                [[...number], ...[...number]]
	symmetry?:               "full" | "rotation"
	edge_length?:            number & >0
	min_edge_length?:        number & >=0
	max_edge_length?:        number & >=0
	any_single_edge_length?: bool
	min_inradius?:           number & >=0
	max_inradius?:           number & >=0
	exclude_hemis?:          bool
	only_below_vertex?:      bool
	noble?:                  int & >=0
	max_per_hyperplane?:     int & >=0
	uniform?:                bool
	include_compounds?:      bool
	mark_fissary?:           bool
	label_facets?:           bool
	save_facets?:            bool
	output_dir?:             string
	database?:               string
}

job: #Job
`

// Parse reads and decodes a job file without semantic validation. The
// format is chosen by extension: .cue or .yaml/.yml.
func Parse(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}

	var job *Job
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		job, err = parseCUE(path, data)
	case ".yaml", ".yml":
		job, err = parseYAML(data)
	default:
		return nil, &Error{Field: "file", Message: fmt.Sprintf("unsupported job file extension %q (want .cue, .yaml or .yml)", filepath.Ext(path))}
	}
	if err != nil {
		return nil, err
	}

	if job.Name == "" {
		base := filepath.Base(path)
		job.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return job, nil
}

// Load parses and validates a job file. The first validation failure
// is returned as the error.
func Load(path string) (*Job, error) {
	job, err := Parse(path)
	if err != nil {
		return nil, err
	}
	if errs := job.Validate(); len(errs) > 0 {
		return nil, &errs[0]
	}
	return job, nil
}

func parseCUE(path string, data []byte) (*Job, error) {
	ctx := cuecontext.New()

	schemaVal := ctx.CompileString(schema)
	if err := schemaVal.Err(); err != nil {
		return nil, fmt.Errorf("compile job schema: %w", err)
	}

	fileVal := ctx.CompileBytes(data, cue.Filename(path))
	if err := fileVal.Err(); err != nil {
		return nil, cueError(err)
	}

	unified := schemaVal.Unify(fileVal)
	if err := unified.Err(); err != nil {
		return nil, cueError(err)
	}

	jobVal := unified.LookupPath(cue.ParsePath("job"))
	if !jobVal.Exists() {
		return nil, &Error{Field: "job", Message: "job file defines no top-level job struct"}
	}
	if err := jobVal.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(err)
	}

	job := &Job{}
	if err := jobVal.Decode(job); err != nil {
		return nil, cueError(err)
	}
	return job, nil
}

func parseYAML(data []byte) (*Job, error) {
	job := &Job{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(job); err != nil {
		return nil, &Error{Field: "yaml", Message: err.Error()}
	}
	return job, nil
}

// cueError flattens a CUE error list into a single job error carrying
// the first position, the way CUE reports read best.
func cueError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &Error{Field: "cue", Message: err.Error()}
	}
	first := errs[0]
	msg := first.Error()
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		p := positions[0]
		msg = fmt.Sprintf("%s:%d:%d: %s", p.Filename(), p.Line(), p.Column(), msg)
	}
	return &Error{Field: "cue", Message: msg}
}
