// Package solverconfig reads optional HCL override files for the
// solver CLI. Flags on the command line always take precedence; a
// config file is never required.
package solverconfig

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// File is the optional HCL shape for `solver train --config solver.hcl`.
type File struct {
	Game            string  `hcl:"game,optional"`
	Iterations      int     `hcl:"iterations,optional"`
	EffStack        float64 `hcl:"eff_stack,optional"`
	EquityTable     string  `hcl:"equity_table,optional"`
	CheckpointEvery int     `hcl:"checkpoint_every,optional"`
	CheckpointDir   string  `hcl:"checkpoint_dir,optional"`
	ProgressEvery   int     `hcl:"progress_every,optional"`
}

// Load parses path as an HCL solver config file. A missing file is
// not an error: it returns a zero-value File so callers can apply it
// as a set of no-op overrides.
func Load(path string) (File, error) {
	if path == "" {
		return File{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return File{}, nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return File{}, fmt.Errorf("parse hcl config %q: %s", path, diags.Error())
	}

	var cfg File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
		return File{}, fmt.Errorf("decode hcl config %q: %s", path, diags.Error())
	}
	return cfg, nil
}
