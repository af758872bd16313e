// Package batch formats multiple files in one invocation, aggregating
// per-file failures instead of stopping at the first one.
package batch

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/connerohnesorge/endmark/internal/fsio"
	"github.com/connerohnesorge/endmark/internal/reflow"
)

// Result is the outcome of formatting a single file.
type Result struct {
	Path    string
	Changed bool
	Output  []byte
}

// FormatFiles formats every path with opts. When write is true, files
// whose formatted output differs from their current contents are
// rewritten in place; otherwise Output always carries the formatted
// bytes for the caller to print or diff.
//
// Every path is attempted even if an earlier one fails; failures are
// collected into a single *multierror.Error so one bad file in a large
// batch never hides problems in the rest.
func FormatFiles(paths []string, opts reflow.Options, write bool) ([]Result, error) {
	var errs *multierror.Error
	results := make([]Result, 0, len(paths))

	for _, path := range paths {
		data, err := fsio.ReadFile(path)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		out, err := reflow.Format(data, opts)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		res := Result{Path: path, Output: out, Changed: string(out) != string(data)}
		if write && res.Changed {
			if err := fsio.WriteFile(path, out); err != nil {
				errs = multierror.Append(errs, fmt.Errorf("%s: %w", path, err))
				continue
			}
		}

		results = append(results, res)
	}

	return results, errs.ErrorOrNil()
}
