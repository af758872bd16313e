// Package cmd provides command-line interface implementations.
// This file contains shell completion predictors for the endmark CLI.
// Predictors provide context-aware suggestions for tab completion in
// supported shells (bash, zsh, fish).
package cmd

import (
	"os"
	"path/filepath"

	"github.com/posener/complete"
)

// PredictSourceFiles returns a predictor that suggests regular files in
// the current directory, for the format command's positional file
// arguments.
func PredictSourceFiles() complete.Predictor {
	return complete.PredictFunc(
		func(_ complete.Args) []string {
			cwd, err := os.Getwd()
			if err != nil {
				return nil
			}

			entries, err := os.ReadDir(cwd)
			if err != nil {
				return nil
			}

			var files []string
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				files = append(files, filepath.Join(cwd, e.Name()))
			}
			return files
		},
	)
}

// PredictIndentStrings returns a predictor that suggests the common
// indentation widths for --indent-with.
func PredictIndentStrings() complete.Predictor {
	return complete.PredictSet("\t", "  ", "    ")
}
