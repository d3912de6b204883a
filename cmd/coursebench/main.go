package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0 // Run completed, every cell succeeded
	ExitCellsFailed = 1 // Run completed but some cells failed (with --strict)
	ExitError       = 2 // Configuration or runtime error
)

// CellFailureError indicates the benchmark itself ran to completion but
// one or more cells failed generation.
type CellFailureError struct {
	Failed int
}

func (e *CellFailureError) Error() string {
	return fmt.Sprintf("%d cells failed generation", e.Failed)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var cellErr *CellFailureError
		if errors.As(err, &cellErr) {
			os.Exit(ExitCellsFailed)
		}
		os.Exit(ExitError)
	}
}
