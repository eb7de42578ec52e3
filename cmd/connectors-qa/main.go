package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess      = 0 // Every check passed or was skipped
	ExitChecksFailed = 1 // One or more checks failed
	ExitError        = 2 // Configuration or runtime error
)

// ChecksFailedError indicates that the run completed but at least one check
// failed.
type ChecksFailedError struct {
	Failed int
}

func (e *ChecksFailedError) Error() string {
	return fmt.Sprintf("%d checks failed", e.Failed)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var checksFailedErr *ChecksFailedError
		if errors.As(err, &checksFailedErr) {
			os.Exit(ExitChecksFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
