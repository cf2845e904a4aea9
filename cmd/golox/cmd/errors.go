package cmd

import "errors"

// ExitError wraps an error with the process exit code spec.md §6 assigns to
// it: 65 for a static (parse/resolve) failure, 70 for a runtime failure. Any
// other error (bad flags, unreadable file) exits 1, cobra's default.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeFor extracts the process exit code for err, defaulting to 1 for
// any error that isn't a tagged *ExitError (flag errors, I/O failures).
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
