// Package berrors gives the rest of Berberis a single place to report
// two error shapes: programming errors (fatal, unrecoverable, always a
// bug) and ordinary returned errors that callers are expected to
// handle.
package berrors

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

// Fatalf prints a diagnostic and terminates the process. Use it only for
// violated preconditions: invalid opcode arguments, assembler immediates
// that were not range-checked by the caller, IR invariant violations,
// trampoline misuse. These are bugs, not data errors, so there is no
// recovery path.
func Fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "berberis: FATAL: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}

// fatalHook lets tests observe a Fatalf call without killing the test
// binary. Production code never touches this.
var fatalHook func(string)

// CheckFatal aborts via Fatalf unless cond holds.
func CheckFatal(cond bool, format string, args ...any) {
	if cond {
		return
	}
	if fatalHook != nil {
		fatalHook(fmt.Sprintf(format, args...))
		return
	}
	Fatalf(format, args...)
}

// LoaderError wraps a recoverable guest-loader failure with the loading
// stage it happened in, preserving the root cause for errors.Cause.
type LoaderError struct {
	Stage string
	cause error
}

func (e *LoaderError) Error() string {
	return fmt.Sprintf("guest loader: %s: %v", e.Stage, e.cause)
}

func (e *LoaderError) Unwrap() error { return e.cause }

// Cause satisfies github.com/pkg/errors' causer interface so that
// errors.Cause(loaderErr) reaches the root cause, not just e.cause.
func (e *LoaderError) Cause() error { return errors.Cause(e.cause) }

// WrapLoader wraps err with stage context. Returns nil if err is nil.
func WrapLoader(stage string, err error) error {
	if err == nil {
		return nil
	}
	return &LoaderError{Stage: stage, cause: errors.Wrapf(err, "stage %s", stage)}
}

// Cause returns the innermost error, same contract as errors.Cause.
func Cause(err error) error {
	return errors.Cause(err)
}
