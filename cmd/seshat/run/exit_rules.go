package run

import (
	"errors"

	"github.com/flarebyte/seshat-tally/internal/config"
)

const (
	exitCodeSuccess = 0
	exitCodeUsage   = 1
	exitCodeConfig  = 2
)

type runExitError struct {
	code int
	msg  string
}

func (e runExitError) Error() string { return e.msg }
func (e runExitError) ExitCode() int { return e.code }

// exitError maps a setup error to its exit status. Calculator failures never
// reach here: stages record them in the envelope.
func exitError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, config.ErrInvalidConfig) {
		return runExitError{code: exitCodeConfig, msg: err.Error()}
	}
	return runExitError{code: exitCodeUsage, msg: err.Error()}
}
