package bridge

import (
	"errors"
	"io/fs"
	"strings"
)

// wrapError reclassifies a provider error into the generic error
// vocabulary. It is the single place errors are mapped; every provider
// call site goes through it exactly once.
//
// Errors that already carry a *fs.PathError are considered classified
// and pass through untouched. A structured not-exist error is preferred
// when the provider reports one. Providers with no structured "missing
// path" error are matched on message text instead; that check is fragile
// across provider versions and locales and is kept strictly as a
// fallback. Everything else propagates unmodified.
func wrapError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) || strings.Contains(err.Error(), "does not exist") {
		return &fs.PathError{
			Op:   op,
			Path: name,
			Err:  fs.ErrNotExist,
		}
	}
	return err
}
