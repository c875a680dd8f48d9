package loading

import (
	"errors"
	"fmt"

	"github.com/vfg2006/fi-dashboard/pkg/apiErrors"
)

var ErrDatasetUnavailable = errors.New("dataset unavailable")

// LoadError is returned when no dataset snapshot can be served
type LoadError struct {
	Err  error
	Code string
	Path string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s (%s): %s", ErrDatasetUnavailable, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrDatasetUnavailable, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrDatasetUnavailable, e.Err}
}

func newLoadError(err error, path string) *LoadError {
	return &LoadError{
		Err:  err,
		Code: apiErrors.ErrDatasetUnavailable,
		Path: path,
	}
}
