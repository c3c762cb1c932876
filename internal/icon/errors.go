package icon

import (
	"errors"
	"fmt"
)

var (
	ErrAssetMissing = errors.New("asset missing")
	ErrBadColor     = errors.New("malformed color")
	ErrRenderFailed = errors.New("render failed")
	ErrOutputWrite  = errors.New("output write failed")
)

// StageError records an optional stage that was skipped
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s skipped: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
