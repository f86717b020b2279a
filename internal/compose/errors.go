package compose

import (
	"errors"
	"fmt"

	"github.com/galois26/medal-bot/internal/model"
)

// ErrDataUnavailable means the dataset is empty or could not be read. Runs
// cannot continue.
var ErrDataUnavailable = errors.New("dataset unavailable")

// ErrRenderDefect matches any *RenderDefectError.
var ErrRenderDefect = errors.New("render defect")

// RenderDefectError reports a row whose committee code has no display name.
// It points at bad data and is never retried.
type RenderDefectError struct {
	Row  model.Row
	Code string
}

func (e *RenderDefectError) Error() string {
	return fmt.Sprintf("render defect: no country name for code %q (winner %q, %s)", e.Code, e.Row.Winner, e.Row.Key())
}

func (e *RenderDefectError) Is(target error) bool { return target == ErrRenderDefect }
