package cli

import "errors"

// ErrNoInput is returned when a batch command has nothing to work on.
var ErrNoInput = errors.New("no files to process")
