package engine

import "errors"

// ErrUnavailable means the engine could not be reached at all: connection
// failure, timeout, or a cancelled request. Transport detail stays in the
// wrapped error for logging; clients only ever see a generic message.
var ErrUnavailable = errors.New("game engine unavailable")
