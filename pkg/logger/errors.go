package logger

import "errors"

// ErrInvalidFormat is returned by ParseFormat for unknown output formats.
var ErrInvalidFormat = errors.New("logger: invalid log format")
