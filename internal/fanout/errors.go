package fanout

import "errors"

var (
	ErrLoadingEnvFile = errors.New("fanout: failed to load env file")
	ErrParsingConfig  = errors.New("fanout: failed to parse environment variables into config")
	ErrInvalidLevel   = errors.New("fanout: invalid log level")
	ErrReadingPlan    = errors.New("fanout: failed to read plan")
	ErrEmptyPlan      = errors.New("fanout: plan has no jobs")
	ErrJobName        = errors.New("fanout: job name is required")
	ErrDuplicateJob   = errors.New("fanout: duplicate job name")
	ErrJobSleep       = errors.New("fanout: job sleep must not be negative")
)
