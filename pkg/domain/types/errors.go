package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures by who has to act on them: the user fixing
// their input, the operator fixing the environment, or nobody (the engine
// already reported the failure in its own output).
var (
	ErrTagInvalidInput = goerr.NewTag("invalid_input")
	ErrTagEnvironment  = goerr.NewTag("environment")
	ErrTagEngine       = goerr.NewTag("engine")
)
