package world

import "errors"

// ErrInvalidStep is returned when a step is not exactly one tile along a
// single axis.
var ErrInvalidStep = errors.New("step must move exactly one tile along one axis")
