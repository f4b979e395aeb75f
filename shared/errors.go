package shared

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize       = errors.New("invalid instance size")
	ErrInvalidPathLength = errors.New("invalid path length")
	ErrInstanceMissing   = errors.New("instance is missing")
	ErrWitnessMissing    = errors.New("witness is missing")
	ErrChallengeMissing  = errors.New("challenge is missing")
)

// InvalidParamError reports a configuration parameter outside its accepted range.
type InvalidParamError struct {
	Param    string
	Expected string
	Given    string
}

func (err InvalidParamError) Error() string {
	return fmt.Sprintf("invalid `%v`; expected: %v, given: %v", err.Param, err.Expected, err.Given)
}
