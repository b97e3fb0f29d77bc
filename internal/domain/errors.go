package domain

import (
	"errors"
	"fmt"
)

// ErrBadFixture marks base data that could not be read or parsed.
var ErrBadFixture = errors.New("bad fixture")

type NotFoundKind string

const (
	NotFoundKPI     NotFoundKind = "kpi"
	NotFoundStation NotFoundKind = "station"
)

// NotFoundError reports an unknown lookup key together with the valid ones.
type NotFoundError struct {
	Kind      NotFoundKind
	Key       string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func BadFixture(source string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrBadFixture, source, err)
}
