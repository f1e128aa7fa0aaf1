package domain

import (
	"errors"
	"fmt"
)

// SiteTarget identifies a web app, or one of its deployment slots when Slot is set.
type SiteTarget struct {
	ResourceGroup string
	Name          string
	Slot          string
}

func (t SiteTarget) String() string {
	if t.Slot == "" {
		return fmt.Sprintf("%s/%s", t.ResourceGroup, t.Name)
	}
	return fmt.Sprintf("%s/%s(%s)", t.ResourceGroup, t.Name, t.Slot)
}

var ErrMissingParameter = errors.New("missing required parameter")

type MissingParameterError struct {
	Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingParameter, e.Parameter)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}
