package access

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownPreset = errors.New("unknown preset")
)

// CapabilityDeniedError is returned before any upstream call when an
// operation needs a capability the process was not started with.
type CapabilityDeniedError struct {
	Capability Capability
	Operation  string
}

func (e *CapabilityDeniedError) Error() string {
	return fmt.Sprintf("operation %q requires capability %q which is not enabled", e.Operation, e.Capability)
}
