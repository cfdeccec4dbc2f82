package arena

import "fmt"

// PanicError carries the value recovered from a panicking element
// constructor in PushBackClones.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("arena: constructor panicked: %v", e.Value)
}
