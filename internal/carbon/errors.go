package carbon

import "fmt"

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownTransportMode indicates a transport mode missing from the factor table.
	// This is a caller bug, never a data gap, so it is surfaced rather than defaulted.
	ErrUnknownTransportMode = constError("unknown transport mode")

	// ErrUnsupportedTableVersion indicates a factor table older than MinFactorsVersion
	// or with an unparseable version.
	ErrUnsupportedTableVersion = constError("unsupported emission factor table version")

	// ErrMissingDefaultMode indicates a factor table without the default truck factor.
	ErrMissingDefaultMode = constError("emission factor table has no truck factor")
)

// UnknownTransportModeError carries the rejected mode.
// It matches ErrUnknownTransportMode with errors.Is.
type UnknownTransportModeError struct {
	Mode TransportMode
}

func (e *UnknownTransportModeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownTransportMode, string(e.Mode))
}

// Is reports whether target is ErrUnknownTransportMode.
func (e *UnknownTransportModeError) Is(target error) bool {
	return target == ErrUnknownTransportMode
}
