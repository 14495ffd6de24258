package benchmark

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnsupportedTableVersion indicates a benchmark table older than MinVersion
	// or with an unparseable version.
	ErrUnsupportedTableVersion = constError("unsupported benchmark table version")

	// ErrNoSectors indicates a benchmark table without any sector entries.
	ErrNoSectors = constError("benchmark table defines no sectors")

	// ErrNegativeWeight indicates a certification, policy or normalization weight below zero.
	ErrNegativeWeight = constError("benchmark table contains a negative weight")
)
