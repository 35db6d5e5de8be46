package cli

// Default values for CLI flags and formatted output.
const (
	// TabWidth is the width of tabs in formatted output.
	TabWidth = 2

	// subsetArgCount is the number of positional arguments of the root command.
	subsetArgCount = 3
)

// Process exit codes.
const (
	ExitCodeOK      = 0
	ExitCodeFailure = 1 // invalid input or a command error
	ExitCodePartial = 2 // --strict and at least one granule or the search failed
)
