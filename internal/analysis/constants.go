// Package analysis connects the disassembly engine to ELF images and
// emulator traces: symbol lookup, string literal annotation, listings and
// a decoder cross-check.
package analysis

const (
	// MaxStringLength bounds string literal reads.
	MaxStringLength = 256

	// MinStringLength is the shortest C string shown as an annotation.
	MinStringLength = 4

	// MaxStringDisplay truncates long literals in annotations.
	MaxStringDisplay = 48

	// DefaultListingCount is the instruction count for a --start listing
	// without --count.
	DefaultListingCount = 64

	// MaxListingInstructions caps a single listing.
	MaxListingInstructions = 1 << 20
)
