// Package errs defines the sentinel errors shared by every ecf package.
//
// Errors are wrapped with additional context by the packages that return them,
// so callers should compare with errors.Is rather than ==.
package errs

import "errors"

// Number and path errors.
var (
	// ErrNegativeNumber is returned when a natural number argument is negative.
	ErrNegativeNumber = errors.New("number must not be negative")
	// ErrNotPositive is returned when a number below 1 is given where the Collatz map needs n >= 1.
	ErrNotPositive = errors.New("number must be >= 1")
	// ErrPathUndefined is returned when a path is requested for a number below 1.
	ErrPathUndefined = errors.New("path is only defined for numbers >= 1")
	// ErrPathMismatch is returned when a path does not index the given number.
	ErrPathMismatch = errors.New("number is not at the given path")
	// ErrPowerOfTwo is returned when a tree walk is requested for a power of two, which sits
	// outside every subtree and is resolved directly.
	ErrPowerOfTwo = errors.New("power of two has no tree walk")
)

// Prefix algebra errors.
var (
	// ErrIdenticalOperands is returned by prefix.Find when both operands are equal,
	// since a synchronized descent of a number with itself never diverges.
	ErrIdenticalOperands = errors.New("prefix operands must differ")
	// ErrInexactDivision is returned when a prefix asks for a division with a non-zero remainder,
	// which means the prefix is not a prefix of the number's ECF.
	ErrInexactDivision = errors.New("inexact division while iterating prefix")
	// ErrUnsortedPrefix is returned when a prefix is not ascending.
	ErrUnsortedPrefix = errors.New("prefix is not ascending")
	// ErrNotCanonical is returned when a prefix does not reduce its number to 1.
	ErrNotCanonical = errors.New("prefix is not the canonical form of the number")
)

// Assembler errors.
var (
	// ErrStepLimitExceeded is returned when an assembler exceeds its configured step limit.
	ErrStepLimitExceeded = errors.New("assembler step limit exceeded")
	// ErrDisagreement is returned when two ECF strategies produce different results.
	ErrDisagreement = errors.New("ecf strategies disagree")
	// ErrInvalidEngine is returned for an unknown tree engine type.
	ErrInvalidEngine = errors.New("invalid tree engine")
	// ErrInvalidStrategy is returned for an unknown assembly strategy type.
	ErrInvalidStrategy = errors.New("invalid assembly strategy")
)

// Table format errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidEncoding    = errors.New("invalid prefix encoding")
	ErrInvalidCompression = errors.New("invalid compression type")
	ErrInvalidIndex       = errors.New("invalid index section")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrDuplicateNumber    = errors.New("number already added")
	ErrTableFinished      = errors.New("table encoder already finished")
	ErrTooManyRecords     = errors.New("too many records in table")
)
