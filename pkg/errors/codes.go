package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal       ErrorCode = "COMMON_001"
	ErrCodeBadRequest     ErrorCode = "COMMON_002"
	ErrCodeNotFound       ErrorCode = "COMMON_003"
	ErrCodeConflict       ErrorCode = "COMMON_004"
	ErrCodeValidation     ErrorCode = "COMMON_005"
	ErrCodeSerialization  ErrorCode = "COMMON_006"
	ErrCodeDatabaseError  ErrorCode = "COMMON_007"
	ErrCodeCacheError     ErrorCode = "COMMON_008"
	ErrCodeNotImplemented ErrorCode = "COMMON_009"
)

// Short aliases used throughout the engine code.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeDatabaseError  = ErrCodeDatabaseError
	CodeCacheError     = ErrCodeCacheError
	CodeSerialization  = ErrCodeSerialization
	CodeNotImplemented = ErrCodeNotImplemented
	CodeUnknown        = ErrorCode("UNKNOWN")
	CodeOK             = ErrorCode("OK")
)

// Graph model error codes
const (
	// ErrCodeAtomNotFound is returned when an operation references an atom
	// identity that is not present in the graph.
	ErrCodeAtomNotFound ErrorCode = "CHEM_001"

	// ErrCodeBondNotFound is returned when no bond exists between the two
	// referenced atoms.
	ErrCodeBondNotFound ErrorCode = "CHEM_002"

	// ErrCodeValenceExceeded is returned when an edit would push an atom's
	// total bond order past its element's maximum valence.
	ErrCodeValenceExceeded ErrorCode = "CHEM_003"

	// ErrCodeSelfBond is returned when a bond is requested between an atom
	// and itself.
	ErrCodeSelfBond ErrorCode = "CHEM_004"

	// ErrCodeDisconnected is returned when an edit would fragment the graph
	// into more than one connected component.
	ErrCodeDisconnected ErrorCode = "CHEM_005"

	// ErrCodeUnknownElement is returned for element symbols outside the
	// supported organic set.
	ErrCodeUnknownElement ErrorCode = "CHEM_006"
)

// Mutation engine error codes
const (
	ErrCodeAromaticImmutable   ErrorCode = "MUT_001"
	ErrCodeNotTerminal         ErrorCode = "MUT_002"
	ErrCodeUseBranchInstead    ErrorCode = "MUT_003"
	ErrCodeUseShortenInstead   ErrorCode = "MUT_004"
	ErrCodeBondExists          ErrorCode = "MUT_005"
	ErrCodeNotSameChain        ErrorCode = "MUT_006"
	ErrCodeInvalidBondOrder    ErrorCode = "MUT_007"
	ErrCodeSubstituentInvalid  ErrorCode = "MUT_008"
	ErrCodeHeteroatomMultiBond ErrorCode = "MUT_009"
)

// Nomenclature / notation / persistence error codes
const (
	ErrCodeNamingFailed     ErrorCode = "NAME_001"
	ErrCodeChainTooLong     ErrorCode = "NAME_002"
	ErrCodeNotationFailed   ErrorCode = "SMI_001"
	ErrCodeFormulaUnknown   ErrorCode = "SMI_002"
	ErrCodeDocumentInvalid  ErrorCode = "DOC_001"
	ErrCodeDocumentNotFound ErrorCode = "DOC_002"
)

// Module returns the module prefix of the code, e.g. "CHEM" for CHEM_003.
// The metrics layer uses it to label failures without enumerating every code.
func (c ErrorCode) Module() string {
	s := string(c)
	if i := strings.IndexByte(s, '_'); i > 0 {
		return s[:i]
	}
	return s
}
