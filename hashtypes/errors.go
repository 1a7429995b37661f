package hashtypes

import "fmt"

// CalcErrorKind is the closed taxonomy of Single-File Hasher / Batch Hash
// Engine failures.
type CalcErrorKind int

const (
	CalcNotFound CalcErrorKind = iota
	CalcPermissionDenied
	CalcIO
	CalcTimeout
	CalcCancelled
	CalcAllFailed
)

func (k CalcErrorKind) String() string {
	switch k {
	case CalcNotFound:
		return "not_found"
	case CalcPermissionDenied:
		return "permission_denied"
	case CalcIO:
		return "io"
	case CalcTimeout:
		return "timeout"
	case CalcCancelled:
		return "cancelled"
	case CalcAllFailed:
		return "all_failed"
	default:
		return "unknown"
	}
}

// HashCalcError is returned by hashing operations. Path is empty for
// batch-level errors (AllFailed, Cancelled) and set for per-file errors.
type HashCalcError struct {
	Kind CalcErrorKind
	Path string
	Err  error // wrapped OS error, nil for Cancelled/AllFailed
}

func (e *HashCalcError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("hashcalc: %s", e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("hashcalc: %s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("hashcalc: %s: %s", e.Kind, e.Path)
}

func (e *HashCalcError) Unwrap() error {
	return e.Err
}

// NewCalcError builds a per-file HashCalcError.
func NewCalcError(kind CalcErrorKind, path string, cause error) *HashCalcError {
	return &HashCalcError{Kind: kind, Path: path, Err: cause}
}

// VerifyErrorKind is the closed taxonomy of Bidirectional Verifier failures.
type VerifyErrorKind int

const (
	VerifyCancelled VerifyErrorKind = iota
	VerifySourceFailed
	VerifyTargetFailed
	VerifyNoSourceFiles
	VerifyNoTargetFiles
)

func (k VerifyErrorKind) String() string {
	switch k {
	case VerifyCancelled:
		return "cancelled"
	case VerifySourceFailed:
		return "source_failed"
	case VerifyTargetFailed:
		return "target_failed"
	case VerifyNoSourceFiles:
		return "no_source_files"
	case VerifyNoTargetFiles:
		return "no_target_files"
	default:
		return "unknown"
	}
}

// HashVerifyError is returned by the Bidirectional Verifier. Err carries the
// underlying cause for SourceFailed/TargetFailed (the side's HashCalcError,
// or the filesystem error from discovering that side's files), nil otherwise.
type HashVerifyError struct {
	Kind VerifyErrorKind
	Err  error
}

func (e *HashVerifyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("hashverify: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("hashverify: %s", e.Kind)
}

func (e *HashVerifyError) Unwrap() error {
	return e.Err
}

// NewVerifyError builds a HashVerifyError.
func NewVerifyError(kind VerifyErrorKind, cause error) *HashVerifyError {
	return &HashVerifyError{Kind: kind, Err: cause}
}
