package pipeline

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CodeConvertFailed  = "MARKDOWN_CONVERT_FAILED"
	CodeSanitizeFailed = "MARKDOWN_SANITIZE_FAILED"
	CodeAuditFailed    = "MARKDOWN_AUDIT_FAILED"
)

// ErrNotString is returned when the markdown input is not a string value.
var ErrNotString = errors.New("markdown input must be a string")

// ErrPolicyViolation is returned when sanitized output fails the audit.
var ErrPolicyViolation = errors.New("sanitized output violates policy")

// StageError wraps err as a failure of a pipeline stage. The returned error
// carries goerrors.CategoryCommand so callers can tell it from input errors.
func StageError(err error, code, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code)
}

// IsStageError reports whether err came from a pipeline stage.
func IsStageError(err error) bool {
	return goerrors.IsCategory(err, goerrors.CategoryCommand)
}
