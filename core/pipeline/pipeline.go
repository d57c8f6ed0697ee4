// Package pipeline runs markdown through the convert → sanitize → audit
// stages. Output is all-or-nothing: when any stage fails no HTML is returned.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/mdsafe/core"
)

// Pipeline chains a Converter, a Sanitizer and an optional Auditor.
type Pipeline struct {
	converter core.Converter
	sanitizer core.Sanitizer
	auditor   core.Auditor
}

// New creates a Pipeline. auditor may be nil to skip the audit stage.
func New(converter core.Converter, sanitizer core.Sanitizer, auditor core.Auditor) *Pipeline {
	return &Pipeline{
		converter: converter,
		sanitizer: sanitizer,
		auditor:   auditor,
	}
}

// Render converts markdown to sanitized HTML.
func (p *Pipeline) Render(markdown string) (string, error) {
	// 1. Convert
	raw, err := p.converter.Convert(markdown)
	if err != nil {
		return "", StageError(err, CodeConvertFailed, "markdown conversion failed")
	}

	// 2. Sanitize
	clean, err := p.sanitizer.Sanitize(raw)
	if err != nil {
		return "", StageError(err, CodeSanitizeFailed, "html sanitization failed")
	}

	// 3. Audit
	if p.auditor != nil {
		violations, err := p.auditor.Audit(clean)
		if err != nil {
			return "", StageError(err, CodeAuditFailed, "html audit failed")
		}
		if len(violations) > 0 {
			return "", StageError(violationError(violations), CodeAuditFailed, "html audit failed")
		}
	}

	return clean, nil
}

// RenderValue renders a decoded JSON value. Only strings are renderable;
// any other value fails the convert stage with ErrNotString.
func (p *Pipeline) RenderValue(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		err := fmt.Errorf("%w, got %T", ErrNotString, v)
		return "", StageError(err, CodeConvertFailed, "markdown conversion failed")
	}
	return p.Render(s)
}

func violationError(vs []core.Violation) error {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	return fmt.Errorf("%w: %s", ErrPolicyViolation, strings.Join(parts, "; "))
}
