package cmd

import (
	"github.com/gaurav-prasanna/mdsafe/config"
	"github.com/gaurav-prasanna/mdsafe/core"
	"github.com/gaurav-prasanna/mdsafe/core/audit"
	"github.com/gaurav-prasanna/mdsafe/core/convert"
	"github.com/gaurav-prasanna/mdsafe/core/pipeline"
	"github.com/gaurav-prasanna/mdsafe/core/sanitize"
	"github.com/gaurav-prasanna/mdsafe/logging"
)

// buildPipeline assembles converter, sanitizer and, when enabled, the auditor.
func buildPipeline(settings config.Settings, logger logging.Logger) *pipeline.Pipeline {
	policy := sanitize.DefaultPolicy()
	for _, tag := range policy.Unreachable() {
		logger.Warn("attribute rules ignored for element outside the allow-list",
			"element", tag,
			"attributes", policy.AllowedAttributes[tag],
		)
	}

	var auditor core.Auditor
	if settings.Audit {
		auditor = audit.New(policy)
	}

	return pipeline.New(
		convert.New(convert.DefaultOptions()),
		sanitize.New(policy),
		auditor,
	)
}
