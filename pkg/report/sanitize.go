package report

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// sanitizeText strips markup from dataset supplied strings before they are
// placed into HTML output.
func sanitizeText(raw string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(policy.Sanitize(raw))
}
