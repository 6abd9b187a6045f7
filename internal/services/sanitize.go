package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML tag and attribute from donor-supplied
// free text before it is persisted or echoed anywhere.
var strictPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}
