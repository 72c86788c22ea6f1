// Package guard validates reply bodies before they are composed into drafts.
// Agents occasionally emit a reply that is nothing but the pasted Space
// Edition block; this catches that degenerate shape.
package guard

import (
	"strings"

	"github.com/k3a/html2text"

	"github.com/bescka/fac-mcp/pkg/apod"
)

// FormatPlain and FormatHTML are the reply body formats understood by the
// guardrail and the draft composer.
const (
	FormatPlain = "plain"
	FormatHTML  = "html"
)

// MissingReplyBodyError reports a reply whose text before the Space Edition
// marker is empty.
type MissingReplyBodyError struct{}

func (e *MissingReplyBodyError) Error() string {
	return "reply has no body text before the \"" + apod.Banner + "\" block"
}

// CheckReplyBody fails when the Space Edition marker appears in body with no
// substantive text before it. A body without the marker trivially passes. In
// HTML format, tags are stripped from the prefix before judging emptiness.
// This is a presence heuristic, not a semantic check.
func CheckReplyBody(body, format string) error {
	idx := strings.Index(body, apod.Banner)
	if idx < 0 {
		return nil
	}

	prefix := body[:idx]
	if format == FormatHTML {
		prefix = strings.Join(strings.Fields(html2text.HTML2Text(prefix)), " ")
	}
	if strings.TrimSpace(prefix) == "" {
		return &MissingReplyBodyError{}
	}
	return nil
}
