package channels

import (
	"fmt"
	"strings"
)

// SenderLabelParams carries the identity fields a channel knows about a sender.
type SenderLabelParams struct {
	Name     string
	Username string
	Tag      string
	E164     string
	ID       string
}

// ResolveSenderLabel derives a display label for a sender.
// The display part prefers Name, then Username, then Tag; the id part prefers
// E164, then ID. Both are combined as "display (id)" when they differ.
func ResolveSenderLabel(p SenderLabelParams) string {
	display := firstNonEmpty(p.Name, p.Username, p.Tag)
	idPart := firstNonEmpty(p.E164, p.ID)

	if display != "" && idPart != "" && display != idPart {
		return fmt.Sprintf("%s (%s)", display, idPart)
	}
	if display != "" {
		return display
	}
	return idPart
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
