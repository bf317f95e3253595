package knowledge

import (
	"context"
	"fmt"
	"strings"
)

// Record is a stored question/answer pair owned by the external store.
type Record struct {
	FileID      string   `json:"fileId"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	PageNumbers []string `json:"pageNumber"`
}

// Reference is a deduplicated citation: one entry per source file, with the
// page numbers merged in first-seen order.
type Reference struct {
	FileID      string   `json:"fileId"`
	PageNumbers []string `json:"pageNumber"`
}

// Result is the aggregated outcome of a knowledge-base lookup.
type Result struct {
	Answer     string
	References []Reference
}

// Fetcher is the external store capability: a bulk fetch for one tenant,
// capped at limit records. There is no query parameter on purpose; relevance
// filtering happens on this side.
type Fetcher interface {
	Fetch(ctx context.Context, tenant string, limit int) ([]Record, error)
}

// FormatReferences renders a numbered reference block for display.
func FormatReferences(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nReferences:\n")
	for i, ref := range refs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s - Page %s", i+1, ref.FileID, strings.Join(ref.PageNumbers, ", "))
	}
	return b.String()
}
