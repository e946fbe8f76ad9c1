// Package ops implements the operator-facing operations over the captured
// journal archive. Each operation takes an Input struct and returns an
// Output struct suitable for JSON output.
package ops

import (
	"strings"

	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	TotalPages int  `json:"total_pages"`
	Total      int  `json:"total"`
	HasMore    bool `json:"has_more"`
}

// resolveNamespace defaults an empty namespace to the journal namespace.
func resolveNamespace(ns string) string {
	ns = strings.TrimSpace(ns)
	if ns == "" {
		return journal.DefaultNamespace
	}
	return ns
}
