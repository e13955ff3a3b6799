package sqlxrepos

import (
	"strings"

	"github.com/lib/pq"

	"github.com/ttucompsci/paytrack/core"
)

const pqUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique constraint violation,
// optionally on a specific constraint.
func isUniqueViolation(err error, constraint string) bool {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != pqUniqueViolation {
		return false
	}
	return constraint == "" || strings.Contains(pqErr.Constraint, constraint)
}

// orderClause renders an ORDER BY for the requested ordering. Field names
// arrive from the request, so only names mapped in columns make it into the
// query text; everything else is dropped. Falls back when nothing valid
// remains.
func orderClause(ordering []core.DBOrdering, columns map[string]string, fallback string) string {
	parts := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		col, ok := columns[ord.Field]
		if !ok {
			continue
		}
		parts = append(parts, core.DBOrdering{Field: col, Ascending: ord.Ascending}.String())
	}
	if len(parts) == 0 {
		return " ORDER BY " + fallback
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

// inClause expands ids into a pq array comparison to avoid rebinding.
func inClause(ids []string) pq.StringArray {
	return pq.StringArray(ids)
}
