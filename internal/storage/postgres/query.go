package postgres

import (
	"strconv"
	"strings"

	"news_portal/internal/domain"
)

// updateQuery builds "UPDATE table SET ..., updated_at = NOW() WHERE key = $n
// RETURNING columns" from patch assignments.
func updateQuery(table, key string, assignments []domain.Assignment, returning string) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(table)
	sb.WriteString(" SET ")

	args := make([]interface{}, 0, len(assignments)+1)
	for _, a := range assignments {
		args = append(args, a.Value)
		sb.WriteString(a.Column)
		sb.WriteString(" = $")
		sb.WriteString(strconv.Itoa(len(args)))
		sb.WriteString(", ")
	}
	sb.WriteString("updated_at = NOW() WHERE ")
	sb.WriteString(key)
	sb.WriteString(" = $")
	sb.WriteString(strconv.Itoa(len(args) + 1))
	sb.WriteString(" RETURNING ")
	sb.WriteString(returning)

	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns q into a LIKE pattern matching q as a literal substring.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
