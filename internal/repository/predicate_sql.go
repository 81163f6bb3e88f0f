package repository

import (
	"fmt"
	"strings"

	"github.com/octobees/roomshare/api/internal/search"
)

// whereClause renders the predicate as a SQL boolean expression using $n
// placeholders starting at idx. columns maps logical field names onto column
// expressions; a field outside that whitelist is an error. An empty predicate
// yields an empty clause.
//
// Text conditions use the case-insensitive regex operator with the escaped
// literal bound once and shared across the OR-ed columns.
func whereClause(p search.Predicate, columns map[string]string, idx int) (string, []any, error) {
	if p.MatchNone {
		return "FALSE", nil, nil
	}

	var (
		clauses []string
		args    []any
	)

	for _, cond := range p.Conditions {
		switch c := cond.(type) {
		case search.TextMatch:
			ors := make([]string, 0, len(c.Fields))
			for _, field := range c.Fields {
				col, ok := columns[field]
				if !ok {
					return "", nil, fmt.Errorf("unsupported search field %q", field)
				}
				ors = append(ors, fmt.Sprintf("%s ~* $%d", col, idx))
			}
			if len(ors) == 0 {
				return "", nil, fmt.Errorf("text condition without fields")
			}
			clauses = append(clauses, "("+strings.Join(ors, " OR ")+")")
			args = append(args, c.Pattern)
			idx++
		case search.Equals:
			col, ok := columns[c.Field]
			if !ok {
				return "", nil, fmt.Errorf("unsupported filter field %q", c.Field)
			}
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) = LOWER($%d)", col, idx))
			args = append(args, c.Value)
			idx++
		case search.NumericRange:
			col, ok := columns[c.Field]
			if !ok {
				return "", nil, fmt.Errorf("unsupported range field %q", c.Field)
			}
			clauses = append(clauses, fmt.Sprintf("%s >= $%d", col, idx))
			args = append(args, c.Range.Min)
			idx++
			if c.Range.Max != nil {
				clauses = append(clauses, fmt.Sprintf("%s <= $%d", col, idx))
				args = append(args, *c.Range.Max)
				idx++
			}
		default:
			return "", nil, fmt.Errorf("unsupported condition %T", cond)
		}
	}

	return strings.Join(clauses, " AND "), args, nil
}
