package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jobayerhossain-ai/Bangla-Quotes/internal/apperr"
	"gorm.io/gorm"
)

// Actor identifies who performed a write, for the audit trail.
type Actor struct {
	UserID    string
	IP        string
	UserAgent string
}

// notFound maps a missing row to a 404 with message and anything else
// through apperr.FromDB.
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(message)
	}
	return apperr.FromDB(err)
}

// orderClause turns a whitelisted sort key into "column DIRECTION". Unknown
// keys fall back to fallback.
func orderClause(columns map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = fallback
	}
	direction := "ASC"
	if sortOrder == "desc" {
		direction = "DESC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// containsAny matches s as a case-insensitive substring of any of columns.
// Wildcards in s match literally.
func containsAny(s string, columns ...string) (string, []interface{}) {
	pattern := likePattern(s)
	conds := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		conds[i] = fmt.Sprintf(`LOWER(%s) LIKE LOWER(?) ESCAPE '\'`, column)
		args[i] = pattern
	}
	return strings.Join(conds, " OR "), args
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
