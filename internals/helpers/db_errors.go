// file: internals/helpers/db_errors.go
package helper

import "strings"

// IsDuplicateKeyErr reports whether err is a unique-constraint violation.
// The unique constraint is the source of truth for slug/email conflicts;
// availability pre-checks are advisory only.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "duplicate key") || strings.Contains(low, "unique constraint") || strings.Contains(low, "unique violation")
}
