package directory

import (
	"strings"

	"github.com/yigit/studentdesk/internal/app/models"
)

// Filter keeps the records whose full name, enrollment code, program or email
// contains query, ignoring case. Order is preserved; an empty query keeps everything.
func Filter(records []*models.Student, query string) []*models.Student {
	q := strings.ToLower(query)

	out := make([]*models.Student, 0, len(records))
	for _, r := range records {
		if q == "" || matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r *models.Student, q string) bool {
	for _, field := range []string{r.FullName, r.EnrollmentCode, r.Program, r.Email} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
