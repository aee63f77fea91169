package postgres

import (
	"errors"

	"github.com/lib/pq"
)

const uniqueViolation = pq.ErrorCode("23505")

// violatedConstraint returns the name of the unique constraint err
// violated, or "" if err is not a unique violation. The store-level
// rejection is the final arbiter for every uniqueness invariant; the
// service pre-checks only exist for friendlier errors.
func violatedConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
