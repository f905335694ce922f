package postgres

import (
	"fmt"

	"github.com/lib/pq"
)

// IsValidID reports whether id can be a serial primary key.
func IsValidID(id int64) bool {
	return id > 0
}

// ValidateIDs checks every id with IsValidID.
func ValidateIDs(ids []int64) error {
	for i, id := range ids {
		if !IsValidID(id) {
			return fmt.Errorf("%w: %d at index %d", ErrInvalidIDs, id, i)
		}
	}
	return nil
}

// Int64Array wraps ids for a "= ANY($n)" parameter.
func Int64Array(ids []int64) any {
	return pq.Array(ids)
}
