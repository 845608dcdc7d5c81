// File: internal/common/uuid.go
package common

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseUUID parses a path or query parameter into a UUID, mapping parse
// failures to a BAD_REQUEST error naming the offending parameter.
func ParseUUID(value, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, ErrBadRequest.WithDetails(fmt.Sprintf("Invalid %s format.", label))
	}
	return id, nil
}
