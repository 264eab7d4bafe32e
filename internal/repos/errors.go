package repos

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicate marks a unique-constraint violation (username/email taken).
var ErrDuplicate = errors.New("duplicate key")

// mapSQLErr converts driver-level constraint failures into the repo's
// sentinel errors so callers can match with errors.Is.
func mapSQLErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	}
	return err
}
