package ticket

import (
	"errors"
	"fmt"
)

var ErrEmptyID = errors.New("record does not have ID")

type NotFoundError struct {
	RecordID int64
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("no such record: %d", err.RecordID)
}
