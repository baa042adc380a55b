package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog      = errors.New("catalog is empty")
	ErrEmptySubmission   = errors.New("submission has no lines")
	ErrFulfillmentFailed = errors.New("fulfillment failed")
)

// ExitStatusError ненулевой код завершения внешнего исполнителя.
type ExitStatusError struct {
	Code int
}

func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("fulfillment exited with status %d", e.Code)
}

func (e *ExitStatusError) Unwrap() error {
	return ErrFulfillmentFailed
}
