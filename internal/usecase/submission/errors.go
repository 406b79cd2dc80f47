package submission

import "errors"

var (
	ErrAlreadyProcessed   = errors.New("submission already processed")
	ErrSubmissionNotFound = errors.New("submission not found")
)
