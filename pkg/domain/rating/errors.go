package rating

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete is returned when a submit is attempted before every
	// question has a score.
	ErrIncomplete = errors.New("not every question has been rated")
	// ErrSubmissionFailed covers any non-2xx response or transport failure.
	ErrSubmissionFailed = errors.New("rating submission failed")

	ErrUnknownQuestion    = errors.New("unknown question")
	ErrInvalidScore       = errors.New("score out of range")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
	ErrDialogClosed       = errors.New("rating dialog is closed")
)

// ValidationError reports an incomplete RatingSet.
type ValidationError struct {
	Answered int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("only %d of %d questions rated", e.Answered, QuestionCount)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrIncomplete
}

// SubmissionError describes a failed delivery to the form endpoint.
// StatusCode is zero when the request never produced a response.
type SubmissionError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Detail != "":
		return fmt.Sprintf("form endpoint returned status %d: %s", e.StatusCode, e.Detail)
	case e.StatusCode != 0:
		return fmt.Sprintf("form endpoint returned status %d", e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("send submission: %v", e.Err)
	default:
		return ErrSubmissionFailed.Error()
	}
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

func (e *SubmissionError) Is(target error) bool {
	return target == ErrSubmissionFailed
}

// TransitionError is returned when the dialog state machine rejects an event.
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("the action '%s' is not allowed while the dialog is '%s'", e.Event, e.From)
}
