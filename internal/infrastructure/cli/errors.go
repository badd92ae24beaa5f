package cli

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studiorate/internal/infrastructure/config"
	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// CLIError wraps domain errors with user-facing messages and actionable hints.
type CLIError struct {
	Message  string
	Hint     string
	Err      error
	ExitCode int
}

func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a CLIError with a default exit code of 1.
func NewCLIError(msg, hint string, err error) *CLIError {
	return &CLIError{
		Message:  msg,
		Hint:     hint,
		Err:      err,
		ExitCode: 1,
	}
}

// MapError converts known domain errors into CLIErrors with actionable hints.
// Unmapped errors are returned as-is.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	var valErr *rating.ValidationError
	if errors.As(err, &valErr) {
		return NewCLIError(
			"ratings are incomplete",
			fmt.Sprintf("Only %d of %d questions were rated; pass all five, e.g. --ratings 5,4,5,4,5", valErr.Answered, rating.QuestionCount),
			err,
		)
	}

	var subErr *rating.SubmissionError
	if errors.As(err, &subErr) {
		hint := "Check your network connection and run the command again"
		if subErr.StatusCode != 0 {
			hint = fmt.Sprintf("The form endpoint answered %d; check 'endpoint' with 'studiorate config show'", subErr.StatusCode)
		}
		e := NewCLIError("submission failed", hint, err)
		e.ExitCode = 2
		return e
	}

	switch {
	case errors.Is(err, rating.ErrInvalidScore):
		return NewCLIError("invalid score", fmt.Sprintf("Scores must be whole numbers from %d to %d", rating.MinScore, rating.MaxScore), err)
	case errors.Is(err, rating.ErrUnknownQuestion):
		return NewCLIError("unknown question", "Questions are q1 to q5", err)
	case errors.Is(err, config.ErrInvalidConfig):
		return NewCLIError("widget config is invalid", "Run 'studiorate config validate' to list every problem", err)
	}

	return err
}
