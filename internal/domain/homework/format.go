package homework

import "fmt"

// NotFoundMessage is reported when the API returned no homework for the period.
const NotFoundMessage = "No homework found for the period."

// FormatStatus turns a homework record into the chat message announcing its status.
// A nil record yields NotFoundMessage.
func FormatStatus(rec Record) (string, error) {
	if rec == nil {
		return NotFoundMessage, nil
	}

	name, ok := rec[KeyHomeworkName].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, KeyHomeworkName)
	}

	status, ok := rec[KeyStatus].(string)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, KeyStatus)
	}

	verdict, ok := Verdict(Status(status))
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	return fmt.Sprintf("Status changed for \"%s\". %s", name, verdict), nil
}

// FailureMessage is the diagnostic sent to the chat when a poll iteration fails.
// It must stay deterministic for a given error so repeats are suppressed.
func FailureMessage(err error) string {
	return fmt.Sprintf("Program failure: %v", err)
}
