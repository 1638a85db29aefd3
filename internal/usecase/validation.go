package usecase

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateSubmitLeadInput runs the required-field checks. Only presence
// is checked here; email format is the input control's problem, not the
// pipeline's.
func ValidateSubmitLeadInput(input SubmitLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errors = append(errors, ValidationError{"name", "is required"})
	}
	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	}
	if strings.TrimSpace(input.FunnelID) == "" {
		errors = append(errors, ValidationError{"funnel_id", "is required"})
	}

	return errors
}

// ValidateTrackEventInput checks the event type and funnel id before
// anything touches the store.
func ValidateTrackEventInput(input TrackEventInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(string(input.EventType)) == "" {
		errors = append(errors, ValidationError{"event_type", "is required"})
	}
	if strings.TrimSpace(input.FunnelID) == "" {
		errors = append(errors, ValidationError{"funnel_id", "is required"})
	}

	return errors
}
