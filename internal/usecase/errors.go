package usecase

// DomainError is a business-rule rejection the caller can show to the
// end user (missing fields, unknown event type).
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// TechnicalError is an infrastructure failure. The message is a generic
// retry-eligible string; the underlying cause stays in the logs.
type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
