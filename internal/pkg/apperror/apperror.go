package apperror

// AppError is a custom error type that carries an HTTP status code, a stable
// machine-readable reason code and a user-facing message.
type AppError struct {
	Status  int    // HTTP status code (e.g., 400, 404)
	Reason  string // Stable reason code (e.g., "slot_conflict"), safe for clients to switch on
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, reason code and message.
func New(status int, reason, message string) *AppError {
	return &AppError{
		Status:  status,
		Reason:  reason,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, reason, message string) *AppError {
	return &AppError{
		Status:  status,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}
