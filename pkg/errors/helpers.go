package errors

import "errors"

// IsAborted reports whether the operator stopped the installer.
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	if err == nil {
		return false
	}

	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsPlatform checks if an error rejects the host platform.
func IsPlatform(err error) bool {
	if err == nil {
		return false
	}

	var platformErr *PlatformError
	return errors.As(err, &platformErr)
}

// GetCode returns the code of the outermost typed error in the chain.
// Operator aborts report CodeAborted and signal cancellation CodeInterrupted.
func GetCode(err error) string {
	if IsAborted(err) {
		return CodeAborted
	}
	if errors.Is(err, ErrInterrupted) {
		return CodeInterrupted
	}
	for err != nil {
		if e, ok := err.(Error); ok {
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// HasCode reports whether err carries code anywhere in its chain.
func HasCode(err error, code string) bool {
	for err != nil {
		if e, ok := err.(Error); ok && e.Code() == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// StepOf returns the failing step name, if any.
func StepOf(err error) string {
	var se *StepError
	if errors.As(err, &se) {
		return se.Step
	}
	return ""
}
