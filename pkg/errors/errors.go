package errors

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Common sentinel errors for quick checks
var (
	// ErrAborted is returned when the operator types "exit" or declines a
	// destructive step. It terminates the installer with exit code 0.
	ErrAborted = errors.New("aborted by operator")

	// ErrInputClosed is returned when stdin reaches EOF while a prompt waits.
	ErrInputClosed = errors.New("input closed")

	// ErrInterrupted is returned when a signal cancels the run while a prompt
	// waits for input.
	ErrInterrupted = errors.New("interrupted")
)

// Error is the base interface for all custom errors in the installer.
type Error interface {
	error
	// Code returns the error code
	Code() string
	// Message returns the human-readable error message
	Message() string
	// Unwrap returns the underlying cause
	Unwrap() error
}

// BaseError provides a foundation for all typed errors.
type BaseError struct {
	code    string
	message string
	cause   error
	stack   []uintptr
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Code returns the error code.
func (e *BaseError) Code() string {
	return e.code
}

// Message returns the error message.
func (e *BaseError) Message() string {
	return e.message
}

// Unwrap returns the underlying cause.
func (e *BaseError) Unwrap() error {
	return e.cause
}

// Stack returns the captured stack trace.
func (e *BaseError) Stack() []uintptr {
	return e.stack
}

func captureStack(skip int) []uintptr {
	const maxDepth = 32
	stack := make([]uintptr, maxDepth)
	n := runtime.Callers(skip+2, stack)
	return stack[:n]
}

// StackTrace returns a formatted stack trace string.
func (e *BaseError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}

	var buf strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			fmt.Fprintf(&buf, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return buf.String()
}

// ValidationError represents an invalid flag, config value or answer.
type ValidationError struct {
	*BaseError
	Field string
	Value interface{}
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		BaseError: &BaseError{
			code:    CodeValidation,
			message: message,
			stack:   captureStack(1),
		},
		Field: field,
		Value: value,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.message)
	}
	return fmt.Sprintf("validation error: %s", e.message)
}

// PlatformError is returned when no release exists for the host.
type PlatformError struct {
	*BaseError
	OS   string
	Arch string
}

// NewUnsupportedArchError rejects a raw machine architecture.
func NewUnsupportedArchError(arch string) *PlatformError {
	return &PlatformError{
		BaseError: &BaseError{
			code:    CodeUnsupportedPlatform,
			message: fmt.Sprintf("unsupported architecture %s", arch),
			stack:   captureStack(1),
		},
		Arch: arch,
	}
}

// NewMissingURLError reports a URL table without an entry for os/arch.
func NewMissingURLError(os, arch string) *PlatformError {
	return &PlatformError{
		BaseError: &BaseError{
			code:    CodeUnsupportedPlatform,
			message: fmt.Sprintf("binary download URL not available for %s/%s", os, arch),
			stack:   captureStack(1),
		},
		OS:   os,
		Arch: arch,
	}
}

// CommandError represents a failed external command.
type CommandError struct {
	*BaseError
	Command string
}

// NewCommandError creates a command error carrying the given code.
func NewCommandError(code, message, command string, cause error) *CommandError {
	if code == "" {
		code = CodeCommandFailed
	}
	return &CommandError{
		BaseError: &BaseError{
			code:    code,
			message: message,
			cause:   cause,
			stack:   captureStack(1),
		},
		Command: command,
	}
}

// StepError names the workflow step that failed.
type StepError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// InStep attaches the step name to err. Aborts pass through untouched.
func InStep(step string, err error) error {
	if err == nil || errors.Is(err, ErrAborted) {
		return err
	}
	var se *StepError
	if errors.As(err, &se) {
		return err
	}
	return &StepError{Step: step, Err: err}
}

// Wrap wraps an error with additional context.
// If the error is already one of our custom types, it preserves the code.
// Otherwise the result carries CodeInternal.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	code := CodeInternal
	if c := GetCode(err); c != "" {
		code = c
	}
	return &BaseError{
		code:    code,
		message: message,
		cause:   err,
		stack:   captureStack(1),
	}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// New creates a new error with a code and a message.
func New(code, message string) error {
	return &BaseError{
		code:    code,
		message: message,
		stack:   captureStack(1),
	}
}

// WrapCode wraps err under an explicit code.
func WrapCode(err error, code, message string) error {
	if err == nil {
		return nil
	}
	return &BaseError{
		code:    code,
		message: message,
		cause:   err,
		stack:   captureStack(1),
	}
}
