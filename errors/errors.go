package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("no schedule submitted for this session")
	ErrEmptySubmission   = errors.New("Please fill in both fields")
	ErrInvalidColor      = errors.New("invalid hex colour")
	ErrInvalidWeek       = errors.New("week must start on a Sunday")
	ErrUnsupportedFormat = errors.New("unsupported image format")

	ErrInitFailed = errors.New("initialization failed")

	// User errors

	ErrBadCommandUsage = errors.New("schedgrid: invalid invocation. Usage: schedgrid [-w] | schedgrid render [flags]")

	// Misc

	ErrInvalidInterfaceType = errors.New("an invalid interface type was passed as argument")
)

// ErrorWrapper records where an error came from alongside what went wrong.
type ErrorWrapper struct {
	Origin string
	Text   string
	Err    error
}

// Alias for func (ErrorWrapper).Error()
func (err ErrorWrapper) AsString() string {
	return err.Error()
}

func (err ErrorWrapper) Error() string {
	if err.Err == nil {
		return fmt.Sprintf("%v: %v", err.Origin, err.Text)
	}
	return fmt.Sprintf("%v: %v: %v", err.Origin, err.Text, err.Err)
}

// Unwrap exposes the cause so Is and As see through the wrapper.
func (err ErrorWrapper) Unwrap() error {
	return err.Err
}

// NewError returns an ErrorWrapper which contains information on which package and/or function
// the error originated, the error text/message, and the error itself
func NewError(origin string, text string, err error) ErrorWrapper {
	return ErrorWrapper{
		Origin: origin,
		Text:   text,
		Err:    err,
	}
}

//
// Reimplement errors module, so only this module needs to be imported to manage errors

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func New(text string) error {
	return errors.New(text)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}
