package token

import (
	"errors"
	"fmt"
)

// Run-level error taxonomy. Infra wraps with these so callers classify
// with errors.Is.
var (
	ErrCredential          = errors.New("token: credential error")
	ErrNetwork             = errors.New("token: network error")
	ErrConfirmationTimeout = errors.New("token: confirmation timeout")
	ErrInvalid             = errors.New("token: invalid")
)

func IsCredential(err error) bool          { return errors.Is(err, ErrCredential) }
func IsNetwork(err error) bool             { return errors.Is(err, ErrNetwork) }
func IsConfirmationTimeout(err error) bool { return errors.Is(err, ErrConfirmationTimeout) }
func IsInvalid(err error) bool             { return errors.Is(err, ErrInvalid) }

func WrapCredential(err error, msg string) error { return wrap(ErrCredential, err, msg) }
func WrapNetwork(err error, msg string) error    { return wrap(ErrNetwork, err, msg) }
func WrapInvalid(err error, msg string) error    { return wrap(ErrInvalid, err, msg) }

func wrap(kind, err error, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %s", kind, msg)
	}
	return fmt.Errorf("%w: %s: %w", kind, msg, err)
}

// ConfirmationTimeoutError is returned when a submitted transaction was not
// confirmed before its blockhash expired. The signature is kept so the
// operator can look it up.
type ConfirmationTimeoutError struct {
	Signature            string
	LastValidBlockHeight uint64
	BlockHeight          uint64
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("%s: signature=%s blockHeight=%d lastValidBlockHeight=%d",
		ErrConfirmationTimeout.Error(), e.Signature, e.BlockHeight, e.LastValidBlockHeight)
}

func (e *ConfirmationTimeoutError) Unwrap() error { return ErrConfirmationTimeout }
