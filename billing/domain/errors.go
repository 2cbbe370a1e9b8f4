package domain

import (
	"context"
	"errors"

	"encore.dev/beta/errs"
)

// Sentinels for the billing error taxonomy. They are always returned wrapped
// with an errs code so API callers get the right status and internal callers
// can still match with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrEventNotFound    = errors.New("billable event not found")
	ErrInvoiceNotFound  = errors.New("invoice not found")
	ErrAlreadyInvoiced  = errors.New("billable event already invoiced")
	ErrInvalidState     = errors.New("invalid state")
	ErrStoreUnavailable = errors.New("billing store unavailable")
)

func Validation(msg string) error {
	return errs.WrapCode(ErrValidation, errs.InvalidArgument, msg)
}

func EventNotFound() error {
	return errs.WrapCode(ErrEventNotFound, errs.NotFound, "billable event not found")
}

func InvoiceNotFound() error {
	return errs.WrapCode(ErrInvoiceNotFound, errs.NotFound, "invoice not found")
}

func AlreadyInvoiced() error {
	return errs.WrapCode(ErrAlreadyInvoiced, errs.AlreadyExists, "billable event already invoiced")
}

func InvalidState(msg string) error {
	return errs.WrapCode(ErrInvalidState, errs.FailedPrecondition, msg)
}

// StoreUnavailable marks a persistence failure as transient. The cause is
// kept for logs but never shown to API callers.
func StoreUnavailable(op string, cause error) error {
	return errs.WrapCode(errors.Join(ErrStoreUnavailable, cause), errs.Unavailable, op)
}

func IsAlreadyInvoiced(err error) bool {
	return errors.Is(err, ErrAlreadyInvoiced)
}

// IsTransient reports whether an operation that failed with err may succeed
// when retried.
func IsTransient(err error) bool {
	if errors.Is(err, ErrStoreUnavailable) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch errs.Code(err) {
	case errs.Unavailable, errs.DeadlineExceeded, errs.Aborted:
		return true
	}
	return false
}
