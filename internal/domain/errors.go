package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDealNotFound      = errors.New("deal not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrInvalidAddress    = errors.New("invalid funding address")
	ErrNonPositiveAmount = errors.New("funding amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient treasury funds")
	ErrInvalidAction     = errors.New("invalid decision action")
	ErrInvalidField      = errors.New("field cannot be updated")
	ErrNoPendingProposal = errors.New("no pending proposal for this deal")
	ErrAlreadyDecided    = errors.New("deal already decided")
	ErrPayoutInProgress  = fmt.Errorf("%w: payout in progress", ErrAlreadyDecided)
	ErrAlreadyAnnounced  = errors.New("deal already announced")
	ErrPaymentFailed     = errors.New("payment executor failed")
	ErrStoreUnavailable  = errors.New("deal store failed")
	ErrNotifyFailed      = errors.New("notification failed")
	ErrPartialFailure    = errors.New("payout sent but deal not updated")
)

// PartialFailureError means funds already moved; retrying the decision would pay twice.
type PartialFailureError struct {
	DealID int64
	TxHash string
	Step   string
	Err    error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("deal %d: payout %s sent, %s failed: %v", e.DealID, e.TxHash, e.Step, e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }

func (e *PartialFailureError) Is(target error) bool { return target == ErrPartialFailure }

type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindConflict   ErrorKind = "conflict"
	KindTransient  ErrorKind = "transient"
	KindPartial    ErrorKind = "partial"
	KindInternal   ErrorKind = "internal"
)

func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPartialFailure):
		return KindPartial
	case errors.Is(err, ErrDealNotFound), errors.Is(err, ErrMemberNotFound):
		return KindNotFound
	case errors.Is(err, ErrAlreadyDecided), errors.Is(err, ErrAlreadyAnnounced):
		return KindConflict
	case errors.Is(err, ErrInvalidAddress),
		errors.Is(err, ErrNonPositiveAmount),
		errors.Is(err, ErrInsufficientFunds),
		errors.Is(err, ErrInvalidAction),
		errors.Is(err, ErrInvalidField),
		errors.Is(err, ErrNoPendingProposal):
		return KindValidation
	case errors.Is(err, ErrPaymentFailed),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrNotifyFailed):
		return KindTransient
	}
	return KindInternal
}
