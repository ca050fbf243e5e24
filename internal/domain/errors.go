package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error classes. Every specific ledger error matches exactly one of these
// through errors.Is.
var (
	ErrNotFound             = errors.New("not found")
	ErrValidation           = errors.New("validation error")
	ErrStateConflict        = errors.New("state conflict")
	ErrIntegrityViolation   = errors.New("integrity violation")
	ErrConsistencyViolation = errors.New("consistency violation")
)

// classError is a sentinel that also matches its class.
type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string { return e.msg }

func (e *classError) Is(target error) bool { return target == e.class }

func newError(class error, msg string) error {
	return &classError{msg: msg, class: class}
}

// Validation errors
var (
	ErrInvalidLineAmounts       = newError(ErrValidation, "exactly one of debit or credit must be greater than zero")
	ErrInvalidRate              = newError(ErrValidation, "invalid fx rate")
	ErrInvalidPeriod            = newError(ErrValidation, "invalid period")
	ErrInvalidCurrency          = newError(ErrValidation, "invalid currency code")
	ErrInvalidAmount            = newError(ErrValidation, "amount must be positive")
	ErrInvalidAccountType       = newError(ErrValidation, "invalid account type")
	ErrInvalidMovementType      = newError(ErrValidation, "invalid capital movement type")
	ErrInvalidLineNumber        = newError(ErrValidation, "line number must be positive")
	ErrInvalidReference         = newError(ErrValidation, "journal reference is required")
	ErrJournalDateOutsidePeriod = newError(ErrValidation, "journal date is outside the period")
	ErrInactiveOrMissingAccount = newError(ErrValidation, "account is inactive or does not exist")
	ErrNoAccountingPeriodFound  = newError(ErrValidation, "no accounting period found for effective date")
	ErrInvalidAccountCode       = newError(ErrValidation, "account code is required")
	ErrInvalidAccountName       = newError(ErrValidation, "invalid account name")
	ErrAccountHierarchyCycle    = newError(ErrValidation, "account parent assignment would create a cycle")
	ErrInvalidDateRange         = newError(ErrValidation, "from date is after to date")
)

// State conflicts
var (
	ErrAlreadyPosted          = newError(ErrStateConflict, "journal already posted")
	ErrLockedPeriod           = newError(ErrStateConflict, "period is locked")
	ErrCannotModifyPosted     = newError(ErrStateConflict, "cannot modify a posted journal")
	ErrAlreadyLocked          = newError(ErrStateConflict, "period already locked")
	ErrCannotCreateLockedRate = newError(ErrStateConflict, "cannot create a locked fx rate in a locked period")
	ErrJournalNotPosted       = newError(ErrStateConflict, "journal is not posted")
)

// Integrity violations
var (
	ErrDuplicateReference   = newError(ErrIntegrityViolation, "journal reference already used in period")
	ErrDuplicateFxRate      = newError(ErrIntegrityViolation, "fx rate already exists for currency pair and date")
	ErrNonSequentialPeriod  = newError(ErrIntegrityViolation, "period must directly follow the latest period")
	ErrDuplicatePeriod      = newError(ErrIntegrityViolation, "period already exists")
	ErrDuplicateLineNumber  = newError(ErrIntegrityViolation, "line number already used in journal")
	ErrDuplicateAccountCode = newError(ErrIntegrityViolation, "account code already exists")
)

// Consistency violations, raised by posting and period close only.
var (
	ErrUnbalanced            = newError(ErrConsistencyViolation, "journal debits and credits do not balance")
	ErrUnbalancedBase        = newError(ErrConsistencyViolation, "journal base-currency debits and credits do not balance")
	ErrUnbalancedLine        = newError(ErrConsistencyViolation, "journal line must have exactly one non-zero side")
	ErrMissingBaseAmount     = newError(ErrConsistencyViolation, "journal line is missing its base amount")
	ErrMissingLines          = newError(ErrConsistencyViolation, "journal has no lines")
	ErrDraftJournalsRemain   = newError(ErrConsistencyViolation, "draft journals remain in period")
	ErrUnlockedFxRatesRemain = newError(ErrConsistencyViolation, "unlocked fx rates remain in period")
)

// Resource names used in NotFoundError.
const (
	ResourceAccount  = "account"
	ResourcePeriod   = "period"
	ResourceFxRate   = "fx_rate"
	ResourceJournal  = "journal"
	ResourceMovement = "capital_movement"
)

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Resource string
	ID       string
}

// NewNotFound returns a NotFoundError for resource and id.
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// IsNotFound reports whether err is a NotFoundError for resource.
func IsNotFound(err error, resource string) bool {
	var nf *NotFoundError
	return errors.As(err, &nf) && nf.Resource == resource
}

// LineError ties a line-level consistency error to its line number.
type LineError struct {
	LineNumber int
	Err        error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.LineNumber, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// UnbalancedError carries the totals that failed to match.
type UnbalancedError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Err         error
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("%v: debit %s, credit %s", e.Err, e.TotalDebit, e.TotalCredit)
}

func (e *UnbalancedError) Unwrap() error { return e.Err }

// RemainingError reports how many blocking records were found.
type RemainingError struct {
	Count int64
	Err   error
}

func (e *RemainingError) Error() string {
	return fmt.Sprintf("%v: %d", e.Err, e.Count)
}

func (e *RemainingError) Unwrap() error { return e.Err }
