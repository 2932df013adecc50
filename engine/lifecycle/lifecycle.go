// Package lifecycle governs quote status transitions. Transition is a
// pure function from (quote, requested status, context) to a new quote
// value or an error; callers own persistence and write serialization.
package lifecycle

import (
	"errors"
	"fmt"
	"time"

	"github.com/openbay/quote-engine/engine/quote"
)

// Sentinel errors for transition failures.
var (
	ErrInvalidTransition     = errors.New("invalid transition")
	ErrTerminalState         = errors.New("quote is in a terminal state")
	ErrNotYetExpired         = errors.New("quote is still within its validity window")
	ErrPaymentMethodRequired = errors.New("payment method required")
	ErrReasonRequired        = errors.New("rejection reason required")
)

// TransitionError wraps a sentinel with the attempted transition.
type TransitionError struct {
	From    quote.QuoteStatus
	To      quote.QuoteStatus
	Wrapped error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition %s -> %s: %s", e.From, e.To, e.Wrapped)
}

func (e *TransitionError) Unwrap() error { return e.Wrapped }

// Context carries the external facts a transition may require.
type Context struct {
	PaymentMethod string `json:"payment_method,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// validNext is the transition table. Statuses absent as keys are terminal.
var validNext = map[quote.QuoteStatus][]quote.QuoteStatus{
	quote.StatusPending: {
		quote.StatusAccepted, quote.StatusRejected,
		quote.StatusExpired, quote.StatusCancelled,
	},
	quote.StatusAccepted: {
		quote.StatusDepositPaid, quote.StatusPaid, quote.StatusCancelled,
	},
	quote.StatusDepositPaid: {
		quote.StatusPaid, quote.StatusCancelled,
	},
}

// Terminal reports whether a status admits no further transitions.
func Terminal(s quote.QuoteStatus) bool {
	_, ok := validNext[s]
	return !ok
}

// ValidNext returns the statuses reachable from s.
func ValidNext(s quote.QuoteStatus) []quote.QuoteStatus {
	return validNext[s]
}

// Manager validates and applies quote status transitions.
type Manager struct {
	now func() time.Time // for testing
}

// NewManager creates a Manager.
func NewManager() *Manager {
	return &Manager{now: time.Now}
}

// CanTransition reports whether from -> to is in the transition table.
// It does not check time or context preconditions.
func (m *Manager) CanTransition(from, to quote.QuoteStatus) bool {
	for _, n := range validNext[from] {
		if n == to {
			return true
		}
	}
	return false
}

// Transition applies a status change and returns the updated quote as a
// new value, leaving the input untouched. Rules: terminal states admit
// nothing; expiry only once the validity window has passed; paid needs a
// payment method; rejected needs a reason.
func (m *Manager) Transition(q quote.Quote, to quote.QuoteStatus, tctx Context) (quote.Quote, error) {
	if Terminal(q.Status) {
		return quote.Quote{}, &TransitionError{From: q.Status, To: to, Wrapped: ErrTerminalState}
	}
	if !m.CanTransition(q.Status, to) {
		return quote.Quote{}, &TransitionError{From: q.Status, To: to, Wrapped: ErrInvalidTransition}
	}

	now := m.now()
	next := q

	switch to {
	case quote.StatusExpired:
		if !now.After(q.ValidUntil) {
			return quote.Quote{}, &TransitionError{From: q.Status, To: to, Wrapped: ErrNotYetExpired}
		}
	case quote.StatusAccepted:
		t := now
		next.AcceptedAt = &t
	case quote.StatusPaid:
		if tctx.PaymentMethod == "" {
			return quote.Quote{}, &TransitionError{From: q.Status, To: to, Wrapped: ErrPaymentMethodRequired}
		}
		t := now
		next.PaidAt = &t
		next.PaymentMethod = tctx.PaymentMethod
	case quote.StatusRejected:
		if tctx.Notes == "" {
			return quote.Quote{}, &TransitionError{From: q.Status, To: to, Wrapped: ErrReasonRequired}
		}
	}

	if tctx.Notes != "" {
		next.Notes = tctx.Notes
	}
	next.Status = to
	return next, nil
}
