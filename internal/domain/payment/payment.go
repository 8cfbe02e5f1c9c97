package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errors.New("invalid payment status")
	ErrInvalidMethod     = errors.New("invalid payment method")
	ErrIllegalTransition = errors.New("illegal payment status transition")
	ErrNegativeAmount    = errors.New("payment amount cannot be negative")
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled, StatusRefunded:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCompleted, StatusFailed, StatusCancelled},
	StatusProcessing: {StatusCompleted, StatusFailed, StatusCancelled},
	StatusCompleted:  {StatusRefunded},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

type Method string

const (
	MethodPix          Method = "pix"
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

func NewMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodPix, MethodCreditCard, MethodDebitCard, MethodCash, MethodBankTransfer:
		return Method(s), nil
	default:
		return "", ErrInvalidMethod
	}
}

func (m Method) String() string { return string(m) }

// Payment is one-to-one with an appointment.
type Payment struct {
	id            uuid.UUID
	appointmentID uuid.UUID
	amountCents   int64
	method        Method
	status        Status
	transactionID string
	paidAt        *time.Time
}

func NewPayment(appointmentID uuid.UUID, amountCents int64, method Method) (*Payment, error) {
	if amountCents < 0 {
		return nil, ErrNegativeAmount
	}
	return &Payment{
		id:            uuid.New(),
		appointmentID: appointmentID,
		amountCents:   amountCents,
		method:        method,
		status:        StatusPending,
	}, nil
}

func Reconstruct(id, appointmentID uuid.UUID, amountCents int64, method Method, status Status, transactionID string, paidAt *time.Time) *Payment {
	return &Payment{
		id:            id,
		appointmentID: appointmentID,
		amountCents:   amountCents,
		method:        method,
		status:        status,
		transactionID: transactionID,
		paidAt:        paidAt,
	}
}

func (p *Payment) Transition(next Status, now time.Time) error {
	if !p.status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	p.status = next
	if next == StatusCompleted {
		p.paidAt = &now
	}
	return nil
}

func (p *Payment) ID() uuid.UUID            { return p.id }
func (p *Payment) AppointmentID() uuid.UUID { return p.appointmentID }
func (p *Payment) AmountCents() int64       { return p.amountCents }
func (p *Payment) Method() Method           { return p.method }
func (p *Payment) Status() Status           { return p.status }
func (p *Payment) TransactionID() string    { return p.transactionID }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
