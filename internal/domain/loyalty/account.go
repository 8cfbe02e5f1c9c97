package loyalty

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNonPositivePoints  = errors.New("points amount must be positive")
	ErrInsufficientPoints = errors.New("insufficient points balance")
)

// Account holds a customer's spendable points plus cumulative counters.
// The balance invariant (never negative) is enforced both here and by the
// conditional UPDATE the repository issues, so concurrent redemptions cannot
// race past a stale read.
type Account struct {
	id                 uuid.UUID
	userID             uuid.UUID
	points             int
	totalServices      int
	freeServicesEarned int
	freeServicesUsed   int
	lastServiceAt      *time.Time
}

func NewAccount(userID uuid.UUID) *Account {
	return &Account{
		id:     uuid.New(),
		userID: userID,
	}
}

func ReconstructAccount(id, userID uuid.UUID, points, totalServices, freeEarned, freeUsed int, lastServiceAt *time.Time) *Account {
	return &Account{
		id:                 id,
		userID:             userID,
		points:             points,
		totalServices:      totalServices,
		freeServicesEarned: freeEarned,
		freeServicesUsed:   freeUsed,
		lastServiceAt:      lastServiceAt,
	}
}

func (a *Account) Earn(amount int) error {
	if amount <= 0 {
		return ErrNonPositivePoints
	}
	a.points += amount
	return nil
}

func (a *Account) Redeem(amount int) error {
	if amount <= 0 {
		return ErrNonPositivePoints
	}
	if amount > a.points {
		return ErrInsufficientPoints
	}
	a.points -= amount
	return nil
}

func (a *Account) RecordService(at time.Time) {
	a.totalServices++
	a.lastServiceAt = &at
}

func (a *Account) ID() uuid.UUID             { return a.id }
func (a *Account) UserID() uuid.UUID         { return a.userID }
func (a *Account) Points() int               { return a.points }
func (a *Account) TotalServices() int        { return a.totalServices }
func (a *Account) FreeServicesEarned() int   { return a.freeServicesEarned }
func (a *Account) FreeServicesUsed() int     { return a.freeServicesUsed }
func (a *Account) LastServiceAt() *time.Time { return a.lastServiceAt }

type TransactionKind string

const (
	KindEarned   TransactionKind = "earned"
	KindRedeemed TransactionKind = "redeemed"
)

func (k TransactionKind) String() string { return string(k) }

// Transaction is one immutable ledger entry. Points are signed: positive for
// earned, negative for redeemed. The sum over a user's transactions must
// reconcile with the account balance.
type Transaction struct {
	id            uuid.UUID
	userID        uuid.UUID
	appointmentID *uuid.UUID
	rewardID      *uuid.UUID
	points        int
	kind          TransactionKind
	reason        string
}

func NewEarnTransaction(userID uuid.UUID, appointmentID *uuid.UUID, amount int, reason string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrNonPositivePoints
	}
	return &Transaction{
		id:            uuid.New(),
		userID:        userID,
		appointmentID: appointmentID,
		points:        amount,
		kind:          KindEarned,
		reason:        reason,
	}, nil
}

func NewRedeemTransaction(userID uuid.UUID, appointmentID, rewardID *uuid.UUID, amount int, reason string) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrNonPositivePoints
	}
	return &Transaction{
		id:            uuid.New(),
		userID:        userID,
		appointmentID: appointmentID,
		rewardID:      rewardID,
		points:        -amount,
		kind:          KindRedeemed,
		reason:        reason,
	}, nil
}

func (t *Transaction) ID() uuid.UUID             { return t.id }
func (t *Transaction) UserID() uuid.UUID         { return t.userID }
func (t *Transaction) AppointmentID() *uuid.UUID { return t.appointmentID }
func (t *Transaction) RewardID() *uuid.UUID      { return t.rewardID }
func (t *Transaction) Points() int               { return t.points }
func (t *Transaction) Kind() TransactionKind     { return t.kind }
func (t *Transaction) Reason() string            { return t.reason }
