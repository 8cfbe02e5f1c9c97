package coupon

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode           = errors.New("invalid coupon code format")
	ErrInvalidKind           = errors.New("invalid coupon type")
	ErrInvalidDiscountValue  = errors.New("invalid discount value")
	ErrInvalidValidityWindow = errors.New("valid_until precedes valid_from")
	ErrCouponNotActive       = errors.New("coupon is inactive, expired or exhausted")
	ErrBelowMinOrder         = errors.New("order value below coupon minimum")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,50}$`)

type Code string

func NewCode(s string) (Code, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if !codeRegex.MatchString(s) {
		return "", ErrInvalidCode
	}
	return Code(s), nil
}

func (c Code) String() string { return string(c) }

type Kind string

const (
	// KindPercentage discounts discountValue percent of the order.
	KindPercentage Kind = "percentage"
	// KindFixed discounts discountValue cents outright.
	KindFixed Kind = "fixed"
)

func NewKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPercentage, KindFixed:
		return Kind(s), nil
	default:
		return "", ErrInvalidKind
	}
}

func (k Kind) String() string { return string(k) }
