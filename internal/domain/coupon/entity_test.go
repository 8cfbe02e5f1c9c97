//go:build unit

package coupon_test

import (
	"testing"
	"time"

	"washbook/internal/domain/coupon"
	"washbook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoupon(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		c, err := builder.NewCouponBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, c)

		assert.Equal(t, "SAVE10", c.Code().String())
		assert.Equal(t, coupon.KindPercentage, c.Kind())
		assert.Equal(t, int64(10), c.DiscountValue())
		assert.Zero(t, c.UsedCount())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*builder.CouponBuilder)
			errIs  error
		}{
			{
				name:   "zero discount value",
				mutate: func(b *builder.CouponBuilder) { b.DiscountValue = 0 },
				errIs:  coupon.ErrInvalidDiscountValue,
			},
			{
				name:   "negative discount value",
				mutate: func(b *builder.CouponBuilder) { b.DiscountValue = -5 },
				errIs:  coupon.ErrInvalidDiscountValue,
			},
			{
				name:   "percentage above 100",
				mutate: func(b *builder.CouponBuilder) { b.DiscountValue = 101 },
				errIs:  coupon.ErrInvalidDiscountValue,
			},
			{
				name: "fixed discount above 100 is fine",
				mutate: func(b *builder.CouponBuilder) {
					b.Kind = "fixed"
					b.DiscountValue = 1500
				},
			},
			{
				name: "valid_until before valid_from",
				mutate: func(b *builder.CouponBuilder) {
					b.ValidFrom = time.Now()
					b.ValidUntil = time.Now().Add(-time.Hour)
				},
				errIs: coupon.ErrInvalidValidityWindow,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := builder.NewCouponBuilder()
				tc.mutate(b)
				_, err := b.BuildDomain()
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestCoupon_DiscountFor(t *testing.T) {
	now := time.Now()

	t.Run("percentage with cap and minimum", func(t *testing.T) {
		// 10% off, min order 5000, capped at 2000.
		c := builder.NewCouponBuilder().
			WithMinOrder(5000).
			WithMaxDiscount(2000).
			BuildReconstructed()

		cases := []struct {
			name       string
			orderCents int64
			want       int64
			errIs      error
		}{
			{name: "plain percentage", orderCents: 10_000, want: 1000},
			{name: "clamped to max discount", orderCents: 30_000, want: 2000},
			{name: "exactly at minimum order", orderCents: 5000, want: 500},
			{name: "below minimum order", orderCents: 4000, errIs: coupon.ErrBelowMinOrder},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := c.DiscountFor(tc.orderCents, now)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, tc.want, got)
			})
		}
	})

	t.Run("fixed discount may exceed order total", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		b.Kind = "fixed"
		b.DiscountValue = 5000
		c := b.BuildReconstructed()

		got, err := c.DiscountFor(3000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), got)
	})

	t.Run("inactive coupon", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		b.IsActive = false
		c := b.BuildReconstructed()

		_, err := c.DiscountFor(10_000, now)
		assert.ErrorIs(t, err, coupon.ErrCouponNotActive)
	})

	t.Run("outside validity window", func(t *testing.T) {
		b := builder.NewCouponBuilder()
		b.ValidFrom = now.Add(-48 * time.Hour)
		b.ValidUntil = now.Add(-24 * time.Hour)
		c := b.BuildReconstructed()

		_, err := c.DiscountFor(10_000, now)
		assert.ErrorIs(t, err, coupon.ErrCouponNotActive)
	})

	t.Run("exhausted usage limit", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithUsageLimit(3, 3).BuildReconstructed()

		_, err := c.DiscountFor(10_000, now)
		assert.ErrorIs(t, err, coupon.ErrCouponNotActive)
	})

	t.Run("one use left", func(t *testing.T) {
		c := builder.NewCouponBuilder().WithUsageLimit(3, 2).BuildReconstructed()

		got, err := c.DiscountFor(10_000, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), got)
	})
}

func TestNewCode(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		errIs error
	}{
		{name: "normalizes case and whitespace", in: "  save10  ", want: "SAVE10"},
		{name: "too short", in: "AB", errIs: coupon.ErrInvalidCode},
		{name: "illegal characters", in: "SAVE-10", errIs: coupon.ErrInvalidCode},
		{name: "empty", in: "", errIs: coupon.ErrInvalidCode},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, err := coupon.NewCode(tc.in)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, code.String())
		})
	}
}
