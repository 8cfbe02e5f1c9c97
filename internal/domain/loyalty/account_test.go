//go:build unit

package loyalty_test

import (
	"testing"

	"washbook/internal/domain/loyalty"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Earn(t *testing.T) {
	acc := loyalty.NewAccount(uuid.New())

	require.NoError(t, acc.Earn(150))
	assert.Equal(t, 150, acc.Points())

	assert.ErrorIs(t, acc.Earn(0), loyalty.ErrNonPositivePoints)
	assert.ErrorIs(t, acc.Earn(-10), loyalty.ErrNonPositivePoints)
	assert.Equal(t, 150, acc.Points())
}

func TestAccount_Redeem(t *testing.T) {
	tests := []struct {
		name       string
		balance    int
		amount     int
		wantErr    error
		wantPoints int
	}{
		{name: "partial redeem", balance: 150, amount: 100, wantPoints: 50},
		{name: "exact balance", balance: 100, amount: 100, wantPoints: 0},
		{name: "over balance rejected", balance: 50, amount: 100, wantErr: loyalty.ErrInsufficientPoints, wantPoints: 50},
		{name: "zero balance rejected", balance: 0, amount: 1, wantErr: loyalty.ErrInsufficientPoints, wantPoints: 0},
		{name: "non-positive amount rejected", balance: 100, amount: 0, wantErr: loyalty.ErrNonPositivePoints, wantPoints: 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			acc := loyalty.ReconstructAccount(uuid.New(), uuid.New(), tc.balance, 0, 0, 0, nil)

			err := acc.Redeem(tc.amount)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.wantPoints, acc.Points())
		})
	}
}

func TestTransaction_SignedPoints(t *testing.T) {
	userID := uuid.New()

	earn, err := loyalty.NewEarnTransaction(userID, nil, 10, "service completed")
	require.NoError(t, err)
	assert.Equal(t, 10, earn.Points())
	assert.Equal(t, loyalty.KindEarned, earn.Kind())

	rewardID := uuid.New()
	redeem, err := loyalty.NewRedeemTransaction(userID, nil, &rewardID, 100, "reward redemption")
	require.NoError(t, err)
	assert.Equal(t, -100, redeem.Points())
	assert.Equal(t, loyalty.KindRedeemed, redeem.Kind())

	_, err = loyalty.NewEarnTransaction(userID, nil, 0, "nothing")
	assert.ErrorIs(t, err, loyalty.ErrNonPositivePoints)
}
