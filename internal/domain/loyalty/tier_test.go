//go:build unit

package loyalty_test

import (
	"testing"

	"washbook/internal/domain/loyalty"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func mustTier(t *testing.T, name string, minPoints int, maxPoints *int) *loyalty.Tier {
	t.Helper()
	tier, err := loyalty.NewTier(uuid.New(), name, minPoints, maxPoints, 5, "#C0C0C0", true)
	require.NoError(t, err)
	return tier
}

func standardLadder(t *testing.T) []*loyalty.Tier {
	t.Helper()
	return []*loyalty.Tier{
		mustTier(t, "Bronze", 0, intPtr(99)),
		mustTier(t, "Silver", 100, intPtr(499)),
		mustTier(t, "Gold", 500, nil),
	}
}

func TestNewTier(t *testing.T) {
	t.Run("max below min rejected", func(t *testing.T) {
		_, err := loyalty.NewTier(uuid.New(), "Broken", 100, intPtr(50), 5, "#FFFFFF", true)
		assert.ErrorIs(t, err, loyalty.ErrInvalidTierRange)
	})

	t.Run("non-hex color rejected", func(t *testing.T) {
		_, err := loyalty.NewTier(uuid.New(), "Bronze", 0, intPtr(99), 5, "bronze-ish", true)
		assert.ErrorIs(t, err, loyalty.ErrInvalidTierColor)
	})

	t.Run("open-ended tier allowed", func(t *testing.T) {
		_, err := loyalty.NewTier(uuid.New(), "Gold", 500, nil, 15, "#FFD700", true)
		assert.NoError(t, err)
	})
}

func TestResolveTier(t *testing.T) {
	ladder := standardLadder(t)

	cases := []struct {
		name         string
		points       int
		wantCurrent  string
		wantNext     string
		pointsToNext int
	}{
		{name: "floor of the ladder", points: 0, wantCurrent: "Bronze", wantNext: "Silver", pointsToNext: 100},
		{name: "top of bronze bracket", points: 99, wantCurrent: "Bronze", wantNext: "Silver", pointsToNext: 1},
		{name: "bottom of silver bracket", points: 100, wantCurrent: "Silver", wantNext: "Gold", pointsToNext: 400},
		{name: "inside the open-ended top tier", points: 1200, wantCurrent: "Gold", wantNext: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, next, toNext := loyalty.ResolveTier(ladder, tc.points)
			require.NotNil(t, current)
			assert.Equal(t, tc.wantCurrent, current.Name())
			if tc.wantNext == "" {
				assert.Nil(t, next)
			} else {
				require.NotNil(t, next)
				assert.Equal(t, tc.wantNext, next.Name())
				assert.Equal(t, tc.pointsToNext, toNext)
			}
		})
	}

	t.Run("inactive tiers are skipped", func(t *testing.T) {
		inactive, err := loyalty.NewTier(uuid.New(), "Secret", 0, intPtr(999999), 50, "#000000", false)
		require.NoError(t, err)

		current, _, _ := loyalty.ResolveTier(append(standardLadder(t), inactive), 50)
		require.NotNil(t, current)
		assert.Equal(t, "Bronze", current.Name())
	})

	t.Run("unordered input", func(t *testing.T) {
		ladder := standardLadder(t)
		shuffled := []*loyalty.Tier{ladder[2], ladder[0], ladder[1]}
		current, next, _ := loyalty.ResolveTier(shuffled, 150)
		require.NotNil(t, current)
		assert.Equal(t, "Silver", current.Name())
		require.NotNil(t, next)
		assert.Equal(t, "Gold", next.Name())
	})
}

func TestValidateTierLadder(t *testing.T) {
	cases := []struct {
		name  string
		build func(t *testing.T) []*loyalty.Tier
		errIs error
	}{
		{
			name:  "contiguous ladder",
			build: standardLadder,
		},
		{
			name:  "empty ladder",
			build: func(*testing.T) []*loyalty.Tier { return nil },
		},
		{
			name: "missing floor",
			build: func(t *testing.T) []*loyalty.Tier {
				return []*loyalty.Tier{mustTier(t, "Silver", 100, nil)}
			},
			errIs: loyalty.ErrNoFloorTier,
		},
		{
			name: "overlapping brackets",
			build: func(t *testing.T) []*loyalty.Tier {
				return []*loyalty.Tier{
					mustTier(t, "Bronze", 0, intPtr(120)),
					mustTier(t, "Silver", 100, nil),
				}
			},
			errIs: loyalty.ErrTierOverlap,
		},
		{
			name: "gap between brackets",
			build: func(t *testing.T) []*loyalty.Tier {
				return []*loyalty.Tier{
					mustTier(t, "Bronze", 0, intPtr(99)),
					mustTier(t, "Silver", 150, nil),
				}
			},
			errIs: loyalty.ErrTierGap,
		},
		{
			name: "open-ended tier below the top",
			build: func(t *testing.T) []*loyalty.Tier {
				return []*loyalty.Tier{
					mustTier(t, "Bronze", 0, nil),
					mustTier(t, "Silver", 100, nil),
				}
			},
			errIs: loyalty.ErrUnboundedTierChain,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := loyalty.ValidateTierLadder(tc.build(t))
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
