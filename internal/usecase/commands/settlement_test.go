//go:build unit

package commands_test

import (
	"testing"

	"washbook/internal/pkg/config"
	"washbook/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
)

func TestNewAccrualPolicy(t *testing.T) {
	cases := []struct {
		name            string
		cfg             config.LoyaltyConfig
		finalPriceCents int64
		want            int
	}{
		{
			name:            "flat per-service grant",
			cfg:             config.LoyaltyConfig{PointsPerService: 10},
			finalPriceCents: 8000,
			want:            10,
		},
		{
			name:            "spend-based grant",
			cfg:             config.LoyaltyConfig{PointsPerCurrencyUnit: 1},
			finalPriceCents: 8000,
			want:            80,
		},
		{
			name:            "flat plus spend",
			cfg:             config.LoyaltyConfig{PointsPerService: 10, PointsPerCurrencyUnit: 1},
			finalPriceCents: 8550,
			want:            95,
		},
		{
			name:            "spend truncates partial currency units",
			cfg:             config.LoyaltyConfig{PointsPerCurrencyUnit: 1},
			finalPriceCents: 99,
			want:            0,
		},
		{
			name:            "fully discounted appointment still earns the flat grant",
			cfg:             config.LoyaltyConfig{PointsPerService: 10, PointsPerCurrencyUnit: 1},
			finalPriceCents: 0,
			want:            10,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			policy := commands.NewAccrualPolicy(tc.cfg)
			assert.Equal(t, tc.want, policy(tc.finalPriceCents))
		})
	}
}
