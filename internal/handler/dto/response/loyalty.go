package response

import (
	"washbook/internal/usecase/commands"
)

type AddPointsResponse struct {
	TotalPoints     int `json:"total_points"`
	AvailablePoints int `json:"available_points"`
}

func FromAddPointsResult(r *commands.AddPointsResult) *AddPointsResponse {
	return &AddPointsResponse{
		TotalPoints:     r.TotalPoints,
		AvailablePoints: r.AvailablePoints,
	}
}

type RedeemRewardResponse struct {
	RemainingPoints int `json:"remaining_points"`
}

func FromRedeemRewardResult(r *commands.RedeemRewardResult) *RedeemRewardResponse {
	return &RedeemRewardResponse{RemainingPoints: r.RemainingPoints}
}
