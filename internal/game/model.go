package game

import (
	"errors"
	"strings"
)

// Error texts are part of the API contract; handlers return them verbatim.
var (
	ErrMissingFields  = errors.New("Missing required fields")
	ErrUserIDRequired = errors.New("userId is required")
	ErrTradeNotFound  = errors.New("Not found")
)

// NoClub is the rankings group for users without a club.
const NoClub = "NoClub"

// TradeInput carries the fields of a trade creation request. All five are
// required; zero values count as missing.
type TradeInput struct {
	Company  string  `json:"company"`
	Leverage float64 `json:"leverage"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	User     string  `json:"user"`
}

func (in TradeInput) validate() error {
	if strings.TrimSpace(in.Company) == "" ||
		in.Leverage == 0 ||
		strings.TrimSpace(in.Type) == "" ||
		in.Quantity == 0 ||
		strings.TrimSpace(in.User) == "" {
		return ErrMissingFields
	}
	return nil
}

// ProgressInput carries one progress sync. Nil pointers mean the field was
// not sent and the stored value must be kept.
type ProgressInput struct {
	UserID       string   `json:"userId"`
	CurrentStage *float64 `json:"currentStage"`
	MaxStage     *float64 `json:"maxStage"`
	Attempts     *float64 `json:"attempts"`
	ClubName     string   `json:"clubName"`
	TotalAssets  *float64 `json:"totalAssets"`
}

type ClubRanking struct {
	ClubName    string  `json:"clubName"`
	TotalAssets float64 `json:"totalAssets"`
}

type UserRanking struct {
	Username    string  `json:"username"`
	TotalAssets float64 `json:"totalAssets"`
}
