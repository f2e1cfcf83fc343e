package game

import (
	"context"
	"sort"

	"swordgame/internal/db"
)

// ClubRankings sums user scores per club, substituting NoClub for users
// without one. Groups keep first-seen order, so equal totals tie-break by
// which club appeared first in the users collection.
func (s *Service) ClubRankings(ctx context.Context) ([]ClubRanking, error) {
	var rankings []ClubRanking
	err := s.store.View(func(doc *db.Document) error {
		totals := map[string]float64{}
		var order []string
		for _, u := range doc.Users {
			club := NoClub
			if u.ClubName != nil && *u.ClubName != "" {
				club = *u.ClubName
			}
			if _, seen := totals[club]; !seen {
				order = append(order, club)
			}
			totals[club] += u.Score()
		}
		rankings = make([]ClubRanking, 0, len(order))
		for _, club := range order {
			rankings = append(rankings, ClubRanking{ClubName: club, TotalAssets: totals[club]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalAssets > rankings[j].TotalAssets
	})
	return rankings, nil
}

// UserRankings lists every user by descending score; ties keep the
// stored order.
func (s *Service) UserRankings(ctx context.Context) ([]UserRanking, error) {
	var rankings []UserRanking
	err := s.store.View(func(doc *db.Document) error {
		rankings = make([]UserRanking, 0, len(doc.Users))
		for _, u := range doc.Users {
			rankings = append(rankings, UserRanking{Username: u.ID, TotalAssets: u.Score()})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].TotalAssets > rankings[j].TotalAssets
	})
	return rankings, nil
}
