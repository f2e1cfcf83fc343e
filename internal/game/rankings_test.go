package game

import (
	"context"
	"reflect"
	"testing"
)

func seedRankingUsers(t *testing.T, svc *Service) {
	t.Helper()
	ctx := context.Background()
	syncs := []ProgressInput{
		{UserID: "a", ClubName: "X", TotalAssets: ptr(10)},
		{UserID: "b", ClubName: "X", TotalAssets: ptr(5)},
		{UserID: "c", TotalAssets: ptr(7)},
	}
	for _, in := range syncs {
		if err := svc.SyncProgress(ctx, in); err != nil {
			t.Fatalf("seed %s: %v", in.UserID, err)
		}
	}
}

func TestClubRankings(t *testing.T) {
	svc := newTestService(t)
	seedRankingUsers(t, svc)

	got, err := svc.ClubRankings(context.Background())
	if err != nil {
		t.Fatalf("club rankings: %v", err)
	}
	want := []ClubRanking{
		{ClubName: "X", TotalAssets: 15},
		{ClubName: NoClub, TotalAssets: 7},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestUserRankings(t *testing.T) {
	svc := newTestService(t)
	seedRankingUsers(t, svc)

	got, err := svc.UserRankings(context.Background())
	if err != nil {
		t.Fatalf("user rankings: %v", err)
	}
	want := []UserRanking{
		{Username: "a", TotalAssets: 10},
		{Username: "c", TotalAssets: 7},
		{Username: "b", TotalAssets: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
}

func TestUserRankingsFallBackToMaxStage(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// No explicit assets: score defaults to maxStage.
	if err := svc.SyncProgress(ctx, ProgressInput{UserID: "a", MaxStage: ptr(4)}); err != nil {
		t.Fatalf("sync: %v", err)
	}
	got, err := svc.UserRankings(ctx)
	if err != nil {
		t.Fatalf("user rankings: %v", err)
	}
	if len(got) != 1 || got[0].TotalAssets != 4 {
		t.Fatalf("expected score 4 from maxStage, got %+v", got)
	}
}

func TestRankingsEmpty(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	clubs, err := svc.ClubRankings(ctx)
	if err != nil {
		t.Fatalf("club rankings: %v", err)
	}
	if len(clubs) != 0 {
		t.Fatalf("expected no club rankings, got %+v", clubs)
	}
	users, err := svc.UserRankings(ctx)
	if err != nil {
		t.Fatalf("user rankings: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected no user rankings, got %+v", users)
	}
}
