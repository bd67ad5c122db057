package service

import (
	"testing"

	"github.com/hntruong/quizdeck/internal/repository"
)

func TestLeaderboardService_GetStandings(t *testing.T) {
	repo := &fakeLeaderboardRepo{rows: []repository.LeaderboardRow{
		{Username: "alice", TotalScore: 250, TestsTaken: 3},
		{Username: "bob", TotalScore: 180, TestsTaken: 2},
		{Username: "carol", TotalScore: 180, TestsTaken: 1},
	}}
	svc := NewLeaderboardService(repo)

	resp, err := svc.GetStandings(10)
	if err != nil {
		t.Fatalf("GetStandings() error: %v", err)
	}
	if len(resp.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(resp.Entries))
	}
	for i, entry := range resp.Entries {
		if entry.Rank != i+1 {
			t.Errorf("entry %d rank = %d, want %d", i, entry.Rank, i+1)
		}
	}
	if resp.Entries[0].Username != "alice" || resp.Entries[0].TotalScore != 250 {
		t.Errorf("top entry = %+v, want alice with 250", resp.Entries[0])
	}
}

func TestLeaderboardService_GetStandingsClampsLimit(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	svc := NewLeaderboardService(repo)

	cases := []struct {
		limit int
		want  int
	}{
		{limit: 0, want: defaultLeaderboardSize},
		{limit: -5, want: defaultLeaderboardSize},
		{limit: 10, want: 10},
		{limit: 500, want: defaultLeaderboardSize},
	}
	for _, tc := range cases {
		if _, err := svc.GetStandings(tc.limit); err != nil {
			t.Fatalf("GetStandings(%d) error: %v", tc.limit, err)
		}
		if repo.gotLimit != tc.want {
			t.Errorf("GetStandings(%d) queried limit %d, want %d", tc.limit, repo.gotLimit, tc.want)
		}
	}
}
