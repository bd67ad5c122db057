package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// LeaderboardEntryDTO is one row of the standings: a user's best scores summed
// across tests.
type LeaderboardEntryDTO struct {
	Rank       int    `json:"rank"`
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
	TestsTaken int    `json:"tests_taken"`
}

type LeaderboardResponseDTO struct {
	Entries     []LeaderboardEntryDTO `json:"entries"`
	GeneratedAt time.Time             `json:"generated_at"`
}
