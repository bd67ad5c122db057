package service

import (
	"fmt"
	"time"

	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/rs/zerolog/log"
)

const defaultLeaderboardSize = 50

type LeaderboardService interface {
	GetStandings(limit int) (*dto.LeaderboardResponseDTO, error)
}

type leaderboardService struct {
	leaderboardRepo repository.LeaderboardRepository
}

func NewLeaderboardService(leaderboardRepo repository.LeaderboardRepository) LeaderboardService {
	return &leaderboardService{leaderboardRepo: leaderboardRepo}
}

// GetStandings ranks users by the sum of their best score per test. Ties share
// the order the database returned; ranks stay sequential.
func (s *leaderboardService) GetStandings(limit int) (*dto.LeaderboardResponseDTO, error) {
	if limit <= 0 || limit > defaultLeaderboardSize {
		limit = defaultLeaderboardSize
	}

	rows, err := s.leaderboardRepo.TopStandings(limit)
	if err != nil {
		log.Error().Err(err).Msg("GetStandings: repository error")
		return nil, fmt.Errorf("error fetching leaderboard: %w", err)
	}

	resp := dto.LeaderboardResponseDTO{
		Entries:     make([]dto.LeaderboardEntryDTO, 0, len(rows)),
		GeneratedAt: time.Now(),
	}
	for i, row := range rows {
		resp.Entries = append(resp.Entries, dto.LeaderboardEntryDTO{
			Rank:       i + 1,
			Username:   row.Username,
			TotalScore: row.TotalScore,
			TestsTaken: row.TestsTaken,
		})
	}
	return &resp, nil
}
