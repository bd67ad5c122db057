package repository

import (
	"github.com/hntruong/quizdeck/internal/model"
	"gorm.io/gorm"
)

// LeaderboardRow is one aggregated standings entry: the sum of a user's best
// score per test.
type LeaderboardRow struct {
	Username   string
	TotalScore int
	TestsTaken int
}

type LeaderboardRepository interface {
	TopStandings(limit int) ([]LeaderboardRow, error)
}

type leaderboardRepository struct {
	db *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) LeaderboardRepository {
	return &leaderboardRepository{db: db}
}

func (r *leaderboardRepository) TopStandings(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	best := r.db.Model(&model.TestAttempt{}).
		Select("user_id, test_id, MAX(score) as best_score").
		Where("test_attempts.deleted_at IS NULL").
		Group("user_id, test_id")
	err := r.db.Table("(?) as best", best).
		Select("users.username, SUM(best.best_score) as total_score, COUNT(best.test_id) as tests_taken").
		Joins("JOIN users ON users.id = best.user_id").
		Where("users.deleted_at IS NULL AND users.is_banned = ?", false).
		Group("users.username").
		Order("total_score DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
