package repository

import (
	"fmt"

	"github.com/hntruong/quizdeck/internal/model"
	"gorm.io/gorm"
)

type TestAttemptRepository interface {
	Create(attempt *model.TestAttempt) error
	// CreateGraded counts the user's prior attempts for the test and calls
	// grade with that count inside the transaction that inserts the attempt.
	// An error from grade aborts the insert. grade is expected to fill in the
	// attempt's score fields and answers.
	CreateGraded(attempt *model.TestAttempt, grade func(prior int) error) error
	FindByIDWithAnswers(id uint) (*model.TestAttempt, error)
	FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error)
	CountByTestAndUser(testID, userID uint) (int64, error)
}

type testAttemptRepository struct {
	db *gorm.DB
}

func NewTestAttemptRepository(db *gorm.DB) TestAttemptRepository {
	return &testAttemptRepository{db: db}
}

func (r *testAttemptRepository) Create(attempt *model.TestAttempt) error {
	// GORM creates the associated Answer rows along with the attempt.
	return r.db.Create(attempt).Error
}

func (r *testAttemptRepository) CreateGraded(attempt *model.TestAttempt, grade func(prior int) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var prior int64
		if err := tx.Model(&model.TestAttempt{}).
			Where("test_id = ? AND user_id = ?", attempt.TestID, attempt.UserID).
			Count(&prior).Error; err != nil {
			return fmt.Errorf("error counting prior attempts: %w", err)
		}
		if err := grade(int(prior)); err != nil {
			return err
		}
		if err := tx.Create(attempt).Error; err != nil {
			return fmt.Errorf("error recording attempt: %w", err)
		}
		return nil
	})
}

func (r *testAttemptRepository) FindByIDWithAnswers(id uint) (*model.TestAttempt, error) {
	var attempt model.TestAttempt
	err := r.db.
		Preload("Test").
		Preload("Answers").
		First(&attempt, id).Error
	return &attempt, err
}

func (r *testAttemptRepository) FindAllByTestAndUser(testID, userID uint) ([]model.TestAttempt, error) {
	var attempts []model.TestAttempt
	err := r.db.
		Where("test_id = ? AND user_id = ?", testID, userID).
		Order("submitted_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *testAttemptRepository) CountByTestAndUser(testID, userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.TestAttempt{}).
		Where("test_id = ? AND user_id = ?", testID, userID).
		Count(&count).Error
	return count, err
}
