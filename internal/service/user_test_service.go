package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UserTestService interface {
	GetAllTests(caller Identity) ([]dto.TestSummaryDTO, error)
	GetTestDetails(testID uint) (*dto.TestResponseDTO, error)
}

type userTestService struct {
	testRepo        repository.TestRepository
	testAttemptRepo repository.TestAttemptRepository
}

func NewUserTestService(testRepo repository.TestRepository, testAttemptRepo repository.TestAttemptRepository) UserTestService {
	return &userTestService{testRepo: testRepo, testAttemptRepo: testAttemptRepo}
}

// GetAllTests lists active tests together with the caller's attempt usage.
func (s *userTestService) GetAllTests(caller Identity) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllActiveWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: repository error")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	summaries := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		used, err := s.testAttemptRepo.CountByTestAndUser(twc.Test.ID, caller.UserID)
		if err != nil {
			log.Error().Err(err).Uint("testID", twc.Test.ID).Msg("GetAllTests: failed to count attempts")
			return nil, fmt.Errorf("error counting attempts for test %d: %w", twc.Test.ID, err)
		}

		summary := dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Slug:          twc.Test.Slug,
			Title:         twc.Test.Title,
			Description:   twc.Test.Description,
			Difficulty:    twc.Test.Difficulty,
			BasePoints:    twc.Test.BasePoints,
			MaxAttempts:   twc.Test.MaxAttempts,
			QuestionCount: twc.QuestionCount,
			AttemptsUsed:  int(used),
			CreatedAt:     twc.Test.CreatedAt,
		}
		if twc.Test.MaxAttempts != nil {
			remaining := *twc.Test.MaxAttempts - int(used)
			if remaining < 0 {
				remaining = 0
			}
			summary.AttemptsRemaining = &remaining
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetTestDetails returns the full public view of a test: prompts, options and
// ordering, never grading data.
func (s *userTestService) GetTestDetails(testID uint) (*dto.TestResponseDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("GetTestDetails: repository error")
		return nil, fmt.Errorf("error fetching test %d: %w", testID, err)
	}
	if !test.Active {
		return nil, ErrTestNotFound
	}

	var resp dto.TestResponseDTO
	copier.Copy(&resp, test)
	// Questions are mapped by hand: Options is stored as JSON text and must
	// come out as raw JSON, or not at all when empty.
	resp.Questions = nil
	for _, q := range test.Questions {
		question := dto.QuestionResponseDTO{
			ID:          q.ID,
			TestID:      q.TestID,
			Code:        q.Code,
			Prompt:      q.Prompt,
			Mechanic:    q.Mechanic,
			OrderInTest: q.OrderInTest,
		}
		if q.Options != "" {
			question.Options = json.RawMessage(q.Options)
		}
		resp.Questions = append(resp.Questions, question)
	}
	return &resp, nil
}
