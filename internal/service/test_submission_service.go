package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/model"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/hntruong/quizdeck/internal/scoring"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// TestSubmissionService defines the interface for grading and recording test
// submissions.
type TestSubmissionService interface {
	SubmitTest(testID uint, caller Identity, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error)
	GetTestAttemptDetails(attemptID uint, caller Identity) (*dto.TestAttemptDetailDTO, error)
	GetUserAttemptsForTest(testID uint, caller Identity) ([]dto.TestAttemptSummaryDTO, error)
}

type testSubmissionService struct {
	testRepo        repository.TestRepository
	testAttemptRepo repository.TestAttemptRepository
	keys            *scoring.KeyStore
}

func NewTestSubmissionService(
	testRepo repository.TestRepository,
	testAttemptRepo repository.TestAttemptRepository,
	keys *scoring.KeyStore,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:        testRepo,
		testAttemptRepo: testAttemptRepo,
		keys:            keys,
	}
}

// SubmitTest grades a full-test submission and records the attempt.
//
// The prior-attempt count is read inside the same transaction that inserts the
// attempt, which narrows the window between two concurrent submissions from the
// same user. Enforcement remains best-effort: the policy is checked, not locked.
func (s *testSubmissionService) SubmitTest(testID uint, caller Identity, req dto.TestAttemptSubmitDTO) (*dto.TestAttemptDetailDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("SubmitTest: failed to load test")
		return nil, fmt.Errorf("error loading test %d: %w", testID, err)
	}
	if !test.Active {
		return nil, ErrTestInactive
	}

	record, ok := s.keys.Get(test.Slug)
	if !ok {
		// A published test without a grading record is indistinguishable from
		// a missing test as far as submissions are concerned.
		log.Warn().Uint("testID", testID).Str("slug", test.Slug).Msg("SubmitTest: no answer-key record for test")
		return nil, ErrTestNotFound
	}

	attempt := model.TestAttempt{
		TestID:      testID,
		UserID:      caller.UserID,
		SubmittedAt: time.Now(),
	}
	err = s.testAttemptRepo.CreateGraded(&attempt, func(prior int) error {
		// The limit check happens before any scoring work: a denied attempt
		// must not be graded or recorded.
		if err := scoring.Authorize(prior, record.MaxAttempts); err != nil {
			return err
		}

		result := scoring.Score(record, req.Answers)
		attempt.Score = result.Score
		attempt.CorrectCount = result.CorrectCount
		attempt.ScorableCount = result.ScorableCount
		attempt.Unscoreable = result.Unscoreable
		for code, verdict := range result.Verdicts {
			attempt.Answers = append(attempt.Answers, model.Answer{
				QuestionCode: code,
				Submitted:    string(req.Answers[code]),
				Verdict:      string(verdict),
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, scoring.ErrAttemptLimitExceeded) {
			return nil, err
		}
		log.Error().Err(err).Uint("testID", testID).Uint("userID", caller.UserID).Msg("SubmitTest: transaction failed")
		return nil, err
	}

	log.Info().
		Uint("attemptID", attempt.ID).
		Uint("testID", testID).
		Uint("userID", caller.UserID).
		Int("score", attempt.Score).
		Int("correct", attempt.CorrectCount).
		Int("scorable", attempt.ScorableCount).
		Msg("Test attempt graded")

	return s.attemptDetailDTO(&attempt, test), nil
}

// GetTestAttemptDetails retrieves full details for a specific test attempt.
// Only the attempt owner or an admin may read it.
func (s *testSubmissionService) GetTestAttemptDetails(attemptID uint, caller Identity) (*dto.TestAttemptDetailDTO, error) {
	attempt, err := s.testAttemptRepo.FindByIDWithAnswers(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("GetTestAttemptDetails: failed to load attempt")
		return nil, fmt.Errorf("error loading attempt %d: %w", attemptID, err)
	}
	if attempt.UserID != caller.UserID && !caller.IsAdmin {
		return nil, ErrNotAttemptOwner
	}

	test, err := s.testRepo.FindByIDWithQuestions(attempt.TestID)
	if err != nil {
		// The attempt is still presentable without question ordering.
		log.Warn().Err(err).Uint("testID", attempt.TestID).Msg("GetTestAttemptDetails: could not load test for ordering")
		test = &attempt.Test
	}

	return s.attemptDetailDTO(attempt, test), nil
}

// GetUserAttemptsForTest retrieves a summary list of the caller's attempts for
// a specific test.
func (s *testSubmissionService) GetUserAttemptsForTest(testID uint, caller Identity) ([]dto.TestAttemptSummaryDTO, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestNotFound
		}
		return nil, fmt.Errorf("error loading test %d: %w", testID, err)
	}

	attempts, err := s.testAttemptRepo.FindAllByTestAndUser(testID, caller.UserID)
	if err != nil {
		log.Error().Err(err).Uint("testID", testID).Uint("userID", caller.UserID).Msg("GetUserAttemptsForTest: repository error")
		return nil, fmt.Errorf("error fetching attempts for test %d: %w", testID, err)
	}

	summaries := make([]dto.TestAttemptSummaryDTO, 0, len(attempts))
	for _, attempt := range attempts {
		summaries = append(summaries, dto.TestAttemptSummaryDTO{
			ID:          attempt.ID,
			TestID:      attempt.TestID,
			Score:       attempt.Score,
			Unscoreable: attempt.Unscoreable,
			SubmittedAt: attempt.SubmittedAt,
		})
	}
	return summaries, nil
}

// attemptDetailDTO builds the response DTO, ordering answers by the question's
// position in the test. Codes that are in the answer key but not published as
// questions sort last by code.
func (s *testSubmissionService) attemptDetailDTO(attempt *model.TestAttempt, test *model.Test) *dto.TestAttemptDetailDTO {
	orderByCode := make(map[string]int, len(test.Questions))
	for _, q := range test.Questions {
		orderByCode[q.Code] = q.OrderInTest
	}

	answers := make([]dto.AnswerResponseDTO, 0, len(attempt.Answers))
	for _, answer := range attempt.Answers {
		entry := dto.AnswerResponseDTO{
			QuestionCode: answer.QuestionCode,
			Verdict:      answer.Verdict,
		}
		if answer.Submitted != "" {
			entry.Submitted = json.RawMessage(answer.Submitted)
		}
		answers = append(answers, entry)
	}
	sort.SliceStable(answers, func(i, j int) bool {
		oi, iOK := orderByCode[answers[i].QuestionCode]
		oj, jOK := orderByCode[answers[j].QuestionCode]
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return answers[i].QuestionCode < answers[j].QuestionCode
		}
		return oi < oj
	})

	return &dto.TestAttemptDetailDTO{
		ID:            attempt.ID,
		TestID:        attempt.TestID,
		TestTitle:     test.Title,
		Score:         attempt.Score,
		CorrectCount:  attempt.CorrectCount,
		ScorableCount: attempt.ScorableCount,
		Unscoreable:   attempt.Unscoreable,
		SubmittedAt:   attempt.SubmittedAt,
		Answers:       answers,
	}
}
