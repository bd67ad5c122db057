package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/model"
	"github.com/hntruong/quizdeck/internal/repository"
	"github.com/hntruong/quizdeck/internal/scoring"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminTestService interface {
	CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error)
	SetTestActive(testID uint, active bool) error
}

type adminTestService struct {
	testRepo repository.TestRepository
	keys     *scoring.KeyStore
}

func NewAdminTestService(testRepo repository.TestRepository, keys *scoring.KeyStore) AdminTestService {
	return &adminTestService{testRepo: testRepo, keys: keys}
}

// CreateTest publishes a new test's public content. Grading records live in the
// versioned answer-key data file; questions without a key entry are simply
// excluded from scoring, so a test may be published ahead of its key.
func (s *adminTestService) CreateTest(req dto.TestCreateDTO) (*dto.TestResponseDTO, error) {
	codes := make(map[string]bool, len(req.Questions))
	orders := make(map[int]bool, len(req.Questions))
	for _, q := range req.Questions {
		if codes[q.Code] {
			return nil, fmt.Errorf("%w: duplicate question code %q", ErrInvalidTestDefinition, q.Code)
		}
		codes[q.Code] = true
		if orders[q.OrderInTest] {
			return nil, fmt.Errorf("%w: duplicate question order %d", ErrInvalidTestDefinition, q.OrderInTest)
		}
		orders[q.OrderInTest] = true
		if !scoring.KnownMechanic(scoring.Mechanic(q.Mechanic)) {
			return nil, fmt.Errorf("%w: unknown mechanic %q for question %q", ErrInvalidTestDefinition, q.Mechanic, q.Code)
		}
		if len(q.Options) > 0 && !json.Valid(q.Options) {
			return nil, fmt.Errorf("%w: options for question %q are not valid JSON", ErrInvalidTestDefinition, q.Code)
		}
	}

	if _, ok := s.keys.Get(req.Slug); !ok {
		log.Warn().Str("slug", req.Slug).Msg("CreateTest: no answer-key record for slug yet; submissions will be rejected until one ships")
	}

	test := model.Test{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		BasePoints:  req.BasePoints,
		MaxAttempts: req.MaxAttempts,
		Active:      true,
	}
	for _, q := range req.Questions {
		test.Questions = append(test.Questions, model.Question{
			Code:        q.Code,
			Prompt:      q.Prompt,
			Mechanic:    q.Mechanic,
			Options:     string(q.Options),
			OrderInTest: q.OrderInTest,
		})
	}

	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("slug", req.Slug).Msg("CreateTest: failed to create test")
		return nil, fmt.Errorf("error creating test: %w", err)
	}
	log.Info().Uint("testID", test.ID).Str("slug", test.Slug).Int("questions", len(test.Questions)).Msg("Created test")

	var resp dto.TestResponseDTO
	copier.Copy(&resp, &test)
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

func (s *adminTestService) SetTestActive(testID uint, active bool) error {
	if err := s.testRepo.SetActive(testID, active); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTestNotFound
		}
		log.Error().Err(err).Uint("testID", testID).Msg("SetTestActive: repository error")
		return fmt.Errorf("error updating test %d: %w", testID, err)
	}
	log.Info().Uint("testID", testID).Bool("active", active).Msg("Updated test active state")
	return nil
}
