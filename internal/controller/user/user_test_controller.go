package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/middleware"
	"github.com/hntruong/quizdeck/internal/scoring"
	"github.com/hntruong/quizdeck/internal/service"
	"github.com/rs/zerolog/log"
)

type UserTestController struct {
	userTestService       service.UserTestService
	testSubmissionService service.TestSubmissionService
	leaderboardService    service.LeaderboardService
}

func NewUserTestController(
	uts service.UserTestService,
	tss service.TestSubmissionService,
	lbs service.LeaderboardService,
) *UserTestController {
	return &UserTestController{
		userTestService:       uts,
		testSubmissionService: tss,
		leaderboardService:    lbs,
	}
}

// GetAllTests godoc
// @Summary List all active tests
// @Description Lists tests open for attempts, with the caller's attempt usage per test.
// @Tags Tests & Attempts
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} dto.TestSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests [get]
func (c *UserTestController) GetAllTests(ctx *gin.Context) {
	identity, _ := middleware.CurrentIdentity(ctx)
	tests, err := c.userTestService.GetAllTests(identity)
	if err != nil {
		log.Error().Err(err).Msg("GetAllTests: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve tests"})
		return
	}
	ctx.JSON(http.StatusOK, tests)
}

// GetTestDetails godoc
// @Summary Get details of a specific test
// @Description Full test content for taking an attempt: prompts, options, ordering. Grading data is never included.
// @Tags Tests & Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param test_id path int true "Test ID"
// @Success 200 {object} dto.TestResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id} [get]
func (c *UserTestController) GetTestDetails(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	details, err := c.userTestService.GetTestDetails(uint(testID))
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetTestDetails: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve test"})
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// SubmitTestAttempt godoc
// @Summary Submit answers for an entire test
// @Description Grades the submission against the server-held answer key and records the attempt. Malformed answer values grade as incorrect rather than rejecting the submission.
// @Tags Tests & Attempts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param test_id path int true "ID of the test being attempted"
// @Param submission body dto.TestAttemptSubmitDTO true "Map of question code to answer value"
// @Success 201 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Error processing submission"
// @Router /tests/{test_id}/attempts [post]
func (c *UserTestController) SubmitTestAttempt(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.TestAttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	identity, _ := middleware.CurrentIdentity(ctx)
	log.Info().Uint64("testID", testID).Uint("userID", identity.UserID).Int("answerCount", len(req.Answers)).Msg("Received test submission")

	detail, err := c.testSubmissionService.SubmitTest(uint(testID), identity, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
		case errors.Is(err, service.ErrTestInactive):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test is not open for attempts"})
		case errors.Is(err, scoring.ErrAttemptLimitExceeded):
			ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: "Attempt limit exceeded for this test"})
		default:
			log.Error().Err(err).Uint64("testID", testID).Msg("SubmitTestAttempt: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit test attempt"})
		}
		return
	}
	ctx.JSON(http.StatusCreated, detail)
}

// GetUserTestAttempts godoc
// @Summary List the caller's attempts for a test
// @Tags Tests & Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param test_id path int true "Test ID"
// @Success 200 {array} dto.TestAttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /tests/{test_id}/my-attempts [get]
func (c *UserTestController) GetUserTestAttempts(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	identity, _ := middleware.CurrentIdentity(ctx)
	attempts, err := c.testSubmissionService.GetUserAttemptsForTest(uint(testID), identity)
	if err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("GetUserTestAttempts: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempts"})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetSpecificTestAttemptDetails godoc
// @Summary Get details of a specific test attempt
// @Description Full attempt result with per-question verdicts. Only the attempt owner or an admin may read it.
// @Tags Tests & Attempts
// @Produce json
// @Security ApiKeyAuth
// @Param attempt_id path int true "Test Attempt ID"
// @Success 200 {object} dto.TestAttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Attempt ID format"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /test-attempts/{attempt_id} [get]
func (c *UserTestController) GetSpecificTestAttemptDetails(ctx *gin.Context) {
	attemptID, err := strconv.ParseUint(ctx.Param("attempt_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return
	}

	identity, _ := middleware.CurrentIdentity(ctx)
	details, err := c.testSubmissionService.GetTestAttemptDetails(uint(attemptID), identity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAttemptNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test attempt not found"})
		case errors.Is(err, service.ErrNotAttemptOwner):
			ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: "Attempt belongs to another user"})
		default:
			log.Error().Err(err).Uint64("attemptID", attemptID).Msg("GetSpecificTestAttemptDetails: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve attempt"})
		}
		return
	}
	ctx.JSON(http.StatusOK, details)
}

// GetLeaderboard godoc
// @Summary Get the score leaderboard
// @Description Users ranked by the sum of their best score per test.
// @Tags Leaderboard
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "Maximum number of entries (default 50)"
// @Success 200 {object} dto.LeaderboardResponseDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /leaderboard [get]
func (c *UserTestController) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit format"})
			return
		}
		limit = val
	}

	standings, err := c.leaderboardService.GetStandings(limit)
	if err != nil {
		log.Error().Err(err).Msg("GetLeaderboard: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve leaderboard"})
		return
	}
	ctx.JSON(http.StatusOK, standings)
}
