package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hntruong/quizdeck/internal/dto"
	"github.com/hntruong/quizdeck/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Create a new test
// @Description Publishes a test's public content: questions, prompts, options. Answer keys are loaded from the server's versioned data file, never through this API.
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param test_data body dto.TestCreateDTO true "Test content including all questions"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	testResp, err := c.adminTestService.CreateTest(req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidTestDefinition) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid test definition", Details: []string{err.Error()}})
			return
		}
		log.Error().Err(err).Str("slug", req.Slug).Msg("Admin CreateTest: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create test"})
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// SetTestActive godoc
// @Summary (Admin) Open or close a test for attempts
// @Tags Admin - Tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param test_id path int true "Test ID"
// @Param active body dto.TestActiveUpdateDTO true "Desired active state"
// @Success 204 "Updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Admin access required"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests/{test_id}/active [patch]
func (c *AdminTestController) SetTestActive(ctx *gin.Context) {
	testID, err := strconv.ParseUint(ctx.Param("test_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format"})
		return
	}

	var req dto.TestActiveUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.adminTestService.SetTestActive(uint(testID), *req.Active); err != nil {
		if errors.Is(err, service.ErrTestNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Test not found"})
			return
		}
		log.Error().Err(err).Uint64("testID", testID).Msg("Admin SetTestActive: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to update test"})
		return
	}
	ctx.Status(http.StatusNoContent)
}
