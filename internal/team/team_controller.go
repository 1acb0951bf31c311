package team

import (
	"net/http"
	"strconv"

	mw "github.com/DhavalSuthar-24/scorebook/internal/middleware"
	responses "github.com/DhavalSuthar-24/scorebook/pkg/matchresponse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TeamController handles team-related HTTP requests
type TeamController struct {
	repo   TeamRepository
	logger *zap.Logger
}

// NewTeamController creates a new team controller
func NewTeamController(repo TeamRepository, logger *zap.Logger) *TeamController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamController{repo: repo, logger: logger}
}

// --- DTOs for requests ---

type CreateTeamRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	ShortName   string `json:"short_name" binding:"max=10"`
	Description string `json:"description" binding:"max=1000"`
	Logo        string `json:"logo"`
}

type AddPlayerRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Role         string `json:"role" binding:"omitempty,oneof=batsman bowler all_rounder wicket_keeper"`
	JerseyNumber int    `json:"jersey_number" binding:"gte=0"`
	IsCaptain    bool   `json:"is_captain"`
}

func parseTeamID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
		return 0, false
	}
	return uint(id), true
}

// CreateTeam godoc
// @Summary Create a new team
// @Tags Teams
// @Accept json
// @Produce json
// @Param team body CreateTeamRequest true "Team Creation Data"
// @Success 201 {object} matchresponse.SuccessBody{data=Team}
// @Failure 400 {object} matchresponse.ErrorBody
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /teams [post]
func (tc *TeamController) CreateTeam(c *gin.Context) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := tc.repo.GetTeamByName(ctx, req.Name)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to check team name: "+err.Error())
		return
	}
	if existing != nil {
		responses.ErrorResponse(c, http.StatusConflict, "Team name already exists")
		return
	}

	team := Team{
		Name:        req.Name,
		ShortName:   req.ShortName,
		Description: req.Description,
		Logo:        req.Logo,
		CreatedByID: userID,
	}
	if err := tc.repo.CreateTeam(ctx, &team); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to create team: "+err.Error())
		return
	}

	tc.logger.Info("team created", zap.Uint("team_id", team.ID), zap.String("name", team.Name))
	responses.SuccessResponse(c, http.StatusCreated, "Team created successfully", team)
}

// GetTeamByID godoc
// @Summary Get a team with its roster
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} matchresponse.SuccessBody{data=Team}
// @Failure 404 {object} matchresponse.ErrorBody
// @Router /teams/{id} [get]
func (tc *TeamController) GetTeamByID(c *gin.Context) {
	id, ok := parseTeamID(c)
	if !ok {
		return
	}

	team, err := tc.repo.GetTeamByID(c.Request.Context(), id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "", team)
}

// GetAllTeams godoc
// @Summary List teams
// @Tags Teams
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} matchresponse.PaginatedBody{data=[]Team}
// @Router /teams [get]
func (tc *TeamController) GetAllTeams(c *gin.Context) {
	page, pageSize := responses.Paging(c)

	teams, total, err := tc.repo.GetAllTeams(c.Request.Context(), page, pageSize)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch teams: "+err.Error())
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, teams, page, pageSize, total)
}

// AddPlayer godoc
// @Summary Add a player to a team roster
// @Tags Teams
// @Accept json
// @Produce json
// @Param id path int true "Team ID"
// @Param player body AddPlayerRequest true "Player"
// @Success 201 {object} matchresponse.SuccessBody{data=TeamPlayer}
// @Failure 404 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /teams/{id}/players [post]
func (tc *TeamController) AddPlayer(c *gin.Context) {
	id, ok := parseTeamID(c)
	if !ok {
		return
	}

	var req AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	team, err := tc.repo.GetTeamByID(ctx, id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch team: "+err.Error())
		return
	}
	if team == nil {
		responses.ErrorResponse(c, http.StatusNotFound, "Team not found")
		return
	}

	player := TeamPlayer{
		TeamID:       team.ID,
		Name:         req.Name,
		Role:         req.Role,
		JerseyNumber: req.JerseyNumber,
		IsCaptain:    req.IsCaptain,
	}
	if player.Role == "" {
		player.Role = "batsman"
	}
	if err := tc.repo.AddPlayer(ctx, &player); err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to add player: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, "Player added successfully", player)
}

// GetTeamPlayers godoc
// @Summary List a team's roster
// @Tags Teams
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} matchresponse.SuccessBody{data=[]TeamPlayer}
// @Router /teams/{id}/players [get]
func (tc *TeamController) GetTeamPlayers(c *gin.Context) {
	id, ok := parseTeamID(c)
	if !ok {
		return
	}

	players, err := tc.repo.GetTeamPlayers(c.Request.Context(), id)
	if err != nil {
		responses.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch players: "+err.Error())
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "", players)
}
