package match

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/DhavalSuthar-24/scorebook/internal/live"
	mw "github.com/DhavalSuthar-24/scorebook/internal/middleware"
	"github.com/DhavalSuthar-24/scorebook/internal/scoring"
	responses "github.com/DhavalSuthar-24/scorebook/pkg/matchresponse"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchController handles match and scoring HTTP requests
type MatchController struct {
	service *MatchService
	hub     *live.Hub
	logger  *zap.Logger
}

// NewMatchController creates a new match controller
func NewMatchController(service *MatchService, hub *live.Hub, logger *zap.Logger) *MatchController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchController{service: service, hub: hub, logger: logger}
}

// --- DTOs for requests ---

type CreateMatchRequest struct {
	Name      string    `json:"name" binding:"required,min=2,max=200"`
	Team1ID   uint      `json:"team1_id" binding:"required"`
	Team2ID   uint      `json:"team2_id" binding:"required,nefield=Team1ID"`
	Venue     string    `json:"venue" binding:"max=200"`
	MatchDate time.Time `json:"match_date"`
	Overs     int       `json:"overs" binding:"omitempty,min=1,max=50"`
}

type StartMatchRequest struct {
	TossWinnerID *uint  `json:"toss_winner_id"`
	TossDecision string `json:"toss_decision"`
}

type RecordBallRequest struct {
	Runs               *int   `json:"runs" binding:"required,min=0,max=7"`
	BallType           string `json:"ball_type" binding:"omitempty,balltype"`
	IsWicket           bool   `json:"is_wicket"`
	WicketType         string `json:"wicket_type" binding:"omitempty,wickettype"`
	BatsmanID          *uint  `json:"batsman_id"`
	BowlerID           *uint  `json:"bowler_id"`
	FielderID          *uint  `json:"fielder_id"`
	DismissedBatsmanID *uint  `json:"dismissed_batsman_id"`
	Commentary         string `json:"commentary" binding:"max=500"`
}

type EndMatchRequest struct {
	WinnerID      *uint  `json:"winner_id"`
	ResultSummary string `json:"result_summary" binding:"max=255"`
}

type AbandonMatchRequest struct {
	ResultSummary string `json:"result_summary" binding:"max=255"`
}

type UpdateMatchRequest struct {
	Name          *string    `json:"name" binding:"omitempty,min=2,max=200"`
	Venue         *string    `json:"venue" binding:"omitempty,max=200"`
	MatchDate     *time.Time `json:"match_date"`
	Overs         *int       `json:"overs" binding:"omitempty,min=1,max=50"`
	Status        *string    `json:"status" binding:"omitempty,oneof=upcoming live completed abandoned"`
	WinnerID      *uint      `json:"winner_id"`
	ClearWinner   bool       `json:"clear_winner"`
	ResultSummary *string    `json:"result_summary" binding:"omitempty,max=255"`
}

// --- helpers ---

func parseMatchID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		responses.ErrorResponse(c, http.StatusBadRequest, "Invalid match ID")
		return 0, false
	}
	return uint(id), true
}

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, obj interface{}) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// handleError maps service errors onto HTTP statuses.
func (mc *MatchController) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		responses.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidState):
		responses.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidInput):
		responses.ErrorResponse(c, http.StatusBadRequest, err.Error())
	default:
		mc.logger.Error("match operation failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", mw.GetRequestID(c)),
			zap.Error(err))
		responses.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

// CreateMatch godoc
// @Summary Schedule a match
// @Tags Matches
// @Accept json
// @Produce json
// @Param match body CreateMatchRequest true "Match"
// @Success 201 {object} matchresponse.SuccessBody{data=Match}
// @Failure 400 {object} matchresponse.ErrorBody
// @Failure 404 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches [post]
func (mc *MatchController) CreateMatch(c *gin.Context) {
	userID, err := mw.GetUserIDFromContext(c)
	if err != nil {
		responses.ErrorResponse(c, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	match, err := mc.service.CreateMatch(c.Request.Context(), CreateMatchInput{
		Name:            req.Name,
		Team1ID:         req.Team1ID,
		Team2ID:         req.Team2ID,
		Venue:           req.Venue,
		MatchDate:       req.MatchDate,
		Overs:           req.Overs,
		CreatedByUserID: userID,
	})
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, "Match created successfully", match)
}

// GetMatches godoc
// @Summary List matches
// @Tags Matches
// @Produce json
// @Param status query string false "Status filter"
// @Param team_id query int false "Team filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} matchresponse.PaginatedBody{data=[]Match}
// @Router /matches [get]
func (mc *MatchController) GetMatches(c *gin.Context) {
	page, pageSize := responses.Paging(c)

	var teamID uint
	if raw := c.Query("team_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			responses.ErrorResponse(c, http.StatusBadRequest, "Invalid team ID")
			return
		}
		teamID = uint(id)
	}

	matches, total, err := mc.service.ListMatches(c.Request.Context(), c.Query("status"), teamID, page, pageSize)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.PaginatedResponse(c, http.StatusOK, matches, page, pageSize, total)
}

// GetMatchByID godoc
// @Summary Get a match with its innings
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} matchresponse.SuccessBody{data=Match}
// @Failure 404 {object} matchresponse.ErrorBody
// @Router /matches/{id} [get]
func (mc *MatchController) GetMatchByID(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := mc.service.GetMatch(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "", match)
}

// UpdateMatch godoc
// @Summary Overwrite match fields
// @Description Administrative escape hatch; no transition checks are made.
// @Tags Matches
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param match body UpdateMatchRequest true "Fields to overwrite"
// @Success 200 {object} matchresponse.SuccessBody{data=Match}
// @Failure 400 {object} matchresponse.ErrorBody
// @Failure 404 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id} [put]
func (mc *MatchController) UpdateMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req UpdateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	in := UpdateMatchInput{
		Name:          req.Name,
		Venue:         req.Venue,
		MatchDate:     req.MatchDate,
		Overs:         req.Overs,
		WinnerID:      req.WinnerID,
		ClearWinner:   req.ClearWinner,
		ResultSummary: req.ResultSummary,
	}
	if req.Status != nil {
		status := MatchStatus(*req.Status)
		in.Status = &status
	}

	match, err := mc.service.UpdateMatch(c.Request.Context(), id, in)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Match updated successfully", match)
}

// DeleteMatch godoc
// @Summary Delete a match with its innings and balls
// @Tags Matches
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} matchresponse.SuccessBody
// @Failure 404 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id} [delete]
func (mc *MatchController) DeleteMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	if err := mc.service.DeleteMatch(c.Request.Context(), id); err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Match deleted successfully", nil)
}

// StartMatch godoc
// @Summary Record the toss and start the first innings
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param toss body StartMatchRequest true "Toss"
// @Success 200 {object} matchresponse.SuccessBody{data=StartResult}
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/start [post]
func (mc *MatchController) StartMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req StartMatchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	res, err := mc.service.StartMatch(c.Request.Context(), id, req.TossWinnerID, TossDecision(req.TossDecision))
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Match started", res)
}

// RecordBall godoc
// @Summary Record a delivery
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param ball body RecordBallRequest true "Delivery"
// @Success 201 {object} matchresponse.SuccessBody{data=BallResult}
// @Failure 400 {object} matchresponse.ErrorBody
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/balls [post]
func (mc *MatchController) RecordBall(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req RecordBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	res, err := mc.service.RecordBall(c.Request.Context(), id, BallInput{
		Runs:               *req.Runs,
		BallType:           scoring.BallType(req.BallType),
		IsWicket:           req.IsWicket,
		WicketType:         scoring.WicketType(req.WicketType),
		BatsmanID:          req.BatsmanID,
		BowlerID:           req.BowlerID,
		FielderID:          req.FielderID,
		DismissedBatsmanID: req.DismissedBatsmanID,
		Commentary:         req.Commentary,
	})
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusCreated, "Ball recorded", res)
}

// UndoLastBall godoc
// @Summary Undo the most recent delivery of the current innings
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} matchresponse.SuccessBody{data=UndoResult}
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/balls/last [delete]
func (mc *MatchController) UndoLastBall(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	res, err := mc.service.UndoLastBall(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Last ball undone", res)
}

// EndInnings godoc
// @Summary End the current innings early
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Success 200 {object} matchresponse.SuccessBody{data=Match}
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/end-innings [post]
func (mc *MatchController) EndInnings(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	match, err := mc.service.EndInnings(c.Request.Context(), id)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Innings ended", match)
}

// EndMatch godoc
// @Summary Complete a match with a given result
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param result body EndMatchRequest false "Result"
// @Success 200 {object} matchresponse.SuccessBody{data=Match}
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/end [post]
func (mc *MatchController) EndMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req EndMatchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	match, err := mc.service.EndMatch(c.Request.Context(), id, req.WinnerID, req.ResultSummary)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Match ended", match)
}

// AbandonMatch godoc
// @Summary Abandon a match
// @Tags Scoring
// @Accept json
// @Produce json
// @Param id path int true "Match ID"
// @Param result body AbandonMatchRequest false "Reason"
// @Success 200 {object} matchresponse.SuccessBody{data=Match}
// @Failure 409 {object} matchresponse.ErrorBody
// @Security ApiKeyAuth
// @Router /matches/{id}/abandon [post]
func (mc *MatchController) AbandonMatch(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var req AbandonMatchRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		responses.ValidationErrorResponse(c, err)
		return
	}

	match, err := mc.service.AbandonMatch(c.Request.Context(), id, req.ResultSummary)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "Match abandoned", match)
}

// GetScore godoc
// @Summary Scorecard with recent balls and chase figures
// @Tags Scoring
// @Produce json
// @Param id path int true "Match ID"
// @Param innings query int false "Innings number for recent balls"
// @Success 200 {object} matchresponse.SuccessBody{data=Scorecard}
// @Failure 404 {object} matchresponse.ErrorBody
// @Router /matches/{id}/score [get]
func (mc *MatchController) GetScore(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}

	var inningsNumber *int
	if raw := c.Query("innings"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 2 {
			responses.ErrorResponse(c, http.StatusBadRequest, "Invalid innings number")
			return
		}
		inningsNumber = &n
	}

	card, err := mc.service.GetScore(c.Request.Context(), id, inningsNumber)
	if err != nil {
		mc.handleError(c, err)
		return
	}

	responses.SuccessResponse(c, http.StatusOK, "", card)
}

// Live godoc
// @Summary Websocket feed of scoring events for a match
// @Tags Scoring
// @Param id path int true "Match ID"
// @Success 101
// @Failure 404 {object} matchresponse.ErrorBody
// @Router /matches/{id}/live [get]
func (mc *MatchController) Live(c *gin.Context) {
	id, ok := parseMatchID(c)
	if !ok {
		return
	}
	if mc.hub == nil {
		responses.ErrorResponse(c, http.StatusServiceUnavailable, "Live feed is disabled")
		return
	}

	if _, err := mc.service.GetMatch(c.Request.Context(), id); err != nil {
		mc.handleError(c, err)
		return
	}

	if err := mc.hub.ServeMatch(c.Writer, c.Request, id); err != nil {
		mc.logger.Warn("live upgrade failed", zap.Uint("match_id", id), zap.Error(err))
	}
}
