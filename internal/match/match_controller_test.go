package match

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/scorebook/pkg/token"
)

const testSecret = "test-secret"

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := newFixture(t)
	r := gin.New()
	// nil db skips the users-table check in AuthMiddleware
	MatchRoutes(r.Group("/api"), nil, testSecret, f.svc, nil, nil)
	return r, f
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := token.GenerateJWT(1, role, testSecret, 15)
	require.NoError(t, err)
	return "Bearer " + tok
}

func do(t *testing.T, r *gin.Engine, method, path, auth string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestMatchRoutes_Authorization(t *testing.T) {
	r, _ := newTestRouter(t)
	body := gin.H{"name": "A v B", "team1_id": teamA, "team2_id": teamB}

	rec, _ := do(t, r, http.MethodPost, "/api/matches", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/matches", "Bearer not-a-jwt", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, r, http.MethodPost, "/api/matches", bearer(t, token.RoleViewer), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := do(t, r, http.MethodPost, "/api/matches", bearer(t, token.RoleManager), body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m Match
	require.NoError(t, json.Unmarshal(env.Data, &m))

	rec, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/matches/%d", m.ID), bearer(t, token.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "delete is admin only")

	rec, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/matches/%d", m.ID), bearer(t, token.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMatchRoutes_ScoringFlow(t *testing.T) {
	r, _ := newTestRouter(t)
	manager := bearer(t, token.RoleManager)

	rec, env := do(t, r, http.MethodPost, "/api/matches", manager, gin.H{"name": "A v B", "team1_id": teamA, "team2_id": teamB, "overs": 5})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m Match
	require.NoError(t, json.Unmarshal(env.Data, &m))
	base := fmt.Sprintf("/api/matches/%d", m.ID)

	rec, env = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"runs": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Match is not live", env.Message)

	rec, env = do(t, r, http.MethodPost, base+"/start", manager, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "toss winner and decision required", env.Message)

	rec, _ = do(t, r, http.MethodPost, base+"/start", manager, gin.H{"toss_winner_id": teamB, "toss_decision": "bat"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"ball_type": "wide"})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "runs is required")
	assert.Contains(t, env.Errors, "runs")

	rec, env = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"runs": 1, "ball_type": "beamer"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, env.Errors, "balltype")

	rec, _ = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"runs": 0, "is_wicket": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "wicket needs a type")

	rec, env = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"runs": 1, "ball_type": "wide"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res BallResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 2, res.Innings.TotalRuns)
	assert.Equal(t, teamB, res.Innings.BattingTeamID)

	rec, _ = do(t, r, http.MethodPost, base+"/balls", manager, gin.H{"runs": 4})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = do(t, r, http.MethodGet, base+"/score", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var card Scorecard
	require.NoError(t, json.Unmarshal(env.Data, &card))
	require.Len(t, card.Innings, 1)
	assert.Equal(t, 6, card.Innings[0].TotalRuns)
	assert.InDelta(t, 0.1, card.Innings[0].OversBowled, 1e-9)
	assert.Len(t, card.RecentBalls, 2)

	rec, env = do(t, r, http.MethodDelete, base+"/balls/last", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var undo UndoResult
	require.NoError(t, json.Unmarshal(env.Data, &undo))
	assert.Equal(t, 2, undo.Innings.TotalRuns)

	rec, _ = do(t, r, http.MethodGet, base+"/score?innings=3", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, r, http.MethodPost, base+"/abandon", manager, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &m))
	assert.Equal(t, StatusAbandoned, m.Status)
	assert.Equal(t, "Match abandoned", m.ResultSummary)

	rec, _ = do(t, r, http.MethodGet, "/api/matches?status=abandoned", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMatchRoutes_NotFoundAndBadID(t *testing.T) {
	r, _ := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/matches/404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Match not found", env.Message)

	rec, _ = do(t, r, http.MethodGet, "/api/matches/abc/score", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/matches/1/live", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code, "no hub configured")
}
