package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/scorebook/config"
	"github.com/DhavalSuthar-24/scorebook/internal/auth"
	"github.com/DhavalSuthar-24/scorebook/internal/live"
	"github.com/DhavalSuthar-24/scorebook/internal/metrics"
	"github.com/DhavalSuthar-24/scorebook/internal/store"
	"github.com/DhavalSuthar-24/scorebook/pkg/token"
	"github.com/DhavalSuthar-24/scorebook/utils"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type idOnly struct {
	ID uint `json:"ID"`
}

func newTestServer(t *testing.T) (*gin.Engine, *live.Recorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.PasswordCost = bcrypt.MinCost

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, store.Migrate(db))

	_, err = auth.CreateAccount(context.Background(), auth.NewAuthRepository(db), "admin", "admin-password", token.RoleAdmin)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.CORSOrigin = "*"
	cfg.JWT.AccessTokenSecret = "router-test-secret"
	cfg.JWT.AccessTokenExpiryMinutes = 10

	events := &live.Recorder{}
	r := SetupRoutes(Options{
		DB:         db,
		Config:     cfg,
		Metrics:    metrics.New(),
		Publishers: []live.Publisher{events},
	})
	return r, events
}

func send(t *testing.T, r *gin.Engine, method, path, bearer string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealthzAndMetrics(t *testing.T) {
	r, _ := newTestServer(t)

	rec, _ := send(t, r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, _ = send(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestEndToEndScoring(t *testing.T) {
	r, events := newTestServer(t)

	rec, env := send(t, r, http.MethodPost, "/api/auth/login", "", gin.H{"username": "admin", "password": "admin-password"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var login auth.AuthResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	tok := login.AccessToken

	var teamIDs []uint
	for _, name := range []string{"Harbour CC", "Valley XI"} {
		rec, env = send(t, r, http.MethodPost, "/api/teams", tok, gin.H{"name": name})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created idOnly
		require.NoError(t, json.Unmarshal(env.Data, &created))
		teamIDs = append(teamIDs, created.ID)
	}

	rec, env = send(t, r, http.MethodPost, "/api/matches", tok, gin.H{
		"name": "Harbour v Valley", "team1_id": teamIDs[0], "team2_id": teamIDs[1], "overs": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var m idOnly
	require.NoError(t, json.Unmarshal(env.Data, &m))
	base := fmt.Sprintf("/api/matches/%d", m.ID)

	rec, _ = send(t, r, http.MethodPost, base+"/start", tok, gin.H{"toss_winner_id": teamIDs[0], "toss_decision": "bat"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for i := 0; i < 6; i++ {
		rec, _ = send(t, r, http.MethodPost, base+"/balls", tok, gin.H{"runs": 1})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env = send(t, r, http.MethodGet, base+"/score", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var card struct {
		Match struct {
			Status         string `json:"status"`
			CurrentInnings int    `json:"current_innings"`
		} `json:"match"`
		Target     *int `json:"target"`
		RunsNeeded *int `json:"runs_needed"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, "live", card.Match.Status)
	assert.Equal(t, 2, card.Match.CurrentInnings)
	require.NotNil(t, card.Target)
	assert.Equal(t, 7, *card.Target)

	assert.Contains(t, events.Types(), live.EventInningsBreak)

	rec, _ = send(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, rec.Body.String(), `scorebook_balls_recorded_total{ball_type="normal"} 6`)
}
