package team

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
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DhavalSuthar-24/scorebook/pkg/token"
)

const testSecret = "team-test-secret"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&Team{}, &TeamPlayer{}))
	return db
}

func TestTeamRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTeamRepository(newTestDB(t))

	harbour := &Team{Name: "Harbour CC"}
	require.NoError(t, repo.CreateTeam(ctx, harbour))
	valley := &Team{Name: "Valley XI"}
	require.NoError(t, repo.CreateTeam(ctx, valley))

	p := &TeamPlayer{TeamID: harbour.ID, Name: "Opener"}
	require.NoError(t, repo.AddPlayer(ctx, p))

	ok, err := repo.IsTeamPlayer(ctx, harbour.ID, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.IsTeamPlayer(ctx, valley.ID, p.ID)
	require.NoError(t, err)
	assert.False(t, ok, "player belongs to the other roster")

	got, err := repo.GetTeamByID(ctx, harbour.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Len(t, got.Players, 1)

	missing, err := repo.GetTeamByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byName, err := repo.GetTeamByName(ctx, "Valley XI")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, valley.ID, byName.ID)

	teams, total, err := repo.GetAllTeams(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, teams, 1)
}

func request(t *testing.T, r *gin.Engine, method, path, role string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := token.GenerateJWT(7, role, testSecret, 5)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestTeamRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	// AuthMiddleware checks the caller still exists in users
	require.NoError(t, db.Exec("CREATE TABLE users (id INTEGER PRIMARY KEY, deleted_at DATETIME)").Error)
	require.NoError(t, db.Exec("INSERT INTO users (id) VALUES (7)").Error)

	r := gin.New()
	TeamRoutes(r.Group("/api"), db, testSecret, nil)

	rec := request(t, r, http.MethodPost, "/api/teams", "", gin.H{"name": "Harbour CC"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = request(t, r, http.MethodPost, "/api/teams", token.RoleViewer, gin.H{"name": "Harbour CC"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = request(t, r, http.MethodPost, "/api/teams", token.RoleManager, gin.H{"name": "H"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(t, r, http.MethodPost, "/api/teams", token.RoleManager, gin.H{"name": "Harbour CC", "short_name": "HCC"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Data Team `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint(7), created.Data.CreatedByID)

	rec = request(t, r, http.MethodPost, "/api/teams", token.RoleAdmin, gin.H{"name": "Harbour CC"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	players := fmt.Sprintf("/api/teams/%d/players", created.Data.ID)
	rec = request(t, r, http.MethodPost, players, token.RoleManager, gin.H{"name": "Opener", "role": "batsman", "jersey_number": 7})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = request(t, r, http.MethodPost, "/api/teams/404/players", token.RoleManager, gin.H{"name": "Nobody"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(t, r, http.MethodGet, players, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var roster struct {
		Data []TeamPlayer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roster))
	require.Len(t, roster.Data, 1)
	assert.Equal(t, "Opener", roster.Data[0].Name)

	rec = request(t, r, http.MethodGet, "/api/teams?page=1&page_size=5", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = request(t, r, http.MethodGet, "/api/teams/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = request(t, r, http.MethodGet, "/api/teams/404", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
