// internal/handlers/points_test.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/services"
)

type PointsHandlerTestSuite struct {
	suite.Suite
	mock   sqlmock.Sqlmock
	router *gin.Engine
}

func (s *PointsHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(s.T(), err)
	s.mock = mock

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	pointsService := services.NewPointsService(db, &config.Config{}, nil, nil)
	notificationService := services.NewNotificationService(db)
	handler := NewPointsHandler(pointsService, notificationService)

	s.router = gin.New()
	s.router.GET("/v1/points/leaderboard", handler.GetLeaderboard)
	s.router.POST("/v1/points/award", handler.AwardPoints)
}

func (s *PointsHandlerTestSuite) TestLeaderboardRanksByPoints() {
	aliceID := uuid.New()
	bobID := uuid.New()

	s.mock.ExpectQuery(`SELECT (.+) FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "display_name", "points", "total_swaps_completed", "is_admin"}).
			AddRow(uuid.New().String(), aliceID.String(), "Alice", 42, 3, false).
			AddRow(uuid.New().String(), bobID.String(), "Bob", 17, 1, false))
	s.mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).
			AddRow(aliceID.String(), "alice", "alice@example.com").
			AddRow(bobID.String(), "bob", "bob@example.com"))

	req := httptest.NewRequest("GET", "/v1/points/leaderboard", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    []struct {
			Rank        int    `json:"rank"`
			DisplayName string `json:"display_name"`
			Points      int    `json:"points"`
		} `json:"data"`
	}
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(s.T(), response.Success)
	require.Len(s.T(), response.Data, 2)
	assert.Equal(s.T(), 1, response.Data[0].Rank)
	assert.Equal(s.T(), "Alice", response.Data[0].DisplayName)
	assert.Equal(s.T(), 42, response.Data[0].Points)
	assert.Equal(s.T(), 2, response.Data[1].Rank)
	assert.Equal(s.T(), "Bob", response.Data[1].DisplayName)

	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *PointsHandlerTestSuite) TestLeaderboardEmpty() {
	s.mock.ExpectQuery(`SELECT (.+) FROM "profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "points"}))

	req := httptest.NewRequest("GET", "/v1/points/leaderboard", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *PointsHandlerTestSuite) TestAwardPointsCreditsAndNotifies() {
	userID := uuid.New()
	profileID := uuid.New()

	s.mock.ExpectBegin()
	s.mock.ExpectQuery(`SELECT (.+) FROM "profiles" WHERE user_id (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "points", "is_admin"}).
			AddRow(profileID.String(), userID.String(), 10, false))
	s.mock.ExpectQuery(`INSERT INTO "point_transactions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	s.mock.ExpectExec(`UPDATE "profiles" SET "points"`).
		WithArgs(35, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))

	body := fmt.Sprintf(`{"user_id":%q,"amount":25,"type":"bonus","description":"community cleanup"}`, userID)
	req := httptest.NewRequest("POST", "/v1/points/award", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func (s *PointsHandlerTestSuite) TestAwardPointsRejectsLedgerOwnedTypes() {
	body := fmt.Sprintf(`{"user_id":%q,"amount":25,"type":"swap_completed"}`, uuid.New())
	req := httptest.NewRequest("POST", "/v1/points/award", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	assert.NoError(s.T(), s.mock.ExpectationsWereMet())
}

func TestPointsHandlerSuite(t *testing.T) {
	suite.Run(t, new(PointsHandlerTestSuite))
}
