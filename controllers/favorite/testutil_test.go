package favoriteController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"papyrus/config"
	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	"papyrus/routers/favoriteRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		ClientURL: "http://localhost:3000",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.CourseGrant{}, &models.Comment{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	favoriteRoutes.SetupFavoriteRoutes(app)

	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
	}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)

	return user, token
}

func createCourse(t *testing.T, db *gorm.DB, ownerID uint, title string) models.Course {
	t.Helper()

	course := models.Course{
		Title:    title,
		Category: models.DefaultCategory,
		FileName: "file.pdf",
		FilePath: "/uploads/file.pdf",
		OwnerID:  ownerID,
	}
	require.NoError(t, db.Create(&course).Error)

	return course
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string) (*http.Response, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body apiResponse
	require.NoError(t, json.Unmarshal(raw, &body), "body: %s", raw)

	return resp, body
}

func favoritePath(courseID uint) string {
	return fmt.Sprintf("/api/favorites/%d", courseID)
}
