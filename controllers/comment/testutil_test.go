package commentController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"papyrus/config"
	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	commentRoutes "papyrus/routers/commentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		ClientURL: "http://localhost:3000",
		JWTKey:    "test-secret",
		SaltRound: 4,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.CourseGrant{}, &models.Comment{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	commentRoutes.SetupCommentRoutes(app)
	return app, db
}

func createUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, db *gorm.DB, ownerID uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:    "Algebra",
		FileName: "algebra.pdf",
		FilePath: "/uploads/algebra.pdf",
		FileSize: 1024,
		OwnerID:  ownerID,
		Shared:   true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out apiResponse
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp, out
}
