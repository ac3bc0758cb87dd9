package courseController_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"papyrus/config"
	"papyrus/database"
	"papyrus/middleware"
	"papyrus/models"
	courseRoutes "papyrus/routers/courseRoutes"
	"papyrus/storage"
	"papyrus/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mailRecorder struct {
	mu   sync.Mutex
	sent [][]string
}

func (m *mailRecorder) Send(to []string, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

type blobRecorder struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
}

func (b *blobRecorder) Save(_ context.Context, key string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.saved == nil {
		b.saved = make(map[string][]byte)
	}
	b.saved[key] = data
	return "/uploads/" + key, nil
}

func (b *blobRecorder) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, key)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *blobRecorder) {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:        "5000",
		ClientURL:   "http://localhost:3000",
		JWTKey:      "test-secret",
		SaltRound:   4,
		MaxUploadMB: 10,
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.CourseGrant{}, &models.Comment{}))
	database.Database = database.DbInstance{Db: db}

	utils.Mail = &mailRecorder{}
	blob := &blobRecorder{}
	storage.Blob = blob

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	return app, db, blob
}

func createUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Email)
	require.NoError(t, err)
	return user, token
}

func createCourse(t *testing.T, db *gorm.DB, ownerID uint, shared bool) models.Course {
	t.Helper()

	course := models.Course{
		Title:      "Algebra",
		Category:   "Math",
		FileName:   "algebra.pdf",
		FilePath:   "/uploads/algebra.pdf",
		StorageKey: "algebra.pdf",
		FileSize:   1024,
		OwnerID:    ownerID,
		Shared:     shared,
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
