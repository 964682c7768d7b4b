// Package testutils wires an isolated application instance around an
// in-memory SQLite store so handler tests can run without PostgreSQL.
package testutils

import (
	"bytes"
	"cbt/config"
	"cbt/database"
	"cbt/middleware"
	"cbt/models"
	analyticsRoutes "cbt/routers/analyticsRoutes"
	authRoutes "cbt/routers/authRoutes"
	cheatLogRoutes "cbt/routers/cheatLogRoutes"
	classRoutes "cbt/routers/classRoutes"
	examRoutes "cbt/routers/examRoutes"
	questionRoutes "cbt/routers/questionRoutes"
	resultRoutes "cbt/routers/resultRoutes"
	testRoutes "cbt/routers/testRoutes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Envelope mirrors the JSON response shape used by every handler.
type Envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Decode unmarshals the data portion of the envelope into out.
func (e *Envelope) Decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, out))
}

// SetupApp swaps in an in-memory store and returns an app with every
// route registered. Each test gets its own database.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:         "0",
		JWTKey:       "test-secret",
		SaltRound:    bcrypt.MinCost,
		PassMark:     50,
		AllowRetakes: true,
		UploadDir:    t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.UseDb(db)

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	classRoutes.SetupClassRoutes(app)
	examRoutes.SetupExamRoutes(app)
	questionRoutes.SetupQuestionRoutes(app)
	testRoutes.SetupTestRoutes(app)
	resultRoutes.SetupResultRoutes(app)
	analyticsRoutes.SetupAnalyticsRoutes(app)
	cheatLogRoutes.SetupCheatLogRoutes(app)

	return app
}

// CreateUser stores a user with the given plaintext password hashed.
func CreateUser(t *testing.T, user models.User, password string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user.Password = string(hash)

	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

// TokenFor mints a token for the user's current state.
func TokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(&user)
	require.NoError(t, err)
	return token
}

// Request performs a JSON request against the app and decodes the
// response envelope when the response is JSON.
func Request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
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

	var env Envelope
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}

	return resp, env
}

// ReadBody drains and returns the raw response body. Used by export
// tests, where success responses are attachments rather than JSON.
func ReadBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
