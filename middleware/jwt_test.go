package middleware_test

import (
	"cbt/config"
	"cbt/middleware"
	"cbt/models"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupConfig() {
	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}
}

func protectedApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", middleware.Protected, func(c *fiber.Ctx) error {
		claims, _ := middleware.GetClaims(c)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", claims)
	})
	app.Get("/admin-only", middleware.Protected, middleware.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "ok", nil)
	})
	return app
}

func TestTokenRoundTrip(t *testing.T) {
	setupConfig()

	user := models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}
	user.ID = 7

	token, err := middleware.GenerateJWT(&user)
	require.NoError(t, err)

	app := protectedApp()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestClaimsAreASnapshot(t *testing.T) {
	setupConfig()

	user := models.User{
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		Subjects: []models.Assignment{{Subject: "Math", Class: "SS1"}},
	}
	user.ID = 7

	token, err := middleware.GenerateJWT(&user)
	require.NoError(t, err)

	// Mutating the user record after login must not change what the
	// token carries; reassignment only takes effect on re-login.
	user.Subjects = []models.Assignment{{Subject: "English", Class: "SS2"}}

	claims := new(middleware.Claims)
	_, err = jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTKey), nil
	})
	require.NoError(t, err)

	require.Len(t, claims.Subjects, 1)
	assert.Equal(t, "Math", claims.Subjects[0].Subject)
	assert.Equal(t, "SS1", claims.Subjects[0].Class)
	assert.True(t, claims.AssignedTo("Math", "SS1"))
	assert.False(t, claims.AssignedTo("English", "SS2"))
}

func TestMissingAndMalformedToken(t *testing.T) {
	setupConfig()
	app := protectedApp()

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req = httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredTokenRejected(t *testing.T) {
	setupConfig()

	claims := middleware.Claims{
		UserID:   7,
		Username: "mrsmith",
		Role:     models.RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.AppConfig.JWTKey))
	require.NoError(t, err)

	app := protectedApp()
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGate(t *testing.T) {
	setupConfig()
	app := protectedApp()

	student := models.User{Username: "jane", Role: models.RoleStudent}
	student.ID = 2
	studentToken, err := middleware.GenerateJWT(&student)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+studentToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	admin := models.User{Username: "root", Role: models.RoleAdmin}
	admin.ID = 1
	adminToken, err := middleware.GenerateJWT(&admin)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
