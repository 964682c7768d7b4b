package middleware

import (
	"cbt/config"
	"cbt/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is the identity minted at login. It is a point-in-time snapshot
// of the user record: role or assignment changes after login only take
// effect on re-login.
type Claims struct {
	UserID           uint                `json:"userId"`
	Username         string              `json:"username"`
	Role             string              `json:"role"`
	Class            string              `json:"class"`
	Subjects         []models.Assignment `json:"subjects"`
	EnrolledSubjects []models.Assignment `json:"enrolledSubjects"`
	jwt.RegisteredClaims
}

// AssignedTo reports whether a teacher identity may act on (subject, class).
// Admins may act on everything.
func (cl *Claims) AssignedTo(subject, class string) bool {
	if cl.Role == models.RoleAdmin {
		return true
	}
	return models.ContainsAssignment(cl.Subjects, subject, class)
}

// EnrolledIn reports whether a student identity is enrolled in (subject, class).
func (cl *Claims) EnrolledIn(subject, class string) bool {
	return models.ContainsAssignment(cl.EnrolledSubjects, subject, class)
}

// Assignments returns the (subject, class) pairs the identity is scoped
// to for list filtering: teacher assignments or student enrollments.
func (cl *Claims) Assignments() []models.Assignment {
	if cl.Role == models.RoleStudent {
		return cl.EnrolledSubjects
	}
	return cl.Subjects
}

// GenerateJWT issues a signed token for the user, valid for one hour
func GenerateJWT(user *models.User) (string, error) {
	claims := Claims{
		UserID:           user.ID,
		Username:         user.Username,
		Role:             user.Role,
		Class:            user.Class,
		Subjects:         user.Subjects,
		EnrolledSubjects: user.EnrolledSubjects,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// Protected is a middleware that checks for a valid JWT token in the request
func Protected(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	// The token should be prefixed with "Bearer "
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid or expired token", nil)
	}

	if claims.UserID == 0 {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid token payload", nil)
	}

	c.Locals("claims", claims)
	c.Locals("userId", claims.UserID)
	c.Locals("userRole", claims.Role)

	return c.Next()
}

// GetClaims returns the identity attached by Protected.
func GetClaims(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals("claims").(*Claims)
	return claims, ok
}

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusBadRequest, false, "Validation failed!", errors)
}
