package middleware

import (
	"feedbackapi/config"
	"feedbackapi/database"
	"feedbackapi/models"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token embedding the user id and role, valid 24h
func GenerateJWT(userID uint, role string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware checks for a valid bearer token and resolves it to a user.
// A token whose user no longer exists is rejected.
func JWTMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Access token required!")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid Authorization header format!")
	}

	tokenString := authHeader[len("Bearer "):]

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})

	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token!")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["id"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token payload!")
	}

	userID := uint(claims["id"].(float64)) // JWT numeric claims decode as float64

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "User not found!")
	}

	c.Locals("userId", user.ID)
	c.Locals("userRole", user.Role)
	c.Locals("user", user)

	return c.Next()
}

// AdminOnlyMiddleware gates a route to authenticated admins. Must run after
// JWTMiddleware.
func AdminOnlyMiddleware(c *fiber.Ctx) error {
	role, ok := c.Locals("userRole").(string)
	if !ok {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Authentication required!")
	}

	if role != models.RoleAdmin {
		return ErrorResponse(c, fiber.StatusForbidden, "Access denied! Admin only.")
	}

	return c.Next()
}

// JsonResponse writes the uniform success envelope.
func JsonResponse(c *fiber.Ctx, statusCode int, success bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": success,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse writes the uniform failure envelope.
func ErrorResponse(c *fiber.Ctx, statusCode int, errMsg string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"success": false,
		"error":   errMsg,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "Validation failed!",
		"data":    errors,
	})
}
