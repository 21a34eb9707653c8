package adminController

import (
	"feedbackapi/config"
	"feedbackapi/database"
	"feedbackapi/middleware"
	"feedbackapi/models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// UserResponse is the password-free projection returned by every user-facing
// admin endpoint.
type UserResponse struct {
	ID    uint   `json:"id"`
	Uname string `json:"uname"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Uname: user.Uname,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Uname    string `json:"uname"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db

	// A single answer for unknown username and wrong password
	var user models.User
	if err := db.Where("uname = ?", reqData.Uname).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password!")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid username or password!")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Error signing token: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"token": token,
		"user":  toUserResponse(user),
	})
}

func Register(c *fiber.Ctx) error {
	reqData := new(struct {
		Uname    string `json:"uname"`
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db

	// Username and email are each globally unique
	if err := db.Where("uname = ? OR email = ?", reqData.Uname, reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusConflict, "User already exists!")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process your request!")
	}

	newUser := models.User{
		Uname:    reqData.Uname,
		Name:     reqData.Name,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to register user!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", toUserResponse(newUser))
}

// AverageRatings carries the per-field averages across all feedback.
type AverageRatings struct {
	OverallExp        float64 `json:"overallExp"`
	QualityOfService  float64 `json:"qualityOfService"`
	Timeliness        float64 `json:"timeliness"`
	Professionalism   float64 `json:"professionalism"`
	CommunicationEase float64 `json:"communicationEase"`
}

// RecentFeedback is the dashboard summary row, omitting free text and images.
type RecentFeedback struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	OverallExp     int       `json:"overallExp"`
	DateOfFeedback time.Time `json:"dateOfFeedback"`
	CanPublish     bool      `json:"canPublish"`
}

func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalFeedback, publishedFeedback int64
	if err := db.Model(&models.Feedback{}).Count(&totalFeedback).Error; err != nil {
		log.Printf("Error counting feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats!")
	}
	db.Model(&models.Feedback{}).Where("can_publish = ?", true).Count(&publishedFeedback)

	var averageRatings AverageRatings
	if err := db.Model(&models.Feedback{}).
		Select("COALESCE(AVG(overall_exp), 0) AS overall_exp, " +
			"COALESCE(AVG(quality_of_service), 0) AS quality_of_service, " +
			"COALESCE(AVG(timeliness), 0) AS timeliness, " +
			"COALESCE(AVG(professionalism), 0) AS professionalism, " +
			"COALESCE(AVG(communication_ease), 0) AS communication_ease").
		Scan(&averageRatings).Error; err != nil {
		log.Printf("Error aggregating ratings: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats!")
	}

	var recentFeedback []RecentFeedback
	if err := db.Model(&models.Feedback{}).
		Select("id, name, email, overall_exp, date_of_feedback, can_publish").
		Order("created_at desc").
		Limit(10).
		Find(&recentFeedback).Error; err != nil {
		log.Printf("Error fetching recent feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch dashboard stats!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully.", fiber.Map{
		"totalFeedback":     totalFeedback,
		"publishedFeedback": publishedFeedback,
		"averageRatings":    averageRatings,
		"recentFeedback":    recentFeedback,
	})
}

func ListUsers(c *fiber.Ctx) error {
	var users []UserResponse
	if err := database.Database.Db.Model(&models.User{}).
		Select("id, uname, name, email, role").
		Order("name asc").
		Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch users!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully.", users)
}

func UpdateUserRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid user ID!")
	}

	role, _ := c.Locals("validatedRole").(string)

	db := database.Database.Db

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "User not found!")
	}

	user.Role = role
	if err := db.Save(&user).Error; err != nil {
		log.Printf("Error updating user role: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update user role!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated successfully.", toUserResponse(user))
}
