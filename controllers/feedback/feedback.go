package feedbackController

import (
	"feedbackapi/database"
	"feedbackapi/middleware"
	"feedbackapi/models"
	"feedbackapi/utils"
	feedbackValidator "feedbackapi/validators/feedback"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FilterCriteria enumerates the optional listing filters. Each set field
// maps to exactly one query predicate.
type FilterCriteria struct {
	Name       string
	Email      string
	DateFrom   *time.Time
	DateTo     *time.Time
	OverallExp *int
	CanPublish *bool
}

// Apply adds one predicate per set field. Substring matches are
// case-insensitive; the date bounds compose independently.
func (f FilterCriteria) Apply(db *gorm.DB) *gorm.DB {
	if f.Name != "" {
		db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Email != "" {
		db = db.Where("LOWER(email) LIKE ?", "%"+strings.ToLower(f.Email)+"%")
	}
	if f.DateFrom != nil {
		db = db.Where("date_of_experience >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		db = db.Where("date_of_experience <= ?", *f.DateTo)
	}
	if f.OverallExp != nil {
		db = db.Where("overall_exp >= ?", *f.OverallExp)
	}
	if f.CanPublish != nil {
		db = db.Where("can_publish = ?", *f.CanPublish)
	}
	return db
}

func Submit(c *fiber.Ctx) error {
	reqData := new(struct {
		Name                  string `json:"name"`
		Email                 string `json:"email"`
		Phone                 string `json:"phone"`
		DateOfExperience      string `json:"dateOfExperience"`
		BeforeImg             string `json:"beforeImg"`
		AfterImg              string `json:"afterImg"`
		OverallExp            int    `json:"overallExp"`
		QualityOfService      int    `json:"qualityOfService"`
		Timeliness            int    `json:"timeliness"`
		Professionalism       int    `json:"professionalism"`
		CommunicationEase     int    `json:"communicationEase"`
		WhatLikedMost         string `json:"whatLikedMost"`
		SuggestionImprovement string `json:"suggestionImprovement"`
		Recommendation        string `json:"recommendation"`
		CanPublish            *bool  `json:"canPublish"`
		FollowUp              *bool  `json:"followUp"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	// Already validated by the Submit validator
	dateOfExperience, err := feedbackValidator.ParseDate(reqData.DateOfExperience)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid date of experience!")
	}

	canPublish := false
	if reqData.CanPublish != nil {
		canPublish = *reqData.CanPublish
	}
	followUp := true
	if reqData.FollowUp != nil {
		followUp = *reqData.FollowUp
	}

	feedback := models.Feedback{
		Name:                  reqData.Name,
		Email:                 reqData.Email,
		Phone:                 reqData.Phone,
		DateOfExperience:      dateOfExperience,
		DateOfFeedback:        time.Now(),
		BeforeImg:             reqData.BeforeImg,
		AfterImg:              reqData.AfterImg,
		OverallExp:            reqData.OverallExp,
		QualityOfService:      reqData.QualityOfService,
		Timeliness:            reqData.Timeliness,
		Professionalism:       reqData.Professionalism,
		CommunicationEase:     reqData.CommunicationEase,
		WhatLikedMost:         reqData.WhatLikedMost,
		SuggestionImprovement: reqData.SuggestionImprovement,
		Recommendation:        reqData.Recommendation,
		CanPublish:            canPublish,
		FollowUp:              followUp,
	}

	if err := database.Database.Db.Create(&feedback).Error; err != nil {
		log.Printf("Error saving feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to submit feedback!")
	}

	go utils.SendFeedbackNotification(feedback)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Feedback submitted successfully.", feedback)
}

func GetAll(c *fiber.Ctx) error {
	criteria := FilterCriteria{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}

	// Query formats already validated by the ListFilter validator
	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if date, err := feedbackValidator.ParseDate(dateFrom); err == nil {
			criteria.DateFrom = &date
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if date, err := feedbackValidator.ParseDate(dateTo); err == nil {
			criteria.DateTo = &date
		}
	}
	if overallExp := c.Query("overallExp"); overallExp != "" {
		if min, err := strconv.Atoi(overallExp); err == nil {
			criteria.OverallExp = &min
		}
	}
	if canPublish := c.Query("canPublish"); canPublish != "" {
		published := canPublish == "true"
		criteria.CanPublish = &published
	}

	// Non-admins only ever see published feedback, whatever they asked for
	if role, _ := c.Locals("userRole").(string); role != models.RoleAdmin {
		published := true
		criteria.CanPublish = &published
	}

	var feedback []models.Feedback
	if err := criteria.Apply(database.Database.Db).
		Order("created_at desc").
		Find(&feedback).Error; err != nil {
		log.Printf("Error fetching feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch feedback!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully.", feedback)
}

func GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID!")
	}

	var feedback models.Feedback
	if err := database.Database.Db.First(&feedback, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Feedback not found!")
	}

	// Users can only see published feedback
	if role, _ := c.Locals("userRole").(string); role != models.RoleAdmin && !feedback.CanPublish {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "You are not authorized to view this feedback!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully.", feedback)
}

func Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid feedback ID!")
	}

	reqData := new(struct {
		CanPublish *bool `json:"canPublish"`
		FollowUp   *bool `json:"followUp"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
	}

	db := database.Database.Db

	var feedback models.Feedback
	if err := db.First(&feedback, id).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Feedback not found!")
	}

	// Only the two moderation fields are mutable after submission
	if reqData.CanPublish != nil {
		feedback.CanPublish = *reqData.CanPublish
	}
	if reqData.FollowUp != nil {
		feedback.FollowUp = *reqData.FollowUp
	}

	if err := db.Save(&feedback).Error; err != nil {
		log.Printf("Error updating feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update feedback!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback updated successfully.", feedback)
}

func GetPublished(c *fiber.Ctx) error {
	var feedback []models.Feedback
	if err := database.Database.Db.
		Where("can_publish = ?", true).
		Order("created_at desc").
		Find(&feedback).Error; err != nil {
		log.Printf("Error fetching published feedback: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to fetch feedback!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Feedback fetched successfully.", feedback)
}
