package feedbackValidator

import (
	"feedbackapi/middleware"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ParseDate accepts a plain calendar date or an RFC3339 timestamp.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Submit validates a public feedback submission.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name              string `json:"name"`
			Email             string `json:"email"`
			DateOfExperience  string `json:"dateOfExperience"`
			BeforeImg         string `json:"beforeImg"`
			AfterImg          string `json:"afterImg"`
			OverallExp        int    `json:"overallExp"`
			QualityOfService  int    `json:"qualityOfService"`
			Timeliness        int    `json:"timeliness"`
			Professionalism   int    `json:"professionalism"`
			CommunicationEase int    `json:"communicationEase"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body!")
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Name) == "" {
			errors["name"] = "Name is required!"
		}
		if reqData.Email == "" {
			errors["email"] = "Email is required!"
		} else if validate.Var(reqData.Email, "email") != nil {
			errors["email"] = "Invalid email!"
		}

		if reqData.DateOfExperience == "" {
			errors["dateOfExperience"] = "Date of experience is required!"
		} else if date, err := ParseDate(reqData.DateOfExperience); err != nil {
			errors["dateOfExperience"] = "Invalid date of experience!"
		} else if date.After(time.Now()) {
			errors["dateOfExperience"] = "Date of experience cannot be in the future!"
		}

		// Both images must already be uploaded
		if reqData.BeforeImg == "" || reqData.AfterImg == "" {
			errors["images"] = "Please upload both images."
		}

		// The four core ratings are required; all five must fall in [1,5],
		// so an omitted timeliness is caught by the range check.
		if reqData.OverallExp == 0 || reqData.QualityOfService == 0 ||
			reqData.Professionalism == 0 || reqData.CommunicationEase == 0 {
			errors["ratings"] = "Please fill all the required fields."
		}

		ratings := map[string]int{
			"overallExp":        reqData.OverallExp,
			"qualityOfService":  reqData.QualityOfService,
			"timeliness":        reqData.Timeliness,
			"professionalism":   reqData.Professionalism,
			"communicationEase": reqData.CommunicationEase,
		}
		for field, rating := range ratings {
			if rating < 1 || rating > 5 {
				errors[field] = "Ratings must be between 1 and 5."
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// ListFilter validates the optional query filters for the admin listing.
func ListFilter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		if dateFrom := c.Query("dateFrom"); dateFrom != "" {
			if _, err := ParseDate(dateFrom); err != nil {
				errors["dateFrom"] = "Invalid dateFrom!"
			}
		}
		if dateTo := c.Query("dateTo"); dateTo != "" {
			if _, err := ParseDate(dateTo); err != nil {
				errors["dateTo"] = "Invalid dateTo!"
			}
		}
		if overallExp := c.Query("overallExp"); overallExp != "" {
			if _, err := strconv.Atoi(overallExp); err != nil {
				errors["overallExp"] = "overallExp must be a number!"
			}
		}
		if canPublish := c.Query("canPublish"); canPublish != "" {
			if canPublish != "true" && canPublish != "false" {
				errors["canPublish"] = "canPublish must be true or false!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
