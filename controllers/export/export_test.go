package exportController_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedbackapi/config"
	"feedbackapi/database"
	"feedbackapi/middleware"
	"feedbackapi/models"
	exportRoutes "feedbackapi/routers/exportRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()
	database.ConnectTestDb(strings.ReplaceAll(t.Name(), "/", "_"))

	app := fiber.New()
	exportRoutes.SetupExportRoutes(app)
	return app
}

func makeToken(t *testing.T, role string) string {
	t.Helper()
	user := models.User{
		Uname:    fmt.Sprintf("%s-%d", role, time.Now().UnixNano()),
		Name:     "Exporter",
		Email:    fmt.Sprintf("%s-%d@example.com", role, time.Now().UnixNano()),
		Role:     role,
		Password: "not-a-real-hash",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	require.NoError(t, err)
	return token
}

func seedFeedback(t *testing.T, name string, ratings [5]int, submitted time.Time) models.Feedback {
	t.Helper()
	feedback := models.Feedback{
		Name:              name,
		Email:             strings.ToLower(name) + "@example.com",
		Phone:             "5550001111",
		DateOfExperience:  time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		DateOfFeedback:    submitted,
		BeforeImg:         "https://bucket.example.com/feedback/b.jpg",
		AfterImg:          "https://bucket.example.com/feedback/a.jpg",
		OverallExp:        ratings[0],
		QualityOfService:  ratings[1],
		Timeliness:        ratings[2],
		Professionalism:   ratings[3],
		CommunicationEase: ratings[4],
		WhatLikedMost:     "Fast work",
		CanPublish:        true,
	}
	require.NoError(t, database.Database.Db.Create(&feedback).Error)
	return feedback
}

func fetchExport(t *testing.T, app *fiber.App, query, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, "/export"+query, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestExportRequiresAdmin(t *testing.T) {
	app := setupApp(t)

	resp := fetchExport(t, app, "", "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = fetchExport(t, app, "", makeToken(t, models.RoleUser))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	app := setupApp(t)

	resp := fetchExport(t, app, "?format=pdf", makeToken(t, models.RoleAdmin))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportCSV(t *testing.T) {
	app := setupApp(t)
	token := makeToken(t, models.RoleAdmin)

	older := seedFeedback(t, "Older", [5]int{3, 3, 3, 3, 3}, time.Date(2024, 5, 11, 10, 0, 0, 0, time.UTC))
	seedFeedback(t, "Newer", [5]int{5, 4, 5, 3, 5}, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	resp := fetchExport(t, app, "?format=csv", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "feedback-export.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(string(body), "\n")
	require.Len(t, lines, 3) // header plus two records

	assert.Equal(t,
		`"ID","Name","Email","Phone","Date of Experience","Date of Feedback","Overall Experience","Quality of Service","Timeliness","Professionalism","Communication Ease","What Did You Like Most","Suggestions for Improvement","Recommendation","Can Publish","Follow Up","Calculated Overall Rating"`,
		lines[0])

	// Newest feedback first, mean of {5,4,5,3,5} rendered with two decimals
	assert.Contains(t, lines[1], `"Newer"`)
	assert.Contains(t, lines[1], `"4.40"`)
	assert.Contains(t, lines[1], `"2024-06-01"`)
	assert.Contains(t, lines[1], `"Yes"`)

	assert.Contains(t, lines[2], `"Older"`)
	assert.Contains(t, lines[2], `"3.00"`)
	assert.Contains(t, lines[2], fmt.Sprintf(`"%d"`, older.ID))
}

func TestExportCSVEscapesQuotes(t *testing.T) {
	app := setupApp(t)
	token := makeToken(t, models.RoleAdmin)

	feedback := seedFeedback(t, "Quoter", [5]int{4, 4, 4, 4, 4}, time.Now())
	feedback.WhatLikedMost = `They said "excellent"`
	require.NoError(t, database.Database.Db.Save(&feedback).Error)

	resp := fetchExport(t, app, "", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"They said ""excellent"""`)
}

func TestExportExcel(t *testing.T) {
	app := setupApp(t)
	token := makeToken(t, models.RoleAdmin)

	seedFeedback(t, "Newer", [5]int{5, 4, 5, 3, 5}, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))

	resp := fetchExport(t, app, "?format=excel", token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "feedback-export.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer workbook.Close()

	header, err := workbook.GetCellValue("Feedback", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	name, err := workbook.GetCellValue("Feedback", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Newer", name)

	// Column Q is the seventeenth: Calculated Overall Rating
	rating, err := workbook.GetCellValue("Feedback", "Q2")
	require.NoError(t, err)
	assert.Equal(t, "4.40", rating)
}
