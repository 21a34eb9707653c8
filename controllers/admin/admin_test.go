package adminController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedbackapi/config"
	adminController "feedbackapi/controllers/admin"
	"feedbackapi/database"
	"feedbackapi/middleware"
	"feedbackapi/models"
	adminRoutes "feedbackapi/routers/adminRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	config.LoadConfig()
	database.ConnectTestDb(strings.ReplaceAll(t.Name(), "/", "_"))

	app := fiber.New()
	adminRoutes.SetupAdminRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func adminToken(t *testing.T) string {
	t.Helper()
	admin := models.User{
		Uname:    fmt.Sprintf("admin-%d", time.Now().UnixNano()),
		Name:     "Admin",
		Email:    fmt.Sprintf("admin-%d@example.com", time.Now().UnixNano()),
		Role:     models.RoleAdmin,
		Password: "not-a-real-hash",
	}
	require.NoError(t, database.Database.Db.Create(&admin).Error)

	token, err := middleware.GenerateJWT(admin.ID, admin.Role)
	require.NoError(t, err)
	return token
}

func registerPayload(uname string) map[string]interface{} {
	return map[string]interface{}{
		"uname":    uname,
		"name":     "New User",
		"email":    uname + "@example.com",
		"password": "supersecret1",
	}
}

func TestRegisterValidationAndConflicts(t *testing.T) {
	app := setupApp(t)

	// Shape errors
	bad := registerPayload("shorty")
	bad["email"] = "nope"
	resp, _ := doJSON(t, app, fiber.MethodPost, "/admin/register", "", bad)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	bad = registerPayload("shorty")
	bad["password"] = "short"
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/register", "", bad)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// First registration succeeds with the user role and no password leak
	resp, env := doJSON(t, app, fiber.MethodPost, "/admin/register", "", registerPayload("jane"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created adminController.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "supersecret1")

	// Same email, different username
	dup := registerPayload("janet")
	dup["email"] = "jane@example.com"
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/register", "", dup)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	// Same username, different email
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/register", "", registerPayload("jane"))
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	database.Database.Db.Model(&models.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/admin/register", "", registerPayload("jane"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Missing fields
	resp, _ = doJSON(t, app, fiber.MethodPost, "/admin/login", "", map[string]interface{}{"uname": "jane"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Unknown user and wrong password answer alike
	resp, env := doJSON(t, app, fiber.MethodPost, "/admin/login", "", map[string]interface{}{"uname": "ghost", "password": "supersecret1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	unknownErr := env.Error

	resp, env = doJSON(t, app, fiber.MethodPost, "/admin/login", "", map[string]interface{}{"uname": "jane", "password": "wrongsecret1"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, unknownErr, env.Error)

	// Success returns a token and the user projection
	resp, env = doJSON(t, app, fiber.MethodPost, "/admin/login", "", map[string]interface{}{"uname": "jane", "password": "supersecret1"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		Token string                      `json:"token"`
		User  adminController.UserResponse `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "jane", data.User.Uname)
}

func TestUpdateUserRole(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	_, env := doJSON(t, app, fiber.MethodPost, "/admin/register", "", registerPayload("jane"))
	var created adminController.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))

	target := fmt.Sprintf("/admin/users/%d/role", created.ID)

	// Unknown role is rejected and the record stays untouched
	resp, _ := doJSON(t, app, fiber.MethodPatch, target, token, map[string]interface{}{"role": "superuser"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var stored models.User
	require.NoError(t, database.Database.Db.First(&stored, created.ID).Error)
	assert.Equal(t, models.RoleUser, stored.Role)

	// Promotion works
	resp, env = doJSON(t, app, fiber.MethodPatch, target, token, map[string]interface{}{"role": "admin"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var updated adminController.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.RoleAdmin, updated.Role)

	// Missing user
	resp, _ = doJSON(t, app, fiber.MethodPatch, "/admin/users/999999/role", token, map[string]interface{}{"role": "user"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestListUsersSortedAndClean(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	for _, name := range []string{"Zoe", "Adam", "Mia"} {
		user := models.User{
			Uname:    strings.ToLower(name),
			Name:     name,
			Email:    strings.ToLower(name) + "@example.com",
			Role:     models.RoleUser,
			Password: "hash-" + name,
		}
		require.NoError(t, database.Database.Db.Create(&user).Error)
	}

	resp, env := doJSON(t, app, fiber.MethodGet, "/admin/users", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var users []adminController.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &users))
	require.Len(t, users, 4) // the three seeded users plus the admin

	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	assert.Equal(t, []string{"Adam", "Admin", "Mia", "Zoe"}, names)

	assert.NotContains(t, string(env.Data), "hash-")
}

func TestDashboardStats(t *testing.T) {
	app := setupApp(t)
	token := adminToken(t)

	// Admin-only
	resp, _ := doJSON(t, app, fiber.MethodGet, "/admin/dashboard", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	now := time.Now()
	for i, ratings := range [][5]int{{5, 4, 5, 3, 5}, {3, 3, 3, 3, 3}} {
		feedback := models.Feedback{
			Name:              fmt.Sprintf("Customer %d", i),
			Email:             fmt.Sprintf("c%d@example.com", i),
			DateOfExperience:  now.AddDate(0, 0, -3),
			DateOfFeedback:    now,
			BeforeImg:         "https://bucket.example.com/feedback/b.jpg",
			AfterImg:          "https://bucket.example.com/feedback/a.jpg",
			OverallExp:        ratings[0],
			QualityOfService:  ratings[1],
			Timeliness:        ratings[2],
			Professionalism:   ratings[3],
			CommunicationEase: ratings[4],
			CanPublish:        i == 0,
		}
		feedback.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, database.Database.Db.Create(&feedback).Error)
	}

	resp, env := doJSON(t, app, fiber.MethodGet, "/admin/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var data struct {
		TotalFeedback     int64                           `json:"totalFeedback"`
		PublishedFeedback int64                           `json:"publishedFeedback"`
		AverageRatings    adminController.AverageRatings  `json:"averageRatings"`
		RecentFeedback    []adminController.RecentFeedback `json:"recentFeedback"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.EqualValues(t, 2, data.TotalFeedback)
	assert.EqualValues(t, 1, data.PublishedFeedback)
	assert.InDelta(t, 4.0, data.AverageRatings.OverallExp, 0.001)
	assert.InDelta(t, 3.5, data.AverageRatings.QualityOfService, 0.001)
	assert.InDelta(t, 4.0, data.AverageRatings.Timeliness, 0.001)
	assert.InDelta(t, 3.0, data.AverageRatings.Professionalism, 0.001)
	assert.InDelta(t, 4.0, data.AverageRatings.CommunicationEase, 0.001)

	require.Len(t, data.RecentFeedback, 2)
	assert.Equal(t, "Customer 1", data.RecentFeedback[0].Name) // newest first
}
