package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"feeportal_backend/internals/constants"
	"feeportal_backend/internals/databases/testdb"
	academicsModel "feeportal_backend/internals/features/academics/model"
	studentRoute "feeportal_backend/internals/features/students/route"
	authService "feeportal_backend/internals/features/users/auth/service"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
	"feeportal_backend/internals/services/email"
)

func newStudentApp(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	db := testdb.Open(t)
	app := fiber.New()

	admin := app.Group("/api/a", authMiddleware.AdminOnly(db))
	studentRoute.StudentAdminRoutes(admin, db, email.NewConsoleMailer())

	studentArea := app.Group("/api/s", authMiddleware.StudentOnly(db))
	studentRoute.StudentSelfRoutes(studentArea, db)

	sess, err := authService.CreateAdminSession(db)
	require.NoError(t, err)
	return app, db, sess.SessionToken.String()
}

func request(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp, out
}

func uintStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func upsertBody(sid string) fiber.Map {
	return fiber.Map{
		"sid":      sid,
		"name":     "John Doe",
		"email":    "john@example.com",
		"total":    1000,
		"paid":     200,
		"password": "secret123",
	}
}

func TestStudentUpsertEndpoint(t *testing.T) {
	app, db, token := newStudentApp(t)

	t.Run("insert answers 201 success", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodPost, "/api/a/students/", token, upsertBody("S1"))
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, "success", body["severity"])

		data := body["data"].(map[string]any)
		assert.Equal(t, 800.0, data["balance"])
		assert.Equal(t, 200.0, data["paid_amount"])
	})

	t.Run("same sid again answers 200 info", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodPost, "/api/a/students/", token, upsertBody("S1"))
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "info", body["severity"])
		assert.Equal(t, "Student updated successfully", body["message"])
	})

	t.Run("password never appears in a response", func(t *testing.T) {
		_, body := request(t, app, fiber.MethodGet, "/api/a/students/S1", token, nil)
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
		assert.NotContains(t, string(raw), "secret123")
	})

	t.Run("short password fails validation", func(t *testing.T) {
		in := upsertBody("S2")
		in["password"] = "abc"
		resp, body := request(t, app, fiber.MethodPost, "/api/a/students/", token, in)
		require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", body["error_code"])
	})

	t.Run("unknown branch id rejected before writing", func(t *testing.T) {
		in := upsertBody("S3")
		in["branch_id"] = 9999
		resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/", token, in)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		resp, _ = request(t, app, fiber.MethodGet, "/api/a/students/S3", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("section of another branch rejected", func(t *testing.T) {
		var cse, ece academicsModel.BranchModel
		require.NoError(t, db.First(&cse, "branch_name = ?", "CSE").Error)
		require.NoError(t, db.First(&ece, "branch_name = ?", "ECE").Error)
		section := academicsModel.SectionModel{SectionBranchID: ece.BranchID, SectionName: "A"}
		require.NoError(t, db.Create(&section).Error)

		in := upsertBody("S3")
		in["branch_id"] = cse.BranchID
		in["section_id"] = section.SectionID
		resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/", token, in)
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})
}

func TestPayFeeEndpoint(t *testing.T) {
	app, _, token := newStudentApp(t)

	_, _ = request(t, app, fiber.MethodPost, "/api/a/students/", token, upsertBody("S1"))

	resp, body := request(t, app, fiber.MethodPost, "/api/a/students/S1/pay", token,
		fiber.Map{"amount": 300})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "300.00 has been paid for John Doe", body["message"])
	assert.Equal(t, 500.0, body["data"].(map[string]any)["balance"])

	t.Run("zero amount fails validation", func(t *testing.T) {
		resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/S1/pay", token,
			fiber.Map{"amount": 0})
		assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("unknown sid is a 404", func(t *testing.T) {
		resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/ghost/pay", token,
			fiber.Map{"amount": 10})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestRosterEndpoints(t *testing.T) {
	app, db, token := newStudentApp(t)

	var cse academicsModel.BranchModel
	require.NoError(t, db.First(&cse, "branch_name = ?", "CSE").Error)

	for _, sid := range []string{"S1", "S2", "S3"} {
		in := upsertBody(sid)
		if sid != "S3" {
			in["branch_id"] = cse.BranchID
		}
		resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/", token, in)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	t.Run("list with branch filter", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodGet,
			"/api/a/students/?branch_id="+uintStr(cse.BranchID), token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, body["data"].([]any), 2)
		assert.Equal(t, 2.0, body["pagination"].(map[string]any)["total"])
	})

	t.Run("requested queue starts empty", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodGet, "/api/a/students/requested", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Empty(t, body["data"])
	})

	t.Run("delete is idempotent and answers warning", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodDelete, "/api/a/students/S3", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "warning", body["severity"])

		resp, _ = request(t, app, fiber.MethodDelete, "/api/a/students/S3", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestStudentDashboard(t *testing.T) {
	app, db, adminToken := newStudentApp(t)

	resp, _ := request(t, app, fiber.MethodPost, "/api/a/students/", adminToken, upsertBody("S1"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	sess, err := authService.CreateStudentSession(db, "S1")
	require.NoError(t, err)
	token := sess.SessionToken.String()

	t.Run("me shows own balance", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodGet, "/api/s/me/", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		data := body["data"].(map[string]any)
		assert.Equal(t, "S1", data["sid"])
		assert.Equal(t, 800.0, data["balance"])
		assert.Equal(t, false, data["admin_request"])
	})

	t.Run("request admin payment raises the flag", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodPost, "/api/s/me/request-admin-payment", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["data"].(map[string]any)["admin_request"])

		// and the admin queue now shows the student
		resp, queue := request(t, app, fiber.MethodGet, "/api/a/students/requested", adminToken, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.Len(t, queue["data"].([]any), 1)
	})

	t.Run("admin token cannot enter the student area", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodGet, "/api/s/me/", adminToken, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, constants.StudentLoginPath, body["redirect"])
	})

	t.Run("student token cannot enter the admin area", func(t *testing.T) {
		resp, body := request(t, app, fiber.MethodGet, "/api/a/students/", token, nil)
		require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, constants.AdminLoginPath, body["redirect"])
	})
}
