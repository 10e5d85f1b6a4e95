package controller

import (
	"crypto/subtle"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"feeportal_backend/internals/configs"
	"feeportal_backend/internals/constants"
	authDTO "feeportal_backend/internals/features/users/auth/dto"
	authHelper "feeportal_backend/internals/features/users/auth/helper"
	authModel "feeportal_backend/internals/features/users/auth/model"
	authService "feeportal_backend/internals/features/users/auth/service"
	studentModel "feeportal_backend/internals/features/students/model"
	helper "feeportal_backend/internals/helpers"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* =========================================================
   ADMIN LOGIN
========================================================= */

// AdminLogin checks the configured admin credential. The credential pair
// comes from env (never source), see configs.LoadEnv.
func (ctl *AuthController) AdminLogin(c *fiber.Ctx) error {
	var input authDTO.AdminLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Username = strings.TrimSpace(input.Username)
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	if configs.AdminPasswordHash == "" {
		log.Println("[ERROR] admin login attempted but ADMIN_PASSWORD_HASH is not configured")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Admin credential not configured")
	}

	// Check both halves before answering so a bad username costs the
	// same as a bad password.
	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(configs.AdminUsername)) == 1
	passwordOK := authHelper.CheckPasswordHash(configs.AdminPasswordHash, input.Password) == nil
	if !usernameOK || !passwordOK {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid admin credentials")
	}

	sess, err := authService.CreateAdminSession(ctl.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to open session")
	}
	setSessionCookie(c, sess)

	return helper.JsonOK(c, "Admin login successful", authDTO.LoginResponse{
		Token:     sess.SessionToken.String(),
		Role:      constants.RoleAdmin,
		ExpiresAt: sess.SessionExpiresAt.Format(time.RFC3339),
	})
}

/* =========================================================
   STUDENT LOGIN
========================================================= */

func (ctl *AuthController) StudentLogin(c *fiber.Ctx) error {
	var input authDTO.StudentLoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.SID = strings.TrimSpace(input.SID)
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	var student studentModel.StudentModel
	err := ctl.DB.First(&student, "student_sid = ?", input.SID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid student ID or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Login failed")
	}
	if err := authHelper.CheckPasswordHash(student.StudentPassword, input.Password); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid student ID or password")
	}

	sess, err := authService.CreateStudentSession(ctl.DB, student.StudentSID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to open session")
	}
	setSessionCookie(c, sess)

	return helper.JsonOK(c, "Student login successful", authDTO.LoginResponse{
		Token:     sess.SessionToken.String(),
		Role:      constants.RoleStudent,
		SID:       student.StudentSID,
		ExpiresAt: sess.SessionExpiresAt.Format(time.RFC3339),
	})
}

/* =========================================================
   LOGOUT
========================================================= */

// Logout clears the session regardless of prior state. No token, wrong
// token, already-logged-out: all end anonymous, so all succeed.
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	if token, err := authMiddleware.ExtractToken(c); err == nil {
		_ = authService.DeleteSession(ctl.DB, token)
	}
	clearSessionCookie(c)
	return helper.JsonOK(c, "Logged out successfully", nil)
}

/* ======== cookie helpers ======== */

func setSessionCookie(c *fiber.Ctx, sess authModel.SessionModel) {
	c.Cookie(&fiber.Cookie{
		Name:     constants.SessionCookieName,
		Value:    sess.SessionToken.String(),
		Expires:  sess.SessionExpiresAt,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
