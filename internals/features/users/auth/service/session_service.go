package service

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feeportal_backend/internals/configs"
	authModel "feeportal_backend/internals/features/users/auth/model"
)

/* =========================================================
   Session store

   One row per logged-in client. The token handed to the client is
   opaque; role + identity only exist server-side.
========================================================= */

// CreateAdminSession opens an admin session.
func CreateAdminSession(db *gorm.DB) (authModel.SessionModel, error) {
	return createSession(db, authModel.SessionRoleAdmin, nil)
}

// CreateStudentSession opens a session bound to one student sid.
func CreateStudentSession(db *gorm.DB, sid string) (authModel.SessionModel, error) {
	return createSession(db, authModel.SessionRoleStudent, &sid)
}

func createSession(db *gorm.DB, role string, sid *string) (authModel.SessionModel, error) {
	sess := authModel.SessionModel{
		SessionToken:      uuid.New(),
		SessionRole:       role,
		SessionStudentSID: sid,
		SessionExpiresAt:  time.Now().Add(configs.SessionTTL),
	}
	if err := db.Create(&sess).Error; err != nil {
		return authModel.SessionModel{}, err
	}
	return sess, nil
}

// FindValidSession loads a session by token, rejecting unknown and
// expired tokens. Expired rows are deleted on sight.
func FindValidSession(db *gorm.DB, token uuid.UUID) (authModel.SessionModel, error) {
	var sess authModel.SessionModel
	err := db.First(&sess, "session_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sess, fiber.NewError(fiber.StatusUnauthorized, "Session not found")
		}
		return sess, err
	}
	if sess.IsExpired(time.Now()) {
		_ = db.Delete(&authModel.SessionModel{}, "session_token = ?", token).Error
		return sess, fiber.NewError(fiber.StatusUnauthorized, "Session expired")
	}
	return sess, nil
}

// DeleteSession ends a session. Unknown tokens are a no-op so logout
// always succeeds.
func DeleteSession(db *gorm.DB, token uuid.UUID) error {
	return db.Delete(&authModel.SessionModel{}, "session_token = ?", token).Error
}

// DeleteSessionsForStudent drops every live session of one student,
// used when an admin deletes the account.
func DeleteSessionsForStudent(db *gorm.DB, sid string) error {
	return db.Delete(&authModel.SessionModel{}, "session_student_sid = ?", sid).Error
}
