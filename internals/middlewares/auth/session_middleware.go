package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"feeportal_backend/internals/constants"
	authModel "feeportal_backend/internals/features/users/auth/model"
	authService "feeportal_backend/internals/features/users/auth/service"
	helper "feeportal_backend/internals/helpers"
)

// AdminOnly guards the /api/a group. Anything without a live admin
// session gets 401 plus a redirect hint to the admin login, before any
// handler runs.
func AdminOnly(db *gorm.DB) fiber.Handler {
	return requireRole(db, authModel.SessionRoleAdmin, constants.AdminLoginPath)
}

// StudentOnly guards the /api/s group the same way.
func StudentOnly(db *gorm.DB) fiber.Handler {
	return requireRole(db, authModel.SessionRoleStudent, constants.StudentLoginPath)
}

func requireRole(db *gorm.DB, role, loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := ExtractToken(c)
		if err != nil {
			return helper.JsonUnauthorized(c, "Login required", loginPath)
		}

		sess, err := authService.FindValidSession(db, token)
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code == fiber.StatusUnauthorized {
				return helper.JsonUnauthorized(c, fe.Message, loginPath)
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Session lookup failed")
		}
		if sess.SessionRole != role {
			return helper.JsonUnauthorized(c, "Wrong role for this area", loginPath)
		}

		c.Locals(constants.LocalsSession, sess)
		return c.Next()
	}
}

// ExtractToken reads the opaque token from Authorization: Bearer or the
// session cookie.
func ExtractToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw := ""
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = strings.TrimSpace(parts[1])
		}
	}
	if raw == "" {
		raw = c.Cookies(constants.SessionCookieName)
	}
	if raw == "" {
		return uuid.Nil, errors.New("missing session token")
	}
	return uuid.Parse(raw)
}

// SessionFromCtx pulls the session the middleware stashed in Locals.
func SessionFromCtx(c *fiber.Ctx) (authModel.SessionModel, bool) {
	sess, ok := c.Locals(constants.LocalsSession).(authModel.SessionModel)
	return sess, ok
}
