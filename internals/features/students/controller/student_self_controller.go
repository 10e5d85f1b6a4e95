package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	studentDTO "feeportal_backend/internals/features/students/dto"
	studentService "feeportal_backend/internals/features/students/service"
	helper "feeportal_backend/internals/helpers"
	authMiddleware "feeportal_backend/internals/middlewares/auth"
)

// StudentSelfController backs the student dashboard: own record and the
// manual-settlement request.
type StudentSelfController struct {
	DB *gorm.DB
}

func NewStudentSelfController(db *gorm.DB) *StudentSelfController {
	return &StudentSelfController{DB: db}
}

func (ctl *StudentSelfController) Me(c *fiber.Ctx) error {
	sess, ok := authMiddleware.SessionFromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Session missing")
	}

	student, err := studentService.GetStudent(ctl.DB, sess.SID(), true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Profile fetched", studentDTO.ToStudentResponse(&student))
}

func (ctl *StudentSelfController) RequestAdminPayment(c *fiber.Ctx) error {
	sess, ok := authMiddleware.SessionFromCtx(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Session missing")
	}

	student, err := studentService.RequestManualPayment(ctl.DB, sess.SID())
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Admin payment request sent", studentDTO.ToStudentResponse(&student))
}
