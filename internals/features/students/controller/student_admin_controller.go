package controller

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsModel "feeportal_backend/internals/features/academics/model"
	studentDTO "feeportal_backend/internals/features/students/dto"
	studentService "feeportal_backend/internals/features/students/service"
	helper "feeportal_backend/internals/helpers"
	"feeportal_backend/internals/services/email"
)

type StudentAdminController struct {
	DB     *gorm.DB
	Mailer email.Mailer
}

func NewStudentAdminController(db *gorm.DB, mailer email.Mailer) *StudentAdminController {
	return &StudentAdminController{DB: db, Mailer: mailer}
}

/* =========================================================
   UPSERT (insert-or-update by sid)
========================================================= */

func (ctl *StudentAdminController) Upsert(c *fiber.Ctx) error {
	var input studentDTO.UpsertStudentRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}
	if err := ctl.checkPlacement(input.BranchID, input.SectionID); err != nil {
		return helper.FromFiberError(c, err)
	}

	student, outcome, err := studentService.UpsertStudent(ctl.DB, input)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	resp := studentDTO.ToStudentResponse(&student)
	if outcome == studentService.OutcomeInserted {
		ctl.Mailer.Send(email.Message{
			ToName:  student.StudentName,
			ToAddr:  student.StudentEmail,
			Subject: "Your fee portal account",
			Body: fmt.Sprintf(
				"Hello %s,\n\nYour fee account %s has been registered. Total fee: %.2f, outstanding: %.2f.\n",
				student.StudentName, student.StudentSID, student.StudentTotal, student.StudentBalance),
		})
		return helper.JsonCreated(c, "Student added successfully", resp)
	}
	return helper.JsonUpdated(c, "Student updated successfully", resp)
}

// checkPlacement rejects unknown branch/section ids and sections that do
// not belong to the given branch, before any write happens.
func (ctl *StudentAdminController) checkPlacement(branchID, sectionID *uint) error {
	if branchID != nil {
		var branch academicsModel.BranchModel
		if err := ctl.DB.First(&branch, "branch_id = ?", *branchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Branch not found")
			}
			return err
		}
	}
	if sectionID != nil {
		var section academicsModel.SectionModel
		if err := ctl.DB.First(&section, "section_id = ?", *sectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section not found")
			}
			return err
		}
		if branchID == nil || section.SectionBranchID != *branchID {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Section does not belong to the given branch")
		}
	}
	return nil
}

/* =========================================================
   LIST / QUEUE
========================================================= */

func (ctl *StudentAdminController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	branchID := queryUint(c, "branch_id")
	sectionID := queryUint(c, "section_id")

	students, total, err := studentService.ListStudents(ctl.DB, branchID, sectionID, paging)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Students fetched",
		studentDTO.ToStudentResponses(students),
		helper.BuildPagination(paging, total))
}

// Requested is the admin settlement queue: everyone who raised the
// manual-payment flag.
func (ctl *StudentAdminController) Requested(c *fiber.Ctx) error {
	students, err := studentService.ListRequested(ctl.DB)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Requested students fetched",
		studentDTO.ToStudentResponses(students), nil)
}

func (ctl *StudentAdminController) Detail(c *fiber.Ctx) error {
	student, err := studentService.GetStudent(ctl.DB, c.Params("sid"), true)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "Student fetched", studentDTO.ToStudentResponse(&student))
}

/* =========================================================
   PAY FEE (manual settlement)
========================================================= */

func (ctl *StudentAdminController) PayFee(c *fiber.Ctx) error {
	sid := c.Params("sid")

	var input studentDTO.PayFeeRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	student, err := studentService.PayFee(ctl.DB, sid, input.Amount)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	ctl.Mailer.Send(email.Message{
		ToName:  student.StudentName,
		ToAddr:  student.StudentEmail,
		Subject: "Fee payment recorded",
		Body: fmt.Sprintf(
			"Hello %s,\n\nA payment of %.2f was recorded on your account. Outstanding balance: %.2f.\n",
			student.StudentName, input.Amount, student.StudentBalance),
	})

	msg := fmt.Sprintf("%.2f has been paid for %s", input.Amount, student.StudentName)
	return helper.JsonOK(c, msg, studentDTO.ToStudentResponse(&student))
}

/* =========================================================
   DELETE
========================================================= */

func (ctl *StudentAdminController) Delete(c *fiber.Ctx) error {
	if err := studentService.DeleteStudent(ctl.DB, c.Params("sid")); err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonDeleted(c, "Student deleted successfully", nil)
}

func queryUint(c *fiber.Ctx, key string) *uint {
	if v := c.Query(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			u := uint(n)
			return &u
		}
	}
	return nil
}
