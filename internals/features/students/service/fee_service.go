package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	paymentModel "feeportal_backend/internals/features/finance/payments/model"
	studentDTO "feeportal_backend/internals/features/students/dto"
	studentModel "feeportal_backend/internals/features/students/model"
	authHelper "feeportal_backend/internals/features/users/auth/helper"
	authModel "feeportal_backend/internals/features/users/auth/model"
	helper "feeportal_backend/internals/helpers"
)

/* =========================================================
   Fee ledger operations

   Policy notes:
   - 0 <= balance <= total always; every write clamps.
   - admin_request is cleared whenever the balance reaches zero by any
     path; a partial admin payment leaves it set (the student's request
     to settle the outstanding balance is not yet answered).
========================================================= */

type UpsertOutcome string

const (
	OutcomeInserted UpsertOutcome = "inserted"
	OutcomeUpdated  UpsertOutcome = "updated"
)

func clampBalance(total, balance float64) float64 {
	if balance < 0 {
		return 0
	}
	if balance > total {
		return total
	}
	return balance
}

// UpsertStudent inserts by sid or re-records every mutable field of an
// existing sid. The sid itself is immutable; "updating" it is just
// addressing. Returns which of the two happened.
func UpsertStudent(db *gorm.DB, in studentDTO.UpsertStudentRequest) (studentModel.StudentModel, UpsertOutcome, error) {
	var (
		out     studentModel.StudentModel
		outcome UpsertOutcome
	)

	hashed, err := authHelper.HashPassword(in.Password)
	if err != nil {
		return out, outcome, fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	balance := clampBalance(in.Total, in.Total-in.Paid)

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing studentModel.StudentModel
		findErr := tx.First(&existing, "student_sid = ?", in.SID).Error

		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			out = studentModel.StudentModel{
				StudentSID:       in.SID,
				StudentName:      in.Name,
				StudentEmail:     in.Email,
				StudentPhone:     in.Phone,
				StudentTotal:     in.Total,
				StudentBalance:   balance,
				StudentPassword:  hashed,
				StudentBranchID:  in.BranchID,
				StudentSectionID: in.SectionID,
			}
			if err := tx.Create(&out).Error; err != nil {
				return err
			}
			outcome = OutcomeInserted
			return nil

		case findErr != nil:
			return findErr

		default:
			// Keep the request flag across re-registration unless the new
			// balance settles the account.
			adminRequest := existing.StudentAdminRequest && balance > 0

			updates := map[string]any{
				"student_name":          in.Name,
				"student_email":         in.Email,
				"student_phone":         in.Phone,
				"student_total":         in.Total,
				"student_balance":       balance,
				"student_password":      hashed,
				"student_branch_id":     in.BranchID,
				"student_section_id":    in.SectionID,
				"student_admin_request": adminRequest,
			}
			if err := tx.Model(&studentModel.StudentModel{}).
				Where("student_sid = ?", in.SID).
				Updates(updates).Error; err != nil {
				return err
			}
			out = existing
			out.StudentName = in.Name
			out.StudentEmail = in.Email
			out.StudentPhone = in.Phone
			out.StudentTotal = in.Total
			out.StudentBalance = balance
			out.StudentPassword = hashed
			out.StudentBranchID = in.BranchID
			out.StudentSectionID = in.SectionID
			out.StudentAdminRequest = adminRequest
			outcome = OutcomeUpdated
			return nil
		}
	})
	return out, outcome, err
}

// PayFee applies a manual admin payment: subtract with clamp at zero,
// clear the request flag only when the balance hits zero, and record the
// settlement in the payments ledger.
func PayFee(db *gorm.DB, sid string, amount float64) (studentModel.StudentModel, error) {
	var out studentModel.StudentModel

	if amount <= 0 {
		return out, fiber.NewError(fiber.StatusUnprocessableEntity, "Amount must be positive")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var student studentModel.StudentModel
		if err := tx.First(&student, "student_sid = ?", sid).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Student not found")
			}
			return err
		}

		newBalance := clampBalance(student.StudentTotal, student.StudentBalance-amount)
		updates := map[string]any{"student_balance": newBalance}
		if newBalance == 0 {
			updates["student_admin_request"] = false
		}
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_sid = ?", sid).
			Updates(updates).Error; err != nil {
			return err
		}

		now := time.Now()
		record := paymentModel.PaymentModel{
			PaymentID:          uuid.New(),
			PaymentStudentSID:  sid,
			PaymentOrderID:     manualOrderID(sid),
			PaymentAmountMinor: ToMinorUnits(amount),
			PaymentCurrency:    "IDR",
			PaymentStatus:      paymentModel.PaymentStatusPaid,
			PaymentMethod:      paymentModel.PaymentMethodManual,
			PaymentPaidAt:      &now,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		out = student
		out.StudentBalance = newBalance
		if newBalance == 0 {
			out.StudentAdminRequest = false
		}
		return nil
	})
	return out, err
}

// Settle zeroes the balance and clears the request flag. Gateway-only
// path: the caller must already hold a verified callback and run this
// inside its transaction.
func Settle(tx *gorm.DB, sid string) (studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	if err := tx.First(&student, "student_sid = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return student, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return student, err
	}
	if err := tx.Model(&studentModel.StudentModel{}).
		Where("student_sid = ?", sid).
		Updates(map[string]any{
			"student_balance":       0,
			"student_admin_request": false,
		}).Error; err != nil {
		return student, err
	}
	student.StudentBalance = 0
	student.StudentAdminRequest = false
	return student, nil
}

// RequestManualPayment raises the admin settlement flag. Deliberately
// unconditional: re-requesting and requesting at zero balance are both
// safe no-ops from the ledger's point of view.
func RequestManualPayment(db *gorm.DB, sid string) (studentModel.StudentModel, error) {
	student, err := GetStudent(db, sid, false)
	if err != nil {
		return student, err
	}
	if err := db.Model(&studentModel.StudentModel{}).
		Where("student_sid = ?", sid).
		Update("student_admin_request", true).Error; err != nil {
		return student, err
	}
	student.StudentAdminRequest = true
	return student, nil
}

// GetStudent loads one student, optionally with branch/section.
func GetStudent(db *gorm.DB, sid string, preload bool) (studentModel.StudentModel, error) {
	var student studentModel.StudentModel
	q := db
	if preload {
		q = q.Preload("Branch").Preload("Section")
	}
	if err := q.First(&student, "student_sid = ?", sid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return student, fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return student, err
	}
	return student, nil
}

// DeleteStudent removes a student and their live sessions. Idempotent:
// deleting an absent sid is a no-op, not an error.
func DeleteStudent(db *gorm.DB, sid string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&studentModel.StudentModel{}, "student_sid = ?", sid).Error; err != nil {
			return err
		}
		return tx.Delete(&authModel.SessionModel{}, "session_student_sid = ?", sid).Error
	})
}

// ListRequested returns the admin settlement queue.
func ListRequested(db *gorm.DB) ([]studentModel.StudentModel, error) {
	var students []studentModel.StudentModel
	err := db.Preload("Branch").Preload("Section").
		Where("student_admin_request = ?", true).
		Order("student_sid").
		Find(&students).Error
	return students, err
}

// ListStudents pages the roster, optionally filtered by branch/section.
func ListStudents(db *gorm.DB, branchID, sectionID *uint, paging helper.Paging) ([]studentModel.StudentModel, int64, error) {
	q := db.Model(&studentModel.StudentModel{})
	if branchID != nil {
		q = q.Where("student_branch_id = ?", *branchID)
	}
	if sectionID != nil {
		q = q.Where("student_section_id = ?", *sectionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []studentModel.StudentModel
	err := q.Preload("Branch").Preload("Section").
		Order("student_sid").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&students).Error
	return students, total, err
}

// ToMinorUnits converts a ledger amount to integer minor units; only
// integers ever cross the gateway boundary.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func manualOrderID(sid string) string {
	return fmt.Sprintf("MAN-%s-%s", sid, uuid.NewString()[:8])
}
