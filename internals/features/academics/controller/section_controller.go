package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsDTO "feeportal_backend/internals/features/academics/dto"
	academicsModel "feeportal_backend/internals/features/academics/model"
	studentModel "feeportal_backend/internals/features/students/model"
	helper "feeportal_backend/internals/helpers"
)

type SectionController struct {
	DB *gorm.DB
}

func NewSectionController(db *gorm.DB) *SectionController {
	return &SectionController{DB: db}
}

func (ctl *SectionController) ListByBranch(c *fiber.Ctx) error {
	branchID, err := c.ParamsInt("id")
	if err != nil || branchID < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}

	var branch academicsModel.BranchModel
	if err := ctl.DB.First(&branch, "branch_id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
		}
		return helper.FromFiberError(c, err)
	}

	var sections []academicsModel.SectionModel
	if err := ctl.DB.Where("section_branch_id = ?", branchID).
		Order("section_name").Find(&sections).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Sections fetched", sections, nil)
}

// Create inserts a section under a branch. (branch, name) is unique: the
// duplicate check runs before the insert so the failure is a clean 409,
// not a constraint error surfacing as a 500.
func (ctl *SectionController) Create(c *fiber.Ctx) error {
	branchID, err := c.ParamsInt("id")
	if err != nil || branchID < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}

	var input academicsDTO.CreateSectionRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.SectionName = strings.TrimSpace(input.SectionName)
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	var branch academicsModel.BranchModel
	if err := ctl.DB.First(&branch, "branch_id = ?", branchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
		}
		return helper.FromFiberError(c, err)
	}

	var section academicsModel.SectionModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var dup int64
		if err := tx.Model(&academicsModel.SectionModel{}).
			Where("section_branch_id = ? AND section_name = ?", branchID, input.SectionName).
			Count(&dup).Error; err != nil {
			return err
		}
		if dup > 0 {
			return fiber.NewError(fiber.StatusConflict, "Section already exists")
		}

		section = academicsModel.SectionModel{
			SectionBranchID: uint(branchID),
			SectionName:     input.SectionName,
		}
		return tx.Create(&section).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}

	msg := fmt.Sprintf("Section '%s' added to %s", section.SectionName, branch.BranchName)
	return helper.JsonCreated(c, msg, section)
}

func (ctl *SectionController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section id")
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var section academicsModel.SectionModel
		if err := tx.First(&section, "section_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Section not found")
			}
			return err
		}

		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_section_id = ?", id).
			Update("student_section_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonDeleted(c, "Section deleted", nil)
}
