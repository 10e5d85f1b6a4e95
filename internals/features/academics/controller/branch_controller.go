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

type BranchController struct {
	DB *gorm.DB
}

func NewBranchController(db *gorm.DB) *BranchController {
	return &BranchController{DB: db}
}

func (ctl *BranchController) List(c *fiber.Ctx) error {
	var branches []academicsModel.BranchModel
	err := ctl.DB.Preload("Sections").Order("branch_name").Find(&branches).Error
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonList(c, "Branches fetched", branches, nil)
}

// Upsert adds a branch by name, or renames one when branch_id is given.
// Re-adding an existing name is not an error, it just returns the row.
func (ctl *BranchController) Upsert(c *fiber.Ctx) error {
	var input academicsDTO.UpsertBranchRequest
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.BranchName = strings.TrimSpace(input.BranchName)
	if err := input.Validate(); err != nil {
		return helper.JsonValidationErrorFrom(c, err)
	}

	if input.BranchID != nil {
		return ctl.rename(c, *input.BranchID, input.BranchName)
	}

	var existing academicsModel.BranchModel
	err := ctl.DB.First(&existing, "branch_name = ?", input.BranchName).Error
	switch {
	case err == nil:
		return helper.JsonUpdated(c, "Branch already exists", existing)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return helper.FromFiberError(c, err)
	}

	branch := academicsModel.BranchModel{BranchName: input.BranchName}
	if err := ctl.DB.Create(&branch).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonCreated(c, fmt.Sprintf("Branch '%s' added", branch.BranchName), branch)
}

func (ctl *BranchController) rename(c *fiber.Ctx, id uint, name string) error {
	var branch academicsModel.BranchModel
	if err := ctl.DB.First(&branch, "branch_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Branch not found")
		}
		return helper.FromFiberError(c, err)
	}

	var clash int64
	if err := ctl.DB.Model(&academicsModel.BranchModel{}).
		Where("branch_name = ? AND branch_id <> ?", name, id).
		Count(&clash).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	if clash > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Branch name already in use")
	}

	branch.BranchName = name
	if err := ctl.DB.Model(&branch).Update("branch_name", name).Error; err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonUpdated(c, "Branch renamed", branch)
}

// Delete applies the uniform referential policy in one transaction:
// sections of the branch are removed, student placements are set NULL.
func (ctl *BranchController) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid branch id")
	}

	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var branch academicsModel.BranchModel
		if err := tx.First(&branch, "branch_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Branch not found")
			}
			return err
		}

		// Orphan the students first so no row ever points at a dead
		// branch or section.
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_branch_id = ?", id).
			Updates(map[string]any{
				"student_branch_id":  nil,
				"student_section_id": nil,
			}).Error; err != nil {
			return err
		}
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_section_id IN (?)",
				tx.Model(&academicsModel.SectionModel{}).
					Select("section_id").
					Where("section_branch_id = ?", id)).
			Update("student_section_id", nil).Error; err != nil {
			return err
		}

		if err := tx.Delete(&academicsModel.SectionModel{}, "section_branch_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&branch).Error
	})
	if txErr != nil {
		return helper.FromFiberError(c, txErr)
	}
	return helper.JsonDeleted(c, "Branch deleted", nil)
}
