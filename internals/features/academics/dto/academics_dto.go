package dto

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UpsertBranchRequest: with branch_id it renames an existing branch,
// without it adds (or finds) a branch by name.
type UpsertBranchRequest struct {
	BranchID   *uint  `json:"branch_id"`
	BranchName string `json:"branch_name" validate:"required,max=100"`
}

func (r *UpsertBranchRequest) Validate() error { return validate.Struct(r) }

type CreateSectionRequest struct {
	SectionName string `json:"section_name" validate:"required,max=100"`
}

func (r *CreateSectionRequest) Validate() error { return validate.Struct(r) }
