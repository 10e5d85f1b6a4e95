package dto

import (
	"github.com/go-playground/validator/v10"

	studentModel "feeportal_backend/internals/features/students/model"
)

var validate = validator.New()

// UpsertStudentRequest inserts a new student or fully re-records an
// existing sid (all mutable fields, password re-hashed).
type UpsertStudentRequest struct {
	SID      string  `json:"sid" validate:"required,max=64"`
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Phone    string  `json:"phone" validate:"omitempty,max=20"`
	Total    float64 `json:"total" validate:"gte=0"`
	Paid     float64 `json:"paid" validate:"gte=0"`
	Password string  `json:"password" validate:"required,min=6"`

	BranchID  *uint `json:"branch_id"`
	SectionID *uint `json:"section_id"`
}

func (r *UpsertStudentRequest) Validate() error { return validate.Struct(r) }

type PayFeeRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func (r *PayFeeRequest) Validate() error { return validate.Struct(r) }

// StudentResponse is the projection handed to both the admin roster and
// the student's own dashboard.
type StudentResponse struct {
	SID          string  `json:"sid"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Total        float64 `json:"total"`
	Balance      float64 `json:"balance"`
	PaidAmount   float64 `json:"paid_amount"`
	DueAmount    float64 `json:"due_amount"`
	AdminRequest bool    `json:"admin_request"`

	BranchID    *uint  `json:"branch_id,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	SectionID   *uint  `json:"section_id,omitempty"`
	SectionName string `json:"section_name,omitempty"`
}

func ToStudentResponse(s *studentModel.StudentModel) StudentResponse {
	resp := StudentResponse{
		SID:          s.StudentSID,
		Name:         s.StudentName,
		Email:        s.StudentEmail,
		Phone:        s.StudentPhone,
		Total:        s.StudentTotal,
		Balance:      s.StudentBalance,
		PaidAmount:   s.PaidAmount(),
		DueAmount:    s.DueAmount(),
		AdminRequest: s.StudentAdminRequest,
		BranchID:     s.StudentBranchID,
		SectionID:    s.StudentSectionID,
	}
	if s.Branch != nil {
		resp.BranchName = s.Branch.BranchName
	}
	if s.Section != nil {
		resp.SectionName = s.Section.SectionName
	}
	return resp
}

func ToStudentResponses(list []studentModel.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for i := range list {
		out = append(out, ToStudentResponse(&list[i]))
	}
	return out
}
