package model

import (
	"time"

	academicsModel "feeportal_backend/internals/features/academics/model"
)

// StudentModel is the fee ledger row for one student.
// student_sid is the student-chosen login identifier and is immutable
// after creation. Invariant: 0 <= student_balance <= student_total.
type StudentModel struct {
	StudentSID   string `gorm:"column:student_sid;size:64;primaryKey" json:"student_sid"`
	StudentName  string `gorm:"column:student_name;size:100;not null" json:"student_name"`
	StudentEmail string `gorm:"column:student_email;size:255" json:"student_email"`
	StudentPhone string `gorm:"column:student_phone;size:20" json:"student_phone"`

	StudentTotal   float64 `gorm:"column:student_total;not null" json:"student_total"`
	StudentBalance float64 `gorm:"column:student_balance;not null" json:"student_balance"`

	StudentPassword string `gorm:"column:student_password;not null" json:"-"`

	StudentBranchID  *uint `gorm:"column:student_branch_id" json:"student_branch_id,omitempty"`
	StudentSectionID *uint `gorm:"column:student_section_id" json:"student_section_id,omitempty"`

	// Set by the student to ask for manual settlement by an admin.
	// Cleared whenever the balance reaches zero by any path.
	StudentAdminRequest bool `gorm:"column:student_admin_request;not null;default:false" json:"student_admin_request"`

	CreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	UpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`

	Branch  *academicsModel.BranchModel  `gorm:"foreignKey:StudentBranchID;references:BranchID;constraint:OnDelete:SET NULL" json:"branch,omitempty"`
	Section *academicsModel.SectionModel `gorm:"foreignKey:StudentSectionID;references:SectionID;constraint:OnDelete:SET NULL" json:"section,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (s *StudentModel) PaidAmount() float64 { return s.StudentTotal - s.StudentBalance }

func (s *StudentModel) DueAmount() float64 { return s.StudentBalance }

func (s *StudentModel) IsSettled() bool { return s.StudentBalance == 0 }
