package model

import (
	"time"
)

// BranchModel is the top-level grouping of students (a department).
type BranchModel struct {
	BranchID   uint   `gorm:"column:branch_id;primaryKey;autoIncrement" json:"branch_id"`
	BranchName string `gorm:"column:branch_name;size:100;uniqueIndex;not null" json:"branch_name"`

	CreatedAt time.Time `gorm:"column:branch_created_at;autoCreateTime" json:"branch_created_at"`
	UpdatedAt time.Time `gorm:"column:branch_updated_at;autoUpdateTime" json:"branch_updated_at"`

	// Sections go down with their branch (single referential policy:
	// sections cascade, student refs are set NULL).
	Sections []SectionModel `gorm:"foreignKey:SectionBranchID;constraint:OnDelete:CASCADE" json:"sections,omitempty"`
}

func (BranchModel) TableName() string { return "branches" }
