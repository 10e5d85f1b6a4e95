package model

import (
	"time"
)

// SectionModel is a subdivision within a branch.
// (section_branch_id, section_name) is unique.
type SectionModel struct {
	SectionID       uint   `gorm:"column:section_id;primaryKey;autoIncrement" json:"section_id"`
	SectionBranchID uint   `gorm:"column:section_branch_id;not null;uniqueIndex:uq_sections_branch_name" json:"section_branch_id"`
	SectionName     string `gorm:"column:section_name;size:100;not null;uniqueIndex:uq_sections_branch_name" json:"section_name"`

	CreatedAt time.Time `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	UpdatedAt time.Time `gorm:"column:section_updated_at;autoUpdateTime" json:"section_updated_at"`
}

func (SectionModel) TableName() string { return "sections" }
