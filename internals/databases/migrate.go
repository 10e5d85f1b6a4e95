package database

import (
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	academicsModel "feeportal_backend/internals/features/academics/model"
	paymentModel "feeportal_backend/internals/features/finance/payments/model"
	studentModel "feeportal_backend/internals/features/students/model"
	authModel "feeportal_backend/internals/features/users/auth/model"
)

// DefaultBranches is the fixed seed list inserted idempotently on every
// boot (ignore-on-duplicate).
var DefaultBranches = []string{"CSE", "ECE", "EEE", "MECH"}

// Migrate creates/updates the whole schema and seeds the default
// branches. Safe to call on every boot.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&academicsModel.BranchModel{},
		&academicsModel.SectionModel{},
		&studentModel.StudentModel{},
		&authModel.SessionModel{},
		&paymentModel.PaymentModel{},
		&paymentModel.PaymentGatewayEventModel{},
	); err != nil {
		return err
	}
	return SeedDefaultBranches(db)
}

func SeedDefaultBranches(db *gorm.DB) error {
	for _, name := range DefaultBranches {
		err := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&academicsModel.BranchModel{BranchName: name}).Error
		if err != nil {
			return err
		}
	}
	log.Printf("[INFO] branch seed ok (%d defaults)", len(DefaultBranches))
	return nil
}
