package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	academicsController "feeportal_backend/internals/features/academics/controller"
)

// AcademicsAdminRoutes: branch/section management under /api/a.
func AcademicsAdminRoutes(r fiber.Router, db *gorm.DB) {
	branchCtl := academicsController.NewBranchController(db)
	sectionCtl := academicsController.NewSectionController(db)

	branches := r.Group("/branches")
	{
		branches.Get("/", branchCtl.List)
		branches.Post("/", branchCtl.Upsert)
		branches.Delete("/:id", branchCtl.Delete)

		branches.Get("/:id/sections", sectionCtl.ListByBranch)
		branches.Post("/:id/sections", sectionCtl.Create)
	}

	r.Delete("/sections/:id", sectionCtl.Delete)
}
