package database

import (
	"log"

	courseModel "teacha_backend/internals/features/courses/model"
	enrollmentModel "teacha_backend/internals/features/enrollments/model"
	tenantModel "teacha_backend/internals/features/tenants/model"
	authModel "teacha_backend/internals/features/users/auth/model"
	userModel "teacha_backend/internals/features/users/user/model"
)

// MigrateAll keeps the schema in sync on startup. Order matters: parents
// before children so foreign keys resolve.
func MigrateAll() {
	if err := DB.AutoMigrate(
		&tenantModel.TenantModel{},
		&userModel.UserModel{},
		&courseModel.CourseModel{},
		&courseModel.LessonModel{},
		&enrollmentModel.EnrollmentModel{},
		&authModel.TokenBlacklist{},
		&authModel.RefreshTokenModel{},
	); err != nil {
		log.Fatalf("❌ migration failed: %v", err)
	}
	log.Println("✅ Schema migrated.")
}
