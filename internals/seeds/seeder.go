// file: internals/seeds/seeder.go
package seeds

import (
	"log"

	"gorm.io/gorm"

	"teacha_backend/internals/constants"
	courseModel "teacha_backend/internals/features/courses/model"
	enrollmentModel "teacha_backend/internals/features/enrollments/model"
	tenantModel "teacha_backend/internals/features/tenants/model"
	authService "teacha_backend/internals/features/users/auth/service"
	userModel "teacha_backend/internals/features/users/user/model"
)

// RunSeeds provisions a demo tenant with an owner, a student, a published
// course with lessons, and one enrollment. Every step is FirstOrCreate so
// re-running on boot is harmless.
func RunSeeds(db *gorm.DB) error {
	log.Println("🌱 Seeding demo data...")

	settings, err := tenantModel.DefaultSettings(tenantModel.PlanPro).Encode()
	if err != nil {
		return err
	}
	tenant := tenantModel.TenantModel{
		TenantName:     "Demo Academy",
		TenantSlug:     "demo",
		TenantPlan:     tenantModel.PlanPro,
		TenantStatus:   tenantModel.StatusActive,
		TenantSettings: settings,
	}
	if err := db.Where("tenant_slug = ?", tenant.TenantSlug).FirstOrCreate(&tenant).Error; err != nil {
		return err
	}

	ownerHash, err := authService.HashPassword("owner12345")
	if err != nil {
		return err
	}
	owner := userModel.UserModel{
		TenantID: &tenant.TenantID,
		Name:     "Demo Owner",
		Email:    "owner@demo.teacha.com",
		Password: ownerHash,
		Role:     constants.RoleTenantOwner,
		IsActive: true,
	}
	if err := db.Where("email = ?", owner.Email).FirstOrCreate(&owner).Error; err != nil {
		return err
	}

	studentHash, err := authService.HashPassword("student12345")
	if err != nil {
		return err
	}
	student := userModel.UserModel{
		TenantID: &tenant.TenantID,
		Name:     "Demo Student",
		Email:    "student@demo.teacha.com",
		Password: studentHash,
		Role:     constants.RoleStudent,
		IsActive: true,
	}
	if err := db.Where("email = ?", student.Email).FirstOrCreate(&student).Error; err != nil {
		return err
	}

	course := courseModel.CourseModel{
		TenantID:          tenant.TenantID,
		CourseTitle:       "Getting Started with Teacha",
		CourseSlug:        "getting-started-with-teacha",
		CourseDescription: "A short tour of building and selling your first course.",
		CoursePrice:       0,
		CourseStatus:      courseModel.StatusPublished,
	}
	if err := db.Where("tenant_id = ? AND course_slug = ?", course.TenantID, course.CourseSlug).
		FirstOrCreate(&course).Error; err != nil {
		return err
	}

	lessons := []courseModel.LessonModel{
		{CourseID: course.CourseID, LessonTitle: "Welcome", LessonContent: "What you will learn in this course.", LessonOrderIndex: 0, LessonDuration: 180},
		{CourseID: course.CourseID, LessonTitle: "Setting up your school", LessonContent: "Branding, domain, and plan settings.", LessonOrderIndex: 1, LessonDuration: 420},
		{CourseID: course.CourseID, LessonTitle: "Publishing your first course", LessonContent: "Draft to published in five minutes.", LessonOrderIndex: 2, LessonDuration: 360},
	}
	for i := range lessons {
		if err := db.Where("course_id = ? AND lesson_title = ?", lessons[i].CourseID, lessons[i].LessonTitle).
			FirstOrCreate(&lessons[i]).Error; err != nil {
			return err
		}
	}

	enrollment := enrollmentModel.EnrollmentModel{
		UserID:   student.ID,
		CourseID: course.CourseID,
		Progress: 33,
	}
	if err := db.Where("user_id = ? AND course_id = ?", enrollment.UserID, enrollment.CourseID).
		FirstOrCreate(&enrollment).Error; err != nil {
		return err
	}

	log.Println("✅ Demo data ready.")
	return nil
}
