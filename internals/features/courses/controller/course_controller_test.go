package controller

import (
	"errors"
	"io"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"teacha_backend/internals/constants"
	helper "teacha_backend/internals/helpers"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

// identity middleware standing in for the auth chain
func asInstructor(tenantID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(helper.LocalsUserID, uuid.NewString())
		c.Locals(helper.LocalsUserRole, constants.RoleInstructor)
		c.Locals(helper.LocalsTenantID, tenantID.String())
		return c.Next()
	}
}

func TestCreateCourseDuplicateSlugSameTenant(t *testing.T) {
	gdb, mock := newMockDB(t)
	tenantID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "courses"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "uq_courses_tenant_slug" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	app := fiber.New()
	app.Post("/courses", asInstructor(tenantID), NewCourseController(gdb).CreateCourse)

	req := httptest.NewRequest("POST", "/courses",
		strings.NewReader(`{"title":"Intro to Go","price":49.99}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"A course with this slug already exists"}`, string(raw))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCourseInsertsUnderCallerTenant(t *testing.T) {
	gdb, mock := newMockDB(t)
	tenantID := uuid.New()

	mock.ExpectBegin()
	// the tenant id bound into the insert must be the caller's, slug derived
	// from the title
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "courses"`)).
		WithArgs(tenantID.String(), "Intro to Go", "intro-to-go", "", 49.99, "DRAFT",
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"course_id"}).AddRow(uuid.NewString()))
	mock.ExpectCommit()

	app := fiber.New()
	app.Post("/courses", asInstructor(tenantID), NewCourseController(gdb).CreateCourse)

	req := httptest.NewRequest("POST", "/courses",
		strings.NewReader(`{"title":"Intro to Go","price":49.99}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Contains(t, string(raw), `"intro-to-go"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
