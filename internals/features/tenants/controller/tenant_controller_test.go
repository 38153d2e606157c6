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

func signupApp(gdb *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Post("/signup", NewTenantController(gdb).Signup)
	return app
}

func doSignup(t *testing.T, app *fiber.App, slug string) (int, string) {
	t.Helper()
	body := `{"tenant_name":"My School","tenant_slug":"` + slug + `",` +
		`"owner_name":"Owner","owner_email":"owner@example.com","password":"longenough","plan":"free"}`
	req := httptest.NewRequest("POST", "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func expectFreeSlugAndEmail(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "tenants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
}

// A fault after the tenant insert must roll the whole signup back: owner
// and tenant are created together or not at all.
func TestSignupRollsBackWhenOwnerInsertFails(t *testing.T) {
	gdb, mock := newMockDB(t)

	expectFreeSlugAndEmail(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tenants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	status, body := doSignup(t, signupApp(gdb), "atomic-school")

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.JSONEq(t, `{"error":"Failed to register tenant"}`, body)
	// the rollback expectation is the proof: no commit, no surviving tenant row
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupSlugRaceReportsSlugConflict(t *testing.T) {
	gdb, mock := newMockDB(t)

	expectFreeSlugAndEmail(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tenants"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_tenants_tenant_slug" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	status, body := doSignup(t, signupApp(gdb), "raced-slug")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Slug is already taken. Please choose a different one."}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupEmailRaceReportsEmailConflict(t *testing.T) {
	gdb, mock := newMockDB(t)

	expectFreeSlugAndEmail(mock)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "tenants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"tenant_id"}).AddRow(uuid.NewString()))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`))
	mock.ExpectRollback()

	status, body := doSignup(t, signupApp(gdb), "fresh-slug")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Email is already registered. Please use a different email."}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupSlugTakenPreCheck(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "tenants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status, body := doSignup(t, signupApp(gdb), "taken-slug")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Slug is already taken. Please choose a different one."}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}
