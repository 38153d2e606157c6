package service

import (
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

func postJSON(t *testing.T, app *fiber.App, target, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("POST", target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 15000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

const selectUserByEmail = `SELECT * FROM "users" WHERE email = $1`

func TestRegisterDuplicateEmail(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).
			AddRow(uuid.NewString(), "taken@example.com"))

	app := fiber.New()
	app.Post("/register", func(c *fiber.Ctx) error {
		return Register(gdb, c)
	})

	status, body := postJSON(t, app, "/register",
		`{"name":"Ada","email":"taken@example.com","password":"secret123","tenant_id":"`+uuid.NewString()+`"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"User with this email already exists"}`, body)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFailureBodiesAreIdentical(t *testing.T) {
	gdb, mock := newMockDB(t)

	// unknown email: no row at all
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "is_active"}))

	// known email, wrong password
	hash, err := HashPassword("the-real-password")
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "is_active"}).
			AddRow(uuid.NewString(), "known@example.com", hash, "STUDENT", true))

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return Login(gdb, c)
	})

	unknownStatus, unknownBody := postJSON(t, app, "/login",
		`{"email":"nobody@example.com","password":"whatever123"}`)
	wrongStatus, wrongBody := postJSON(t, app, "/login",
		`{"email":"known@example.com","password":"not-the-password"}`)

	assert.Equal(t, fiber.StatusUnauthorized, unknownStatus)
	assert.Equal(t, fiber.StatusUnauthorized, wrongStatus)
	// both failure causes must be indistinguishable to the caller
	assert.Equal(t, unknownBody, wrongBody)
	assert.JSONEq(t, `{"error":"Invalid email or password"}`, unknownBody)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginDisabledAccount(t *testing.T) {
	gdb, mock := newMockDB(t)

	hash, err := HashPassword("correct-password")
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta(selectUserByEmail)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "role", "is_active"}).
			AddRow(uuid.NewString(), "off@example.com", hash, "STUDENT", false))

	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return Login(gdb, c)
	})

	status, body := postJSON(t, app, "/login",
		`{"email":"off@example.com","password":"correct-password"}`)

	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "disabled")
	assert.NoError(t, mock.ExpectationsWereMet())
}
