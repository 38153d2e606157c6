package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveOn(t *testing.T, target string) Paging {
	t.Helper()
	var got Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePagingDefaults(t *testing.T) {
	got := resolveOn(t, "/")
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 20, got.PerPage)
	assert.Equal(t, 0, got.Offset)
	assert.Equal(t, 20, got.Limit)
}

func TestResolvePagingExplicit(t *testing.T) {
	got := resolveOn(t, "/?page=3&per_page=10")
	assert.Equal(t, 3, got.Page)
	assert.Equal(t, 10, got.PerPage)
	assert.Equal(t, 20, got.Offset)
}

func TestResolvePagingLimitAlias(t *testing.T) {
	got := resolveOn(t, "/?limit=5")
	assert.Equal(t, 5, got.PerPage)
}

func TestResolvePagingClampsAndSanitizes(t *testing.T) {
	got := resolveOn(t, "/?page=-2&per_page=9999")
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 100, got.PerPage, "capped at max")

	got = resolveOn(t, "/?page=abc&per_page=0")
	assert.Equal(t, 1, got.Page)
	assert.Equal(t, 20, got.PerPage)
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, int64(45), p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	p = BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}
