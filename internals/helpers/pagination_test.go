package helper_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "feeportal_backend/internals/helpers"
)

func resolve(t *testing.T, target string) helper.Paging {
	t.Helper()
	var got helper.Paging
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		got = helper.ResolvePaging(c, 20, 100)
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	return got
}

func TestResolvePaging(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := resolve(t, "/")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
		assert.Equal(t, 0, p.Offset)
	})

	t.Run("per_page capped at max", func(t *testing.T) {
		p := resolve(t, "/?page=3&per_page=500")
		assert.Equal(t, 3, p.Page)
		assert.Equal(t, 100, p.PerPage)
		assert.Equal(t, 200, p.Offset)
	})

	t.Run("limit is an alias for per_page", func(t *testing.T) {
		p := resolve(t, "/?limit=5")
		assert.Equal(t, 5, p.PerPage)
	})

	t.Run("garbage falls back to defaults", func(t *testing.T) {
		p := resolve(t, "/?page=x&per_page=-2")
		assert.Equal(t, 1, p.Page)
		assert.Equal(t, 20, p.PerPage)
	})
}

func TestBuildPagination(t *testing.T) {
	p := helper.BuildPagination(helper.Paging{Page: 2, PerPage: 10, Offset: 10, Limit: 10}, 35)
	assert.EqualValues(t, 35, p.Total)
	assert.Equal(t, 4, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := helper.BuildPagination(helper.Paging{Page: 4, PerPage: 10}, 35)
	assert.False(t, last.HasNext)
}
