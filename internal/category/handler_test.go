package category

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/all", ListCategoriesHandler(db))
	app.Post("/category", CreateCategoryHandler(db))
	app.Put("/category", UpdateCategoryHandler(db))
	app.Delete("/category/:categoryId", DeleteCategoryHandler(db))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCategoryCRUD(t *testing.T) {
	app, db := newTestApp(t)

	// Ad olmadan oluşturulamaz
	resp := doJSON(t, app, http.MethodPost, "/category", CategoryRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/category", CategoryRequest{Name: "İçecekler"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created models.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.NotZero(t, created.ID)

	resp = doJSON(t, app, http.MethodPut, "/category", CategoryRequest{ID: created.ID, Name: "Soğuk İçecekler"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated models.Category
	require.NoError(t, db.First(&updated, "id = ?", created.ID).Error)
	assert.Equal(t, "Soğuk İçecekler", updated.Name)

	resp = doJSON(t, app, http.MethodPut, "/category", CategoryRequest{ID: 999, Name: "Yok"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/category/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodDelete, "/category/"+itoa(created.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCategories(t *testing.T) {
	app, db := newTestApp(t)
	require.NoError(t, db.Create(&models.Category{Name: "Tatlılar"}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "Atıştırmalık"}).Error)

	resp := doJSON(t, app, http.MethodGet, "/all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []models.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 2)
	// name asc sıralama
	assert.Equal(t, "Atıştırmalık", list[0].Name)
}

func itoa(v uint) string {
	data, _ := json.Marshal(v)
	return string(data)
}
