package customer

import (
	"bytes"
	"encoding/json"
	"fmt"
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
	app.Get("/customers/all", ListCustomersHandler(db))
	app.Get("/customers/customer/:customerId", GetCustomerHandler(db))
	app.Post("/customers/customer", CreateCustomerHandler(db))
	app.Put("/customers/customer", UpdateCustomerHandler(db))
	app.Delete("/customers/customer/:customerId", DeleteCustomerHandler(db))
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCustomerCRUD(t *testing.T) {
	app, db := newTestApp(t)

	// Oluştur
	resp := doJSON(t, app, http.MethodPost, "/customers/customer", CustomerRequest{
		Name:  "Ayşe Yılmaz",
		Phone: "05551234567",
		Email: "ayse@example.com",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created models.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.NotZero(t, created.ID)

	// Tek kayıt oku
	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/customers/customer/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Güncelle
	resp = doJSON(t, app, http.MethodPut, "/customers/customer", CustomerRequest{
		ID:      created.ID,
		Name:    "Ayşe Demir",
		Phone:   "05557654321",
		Address: "Kadıköy",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var updated models.Customer
	require.NoError(t, db.First(&updated, "id = ?", created.ID).Error)
	assert.Equal(t, "Ayşe Demir", updated.Name)
	assert.Equal(t, "Kadıköy", updated.Address)

	// Sil
	resp = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/customers/customer/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCustomerValidation(t *testing.T) {
	app, _ := newTestApp(t)

	// İsimsiz müşteri kabul edilmez
	resp := doJSON(t, app, http.MethodPost, "/customers/customer", CustomerRequest{Name: "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// Olmayan kayıt güncellenemez
	resp = doJSON(t, app, http.MethodPut, "/customers/customer", CustomerRequest{ID: 999, Name: "Yok"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Olmayan kayıt silinemez
	resp = doJSON(t, app, http.MethodDelete, "/customers/customer/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListCustomersSortedByName(t *testing.T) {
	app, db := newTestApp(t)

	require.NoError(t, db.Create(&models.Customer{Name: "Zeynep"}).Error)
	require.NoError(t, db.Create(&models.Customer{Name: "Ali"}).Error)
	require.NoError(t, db.Create(&models.Customer{Name: "Mehmet"}).Error)

	resp := doJSON(t, app, http.MethodGet, "/customers/all", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var customers []models.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&customers))
	resp.Body.Close()

	require.Len(t, customers, 3)
	assert.Equal(t, "Ali", customers[0].Name)
	assert.Equal(t, "Mehmet", customers[1].Name)
	assert.Equal(t, "Zeynep", customers[2].Name)
}
